package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/pingreport/internal/domain"
	"github.com/hamed0406/pingreport/internal/notify"
	"github.com/hamed0406/pingreport/internal/repo/memory"
)

// --- fakes ---

type fakeProber struct {
	mu       sync.Mutex
	attempts map[string][]domain.Attempt
	delays   map[string]time.Duration
	calls    []string
}

func (f *fakeProber) Probe(_ context.Context, address string, n int) []domain.Attempt {
	if d := f.delays[address]; d > 0 {
		time.Sleep(d)
	}
	f.mu.Lock()
	f.calls = append(f.calls, address)
	f.mu.Unlock()

	if a, ok := f.attempts[address]; ok {
		return a
	}
	return make([]domain.Attempt, n) // all failed
}

type fakeSink struct {
	mu   sync.Mutex
	n    int
	last domain.CycleOutcome
	path string
	err  error
}

func (f *fakeSink) Write(outcome domain.CycleOutcome) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.n++
	f.last = outcome
	return f.path, f.err
}

type fakeNotifier struct {
	mu   sync.Mutex
	msgs []notify.Message
}

func (f *fakeNotifier) Send(_ context.Context, m notify.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, m)
	return nil
}

func okAttempts(latencies ...time.Duration) []domain.Attempt {
	out := make([]domain.Attempt, 0, len(latencies))
	for _, l := range latencies {
		out = append(out, domain.Attempt{OK: true, Latency: l})
	}
	return out
}

var testTargets = []domain.Target{
	{Name: "A", Address: "1.1.1.1"},
	{Name: "B", Address: "2.2.2.2"},
}

func newTestRunner(p *fakeProber, s *fakeSink, n notify.Notifier) *Runner {
	return NewRunner(
		zap.NewNop(),
		testTargets,
		p,
		s,
		n,
		memory.New(),
		Recipients{Report: "noc@example.com", Error: "oncall@example.com"},
		5,
		time.Hour,
		2,
	)
}

// --- tests ---

func TestRunCycle_MixedGoesToReportRecipient(t *testing.T) {
	p := &fakeProber{attempts: map[string][]domain.Attempt{
		"1.1.1.1": okAttempts(10*time.Millisecond, 20*time.Millisecond, 10*time.Millisecond, 30*time.Millisecond, 10*time.Millisecond),
		// 2.2.2.2 falls through to all-failed
	}}
	s := &fakeSink{path: "/tmp/reports/link-report_x.csv"}
	n := &fakeNotifier{}

	out := newTestRunner(p, s, n).RunCycle(context.Background())

	if out.AllUnreachable {
		t.Fatal("cycle with a reachable host must not be all-unreachable")
	}
	if len(out.Summaries) != 2 {
		t.Fatalf("expected one summary per target, got %d", len(out.Summaries))
	}
	if !out.Summaries[0].Reachable || *out.Summaries[0].AvgLatency != 16*time.Millisecond {
		t.Fatalf("summary A not as expected: %+v", out.Summaries[0])
	}
	if out.Summaries[1].Reachable {
		t.Fatalf("summary B should be unreachable: %+v", out.Summaries[1])
	}

	if s.n != 1 {
		t.Fatalf("expected exactly one report write, got %d", s.n)
	}
	if len(n.msgs) != 1 {
		t.Fatalf("expected exactly one notification, got %d", len(n.msgs))
	}
	msg := n.msgs[0]
	if msg.To != "noc@example.com" || msg.Subject != "Network Status Report" {
		t.Fatalf("wrong recipient/subject: %+v", msg)
	}
	if msg.AttachmentPath != s.path {
		t.Fatalf("report path not attached: %+v", msg)
	}
}

func TestRunCycle_AllUnreachableGoesToErrorRecipient(t *testing.T) {
	p := &fakeProber{} // every probe fails
	s := &fakeSink{path: "/tmp/r.csv"}
	n := &fakeNotifier{}

	out := newTestRunner(p, s, n).RunCycle(context.Background())

	if !out.AllUnreachable {
		t.Fatal("expected all-unreachable outcome")
	}
	if len(n.msgs) != 1 {
		t.Fatalf("expected exactly one notification, got %d", len(n.msgs))
	}
	msg := n.msgs[0]
	if msg.To != "oncall@example.com" || msg.Subject != "Ping Report - Error" {
		t.Fatalf("wrong recipient/subject: %+v", msg)
	}
}

func TestRunCycle_EmptyRegistryIsNotAnError(t *testing.T) {
	p := &fakeProber{}
	s := &fakeSink{}
	n := &fakeNotifier{}

	r := newTestRunner(p, s, n)
	r.Targets = nil

	out := r.RunCycle(context.Background())
	if out.AllUnreachable {
		t.Fatal("empty registry must not look like an outage")
	}
	if len(n.msgs) != 1 || n.msgs[0].To != "noc@example.com" {
		t.Fatalf("expected a normal-report notification, got %+v", n.msgs)
	}
}

func TestRunCycle_OrderPreservedUnderConcurrency(t *testing.T) {
	targets := []domain.Target{
		{Name: "slow", Address: "10.0.0.1"},
		{Name: "medium", Address: "10.0.0.2"},
		{Name: "fast", Address: "10.0.0.3"},
	}
	p := &fakeProber{
		attempts: map[string][]domain.Attempt{
			"10.0.0.1": okAttempts(time.Millisecond),
			"10.0.0.2": okAttempts(time.Millisecond),
			"10.0.0.3": okAttempts(time.Millisecond),
		},
		delays: map[string]time.Duration{
			"10.0.0.1": 30 * time.Millisecond,
			"10.0.0.2": 15 * time.Millisecond,
		},
	}

	r := newTestRunner(p, &fakeSink{}, &fakeNotifier{})
	r.Targets = targets
	r.Concurrency = 3

	out := r.RunCycle(context.Background())
	for i, want := range []string{"slow", "medium", "fast"} {
		if out.Summaries[i].Target.Name != want {
			t.Fatalf("summary %d: want %s, got %s", i, want, out.Summaries[i].Target.Name)
		}
	}
}

func TestRunCycle_SinkFailureStillNotifies(t *testing.T) {
	p := &fakeProber{}
	s := &fakeSink{err: errors.New("disk full")}
	n := &fakeNotifier{}

	newTestRunner(p, s, n).RunCycle(context.Background())

	if len(n.msgs) != 1 {
		t.Fatalf("expected one notification despite sink failure, got %d", len(n.msgs))
	}
	if n.msgs[0].AttachmentPath != "" {
		t.Fatalf("failed report must not be attached: %+v", n.msgs[0])
	}
}

func TestRunCycle_StoresLatestOutcome(t *testing.T) {
	p := &fakeProber{}
	store := memory.New()

	r := newTestRunner(p, &fakeSink{}, &fakeNotifier{})
	r.Outcomes = store
	r.RunCycle(context.Background())

	got, err := store.Latest(context.Background())
	if err != nil || got == nil {
		t.Fatalf("expected stored outcome, got %+v err=%v", got, err)
	}
	if !got.AllUnreachable {
		t.Fatalf("stored outcome not as expected: %+v", got)
	}
}

func TestRun_ImmediatePassThenTicks(t *testing.T) {
	p := &fakeProber{}
	s := &fakeSink{}

	r := newTestRunner(p, s, &fakeNotifier{})
	r.Interval = 5 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	// wait for the immediate pass plus at least one tick
	time.Sleep(30 * time.Millisecond)
	cancel()

	s.mu.Lock()
	n := s.n
	s.mu.Unlock()
	if n < 2 {
		t.Fatalf("expected immediate pass plus ticks, got %d writes", n)
	}
}
