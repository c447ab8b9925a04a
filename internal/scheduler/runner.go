package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/pingreport/internal/aggregate"
	"github.com/hamed0406/pingreport/internal/domain"
	"github.com/hamed0406/pingreport/internal/notify"
	"github.com/hamed0406/pingreport/internal/probe"
	"github.com/hamed0406/pingreport/internal/repo"
	"github.com/hamed0406/pingreport/internal/report"
)

// Fixed subject/body per branch. The error inbox gets a distinct subject so
// mail rules can route it.
const (
	errorSubject  = "Ping Report - Error"
	errorBody     = "All hosts are unreachable or there is no internet access."
	reportSubject = "Network Status Report"
	reportBody    = "Please find attached the latest network status report."
)

// Recipients routes the per-cycle notification: Error when every host was
// unreachable, Report otherwise.
type Recipients struct {
	Report string
	Error  string
}

type Runner struct {
	Logger      *zap.Logger
	Targets     []domain.Target
	Prober      probe.Prober
	Sink        report.Sink
	Notifier    notify.Notifier // nil disables notifications
	Outcomes    repo.OutcomeStore
	Recipients  Recipients
	Attempts    int
	Interval    time.Duration
	Concurrency int
}

func NewRunner(
	logger *zap.Logger,
	targets []domain.Target,
	prober probe.Prober,
	sink report.Sink,
	notifier notify.Notifier,
	outcomes repo.OutcomeStore,
	recipients Recipients,
	attempts int,
	interval time.Duration,
	concurrency int,
) *Runner {
	if attempts < 1 {
		attempts = 1
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &Runner{
		Logger:      logger,
		Targets:     targets,
		Prober:      prober,
		Sink:        sink,
		Notifier:    notifier,
		Outcomes:    outcomes,
		Recipients:  recipients,
		Attempts:    attempts,
		Interval:    interval,
		Concurrency: concurrency,
	}
}

// Run starts the loop: an immediate cycle, then one per tick. RunCycle is
// called synchronously here, so a new cycle can never start while the
// previous one is still probing. Stops when ctx is cancelled.
func (r *Runner) Run(ctx context.Context) {
	r.RunCycle(ctx)
	if r.Interval <= 0 {
		r.Logger.Info("scheduler_disabled")
		return
	}

	t := time.NewTicker(r.Interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			r.Logger.Info("scheduler_stopped")
			return
		case <-t.C:
			r.RunCycle(ctx)
		}
	}
}

// RunCycle probes every target, aggregates, and hands the outcome to the
// report sink and notifier. Targets are probed with bounded concurrency but
// the summaries always come back in registry order. Sink, store, and
// notifier failures are logged and never fail the cycle.
func (r *Runner) RunCycle(ctx context.Context) domain.CycleOutcome {
	started := time.Now()
	r.Logger.Info("cycle_start",
		zap.Int("targets", len(r.Targets)),
		zap.Int("attempts", r.Attempts),
	)

	// one snapshot per cycle so every row in the report carries the same time
	summaries := make([]domain.HostSummary, len(r.Targets))

	sem := make(chan struct{}, r.Concurrency)
	var wg sync.WaitGroup
	for i, tgt := range r.Targets {
		sem <- struct{}{}
		wg.Add(1)
		go func(i int, tgt domain.Target) {
			defer func() { <-sem }()
			defer wg.Done()

			attempts := r.Prober.Probe(ctx, tgt.Address, r.Attempts)
			summaries[i] = aggregate.Summarize(tgt, attempts, started)
		}(i, tgt)
	}
	wg.Wait()

	outcome := aggregate.Classify(summaries, started)

	if r.Outcomes != nil {
		if err := r.Outcomes.SetLatest(ctx, outcome); err != nil {
			r.Logger.Warn("outcome_store_error", zap.Error(err))
		}
	}

	path := r.writeReport(outcome)
	r.sendNotification(ctx, outcome, path)

	r.Logger.Info("cycle_complete",
		zap.Bool("all_unreachable", outcome.AllUnreachable),
		zap.Int("reachable", reachableCount(outcome)),
		zap.Int("targets", len(outcome.Summaries)),
		zap.Duration("elapsed", time.Since(started)),
	)
	return outcome
}

func (r *Runner) writeReport(outcome domain.CycleOutcome) string {
	if r.Sink == nil {
		return ""
	}
	path, err := r.Sink.Write(outcome)
	if err != nil {
		r.Logger.Error("report_write_error", zap.Error(err))
		return ""
	}
	r.Logger.Info("report_written", zap.String("path", path))
	return path
}

func (r *Runner) sendNotification(ctx context.Context, outcome domain.CycleOutcome, attachment string) {
	if r.Notifier == nil {
		return
	}

	msg := notify.Message{
		To:             r.Recipients.Report,
		Subject:        reportSubject,
		Body:           reportBody,
		AttachmentPath: attachment,
	}
	if outcome.AllUnreachable {
		msg.To = r.Recipients.Error
		msg.Subject = errorSubject
		msg.Body = errorBody
	}

	if err := r.Notifier.Send(ctx, msg); err != nil {
		r.Logger.Error("notify_error",
			zap.String("to", msg.To),
			zap.Error(err),
		)
		return
	}
	r.Logger.Info("notify_sent",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
	)
}

func reachableCount(outcome domain.CycleOutcome) int {
	n := 0
	for _, s := range outcome.Summaries {
		if s.Reachable {
			n++
		}
	}
	return n
}
