package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamed0406/pingreport/internal/domain"
)

func TestCSV_Write_MixedCycle(t *testing.T) {
	now := time.Date(2025, 8, 26, 9, 30, 0, 0, time.UTC)
	avg := 16 * time.Millisecond

	outcome := domain.CycleOutcome{
		StartedAt: now,
		Summaries: []domain.HostSummary{
			{
				Target:     domain.Target{Name: "A", Address: "1.1.1.1"},
				Reachable:  true,
				AvgLatency: &avg,
				CheckedAt:  now,
			},
			{
				Target:    domain.Target{Name: "B", Address: "2.2.2.2"},
				CheckedAt: now,
			},
		},
	}

	dir := t.TempDir()
	path, err := NewCSV(dir).Write(outcome)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "link-report_20250826_093000.csv"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"Name", "Address", "Average Response Time (s)", "Time"}, rows[0])
	assert.Equal(t, []string{"A", "1.1.1.1", "0.0160", "2025-08-26 09:30:00"}, rows[1])
	assert.Equal(t, []string{"B", "2.2.2.2", "Unreachable", "2025-08-26 09:30:00"}, rows[2])
}

func TestCSV_Write_SingleAttemptMean(t *testing.T) {
	now := time.Date(2025, 8, 26, 12, 0, 0, 0, time.UTC)
	avg := 50 * time.Millisecond

	outcome := domain.CycleOutcome{
		StartedAt: now,
		Summaries: []domain.HostSummary{
			{
				Target:     domain.Target{Name: "A", Address: "1.1.1.1"},
				Reachable:  true,
				AvgLatency: &avg,
				CheckedAt:  now,
			},
		},
	}

	path, err := NewCSV(t.TempDir()).Write(outcome)
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "0.0500")
}

func TestCSV_Write_CreatesNestedDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "reports")
	outcome := domain.CycleOutcome{StartedAt: time.Now()}

	path, err := NewCSV(dir).Write(outcome)
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}
