package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hamed0406/pingreport/internal/domain"
)

const (
	fileStamp = "20060102_150405"
	rowStamp  = "2006-01-02 15:04:05"
)

var header = []string{"Name", "Address", "Average Response Time (s)", "Time"}

// CSV writes one timestamped report file per cycle under Dir, one row per
// target in registry order. The latency cell is seconds with four decimals,
// or the literal "Unreachable".
type CSV struct {
	Dir string
}

func NewCSV(dir string) *CSV {
	return &CSV{Dir: dir}
}

func (c *CSV) Write(outcome domain.CycleOutcome) (string, error) {
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return "", fmt.Errorf("report dir: %w", err)
	}

	path := filepath.Join(c.Dir, "link-report_"+outcome.StartedAt.Format(fileStamp)+".csv")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return "", err
	}
	for _, s := range outcome.Summaries {
		if err := w.Write(row(s)); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}

func row(s domain.HostSummary) []string {
	latency := "Unreachable"
	if s.Reachable && s.AvgLatency != nil {
		latency = fmt.Sprintf("%.4f", s.AvgLatency.Seconds())
	}
	return []string{s.Target.Name, s.Target.Address, latency, s.CheckedAt.Format(rowStamp)}
}
