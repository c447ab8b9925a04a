// pingonce runs a single probe cycle against the targets file and prints the
// result as a table. No email is sent; pass -report-dir to also keep the CSV.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/pingreport/internal/probe"
	"github.com/hamed0406/pingreport/internal/registry"
	"github.com/hamed0406/pingreport/internal/report"
	"github.com/hamed0406/pingreport/internal/scheduler"
)

func main() {
	var (
		targetsFile = flag.String("targets", "targets.yaml", "targets yaml file")
		attempts    = flag.Int("attempts", 5, "echo attempts per host")
		timeout     = flag.Duration("timeout", 4*time.Second, "per-attempt timeout")
		concurrency = flag.Int("concurrency", 4, "hosts probed in parallel")
		reportDir   = flag.String("report-dir", "", "also write the CSV report under this directory")
		privileged  = flag.Bool("privileged", false, "use raw ICMP sockets (needs root or CAP_NET_RAW)")
	)
	flag.Parse()

	targets, err := registry.Load(*targetsFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var sink report.Sink
	if *reportDir != "" {
		sink = report.NewCSV(*reportDir)
	}

	runner := scheduler.NewRunner(
		zap.NewNop(),
		targets,
		probe.NewICMP(*timeout, *privileged),
		sink,
		nil, // no notifications from the CLI
		nil,
		scheduler.Recipients{},
		*attempts,
		0,
		*concurrency,
	)
	outcome := runner.RunCycle(context.Background())

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tADDRESS\tSTATUS\tAVG (s)")
	for _, s := range outcome.Summaries {
		status, avg := "down", "-"
		if s.Reachable {
			status = "up"
			avg = fmt.Sprintf("%.4f", s.AvgLatency.Seconds())
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.Target.Name, s.Target.Address, status, avg)
	}
	w.Flush()

	if outcome.AllUnreachable {
		fmt.Fprintln(os.Stderr, "all hosts unreachable")
		os.Exit(1)
	}
}
