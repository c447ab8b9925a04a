// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"
	"strings"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	smtpServer := strings.TrimSpace(os.Getenv("SMTP_SERVER"))
	emailAddr := strings.TrimSpace(os.Getenv("EMAIL_ADDRESS"))
	emailPass := strings.TrimSpace(os.Getenv("EMAIL_PASSWORD"))
	reportTo := strings.TrimSpace(os.Getenv("REPORT_RECIPIENT_EMAIL"))
	errorTo := strings.TrimSpace(os.Getenv("ERROR_RECIPIENT_EMAIL"))
	targetsFile := strings.TrimSpace(os.Getenv("TARGETS_FILE"))
	reportDir := strings.TrimSpace(os.Getenv("REPORT_DIR"))

	if smtpServer == "" {
		warn("SMTP_SERVER is empty — service will run in report-only mode, no email goes out.")
	} else {
		ok("SMTP_SERVER=" + smtpServer)
		if emailAddr == "" {
			fail("EMAIL_ADDRESS is empty (SMTP login and From header need it).")
		}
		if emailPass == "" {
			fail("EMAIL_PASSWORD is empty (SMTP login will be refused).")
		}
		if reportTo == "" {
			fail("REPORT_RECIPIENT_EMAIL is empty (normal reports have nowhere to go).")
		}
		if errorTo == "" {
			fail("ERROR_RECIPIENT_EMAIL is empty (all-unreachable alerts have nowhere to go).")
		}
		for name, v := range map[string]string{"REPORT_RECIPIENT_EMAIL": reportTo, "ERROR_RECIPIENT_EMAIL": errorTo} {
			if !strings.Contains(v, "@") {
				warn(name + " does not look like an email address: " + v)
			}
		}
	}

	if targetsFile == "" {
		targetsFile = "targets.yaml"
		warn("TARGETS_FILE is empty; default targets.yaml will be used.")
	}
	if _, err := os.Stat(targetsFile); err != nil {
		fail("targets file not readable: " + targetsFile)
	} else {
		ok("targets file present: " + targetsFile)
	}

	if reportDir == "" {
		warn("REPORT_DIR empty; default ./reports will be used.")
	} else {
		ok("REPORT_DIR=" + reportDir)
	}

	ok("preflight passed")
}
