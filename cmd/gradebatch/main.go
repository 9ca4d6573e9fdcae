// Package main provides the gradebatch CLI: it loads an ordered list of
// assignment specs from a JSON file, opens one authenticated browser
// session against a Gradescope course, creates every assignment through
// the web UI, and prints a per-assignment report.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/entrhq/gradebatch/pkg/assignment"
	"github.com/entrhq/gradebatch/pkg/batch"
	"github.com/entrhq/gradebatch/pkg/config"
	"github.com/entrhq/gradebatch/pkg/driver"
	"github.com/entrhq/gradebatch/pkg/logging"
	"github.com/entrhq/gradebatch/pkg/session"
)

const version = "0.1.0"

func main() {
	var (
		configPath  = flag.String("config", "", "Path to configuration file (YAML)")
		input       = flag.String("input", "", "Path to JSON batch file (overrides config)")
		courseURL   = flag.String("course", "", "Course URL (overrides config)")
		headless    = flag.Bool("headless", false, "Run the browser without a window")
		showVersion = flag.Bool("version", false, "Show version and exit")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "gradebatch - batch assignment creation for Gradescope courses\n\n")
		fmt.Fprintf(os.Stderr, "Usage: gradebatch [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment:\n")
		fmt.Fprintf(os.Stderr, "  GRADEBATCH_EMAIL       account email\n")
		fmt.Fprintf(os.Stderr, "  GRADEBATCH_PASSWORD    account password\n")
		fmt.Fprintf(os.Stderr, "  GRADEBATCH_COURSE_URL  course URL\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  gradebatch -input assignments.json -course https://www.gradescope.com/courses/123456\n")
		fmt.Fprintf(os.Stderr, "  gradebatch -config gradebatch.yaml -headless\n")
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("gradebatch v%s\n", version)
		return
	}

	// Cancel the run on Ctrl-C; the orchestrator finishes the in-flight
	// assignment and marks the rest cancelled.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nshutting down after the current assignment...")
		cancel()
	}()

	if err := run(ctx, *configPath, *input, *courseURL, *headless); err != nil {
		fmt.Fprintf(os.Stderr, "gradebatch: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath, inputFlag, courseFlag string, headlessFlag bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if inputFlag != "" {
		cfg.Input = inputFlag
	}
	if courseFlag != "" {
		cfg.CourseURL = courseFlag
	}
	if headlessFlag {
		cfg.Headless = true
	}

	if err := promptMissing(&cfg); err != nil {
		return err
	}
	if cfg.Input == "" {
		return fmt.Errorf("no batch file given (use -input, the config file, or GRADEBATCH_INPUT)")
	}

	specs, err := assignment.LoadFile(cfg.Input)
	if err != nil {
		return err
	}
	if len(specs) == 0 {
		return fmt.Errorf("batch file %s contains no assignments", cfg.Input)
	}

	log, logErr := logging.New("gradebatch")
	if logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", logErr)
	}
	defer log.Close()
	log.Infof("run %s: %d assignments from %s", logging.RunID(), len(specs), cfg.Input)

	fmt.Printf("Creating %d assignments in %s\n", len(specs), cfg.CourseURL)

	sess, err := session.Open(
		session.Credentials{Email: cfg.Email, Password: cfg.Password},
		cfg.CourseURL,
		session.Options{
			Headless: cfg.Headless,
			Timeout:  cfg.Timeout,
			Logger:   log.Named("session"),
		},
	)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil {
			log.Warnf("session teardown: %v", cerr)
		}
	}()

	exec := driver.New(sess,
		driver.WithTimeout(cfg.Timeout),
		driver.WithLogger(log.Named("driver")),
	)

	outcomes := batch.Run(ctx, exec, specs, batch.Options{
		Pause:  cfg.Pause,
		Logger: log.Named("batch"),
	})

	fmt.Print(renderReport(outcomes))
	if path := log.Path(); path != "" {
		fmt.Printf("Full log: %s\n", path)
	}

	for _, o := range outcomes {
		if !o.OK() {
			return fmt.Errorf("%d of %d assignments failed", countFailed(outcomes), len(outcomes))
		}
	}
	return nil
}

func countFailed(outcomes []batch.Outcome) int {
	failed := 0
	for _, o := range outcomes {
		if !o.OK() {
			failed++
		}
	}
	return failed
}
