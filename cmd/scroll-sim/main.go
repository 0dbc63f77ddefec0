package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/flick/internal/simevents"
	"github.com/okian/flick/pkg/logger"
)

func main() {
	var (
		scenarioFile = flag.String("scenarios", "", "YAML scenario file (default: built-in set)")
		reportFile   = flag.String("report", "", "JSON report output file")
		verbose      = flag.Bool("verbose", false, "Enable verbose logging")
		help         = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		simevents.ShowHelp()
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	config := &simevents.Config{
		ScenarioFile: *scenarioFile,
		ReportFile:   *reportFile,
		Verbose:      *verbose,
		Logger:       logger.Get(),
	}

	if err := simevents.Run(ctx, config); err != nil {
		logger.Get().Error(ctx, "simulation failed", logger.Error(err))
		os.Exit(1)
	}
}
