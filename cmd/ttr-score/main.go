package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/boardscore/internal/scorecli"
)

func main() {
	var (
		file     = flag.String("file", "", "Players file (.yaml, .yml or .json)")
		format   = flag.String("format", scorecli.FormatText, "Output format: text or json")
		url      = flag.String("url", "", "Check the scores against a running server")
		timeout  = flag.Duration("timeout", scorecli.DefaultTimeout, "HTTP request timeout")
		logLevel = flag.String("log-level", "warn", "Log level: debug, info, warn, error")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help || *file == "" {
		scorecli.ShowHelp(os.Stdout)
		if !*help {
			os.Exit(2)
		}
		return
	}

	if err := scorecli.SetupLogging(*logLevel); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	config := &scorecli.Config{
		File:    *file,
		Format:  *format,
		URL:     *url,
		Timeout: *timeout,
	}
	if err := scorecli.Run(ctx, config, os.Stdout); err != nil {
		os.Stderr.WriteString("ttr-score: " + err.Error() + "\n")
		os.Exit(1)
	}
}
