package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/theadell/soccergame/internal/match"
	"github.com/theadell/soccergame/internal/trace"
)

const DEFAULT_RUN_TIMEOUT = time.Minute

// runCmd simulates a single match. Diagnostics go to the error log, the
// state trace to the log file and a summary to stdout.
func runCmd(args []string) int {
	return runMatch(args, os.Stdout, os.Stderr)
}

func runMatch(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(stderr)
	logPath := fs.String("log", "log", "Path of the state trace log")
	errLogPath := fs.String("errlog", "", "Path of the error log, defaults to stderr")
	timeout := fs.Duration("timeout", DEFAULT_RUN_TIMEOUT, "Abort the match after this long")
	verbose := fs.Bool("v", false, "Log every actor transition")
	cfg := matchFlags(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	errOut := stderr
	if *errLogPath != "" {
		f, err := os.OpenFile(*errLogPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(stderr, "open error log: %s\n", err)
			return 1
		}
		defer f.Close()
		errOut = f
	}
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: level})))

	if err := cfg.ValidatePopulation(); err != nil {
		slog.Error("Invalid match configuration", "error", err)
		return 1
	}

	rec, err := trace.OpenFile(*logPath)
	if err != nil {
		slog.Error("Failed to open trace log", "error", err)
		return 1
	}
	defer func() {
		if err := rec.Close(); err != nil {
			slog.Error("Failed to close trace log", "error", err)
		}
	}()

	m, err := match.New(*cfg, rec)
	if err != nil {
		slog.Error("Failed to create match", "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	res, err := m.Run(ctx)
	if err != nil {
		slog.Error("Match aborted", "error", fmt.Sprintf("%+v", err))
		return 1
	}

	fmt.Fprintf(stdout, "Match finished in %s\n", res.Duration.Round(time.Microsecond))
	for team := 1; team <= cfg.Teams; team++ {
		fmt.Fprintln(stdout, lineupSummary(team, res.Lineups[team]))
	}
	if late := lateText(res); late != "" {
		fmt.Fprintf(stdout, "Late: %s\n", late)
	}
	return 0
}

func lineupSummary(team int, l match.Lineup) string {
	s := fmt.Sprintf("Team %d:", team)
	for _, id := range l.Players {
		s += fmt.Sprintf(" P%02d", id)
	}
	return s + fmt.Sprintf(" | G%02d", l.Goalie)
}
