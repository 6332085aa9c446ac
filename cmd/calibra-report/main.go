// Command calibra-report renders a manager's team final scores for one cycle
// as a PDF packet.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"calibra/internal/app"
	"calibra/internal/platform/config"
	"calibra/internal/platform/logger"
	"calibra/internal/review/report"
	id "calibra/pkg/domain"
)

func main() {
	cycleFlag := flag.String("cycle", "", "review cycle ID")
	managerFlag := flag.String("manager", "", "manager user ID")
	out := flag.String("out", "team-scores.pdf", "output file")
	flag.Parse()

	if err := run(*cycleFlag, *managerFlag, *out); err != nil {
		fmt.Fprintln(os.Stderr, "calibra-report:", err)
		os.Exit(1)
	}
}

func run(cycleArg, managerArg, out string) error {
	cycleID, err := id.ParseCycleID(cycleArg)
	if err != nil {
		return fmt.Errorf("-cycle: %w", err)
	}
	managerID, err := id.ParseUserID(managerArg)
	if err != nil {
		return fmt.Errorf("-manager: %w", err)
	}

	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	ctx := context.Background()

	a, err := app.Build(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	cycle, err := a.Service.GetReviewCycle(ctx, cycleID)
	if err != nil {
		return err
	}
	scores, err := a.Service.GetTeamFinalScores(ctx, managerID, cycleID)
	if err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := report.TeamScoresPDF(f, cycle, scores); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Info("team report written", "path", out, "cycle", cycle.Name, "rows", len(scores.TeamScores))
	return nil
}
