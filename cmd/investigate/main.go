package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"investigator/adapters/boundary"
	"investigator/adapters/history"
	"investigator/adapters/statusdata"
	"investigator/app"
	"investigator/domain/check"
	"investigator/internal"
	"investigator/internal/config"
	"investigator/internal/report"
)

func main() {
	var configPath string
	var outputPath string
	var renderPath string
	var debug bool

	cmd := &cobra.Command{
		Use:   "investigate",
		Short: "Given historical numerical data, determine if the latest result is PASS or FAIL",
		RunE: func(cmd *cobra.Command, _ []string) error {
			level := internal.LogLevelInfo
			if debug {
				level = internal.LogLevelDebug
			}
			return run(cmd.Context(), configPath, outputPath, renderPath, internal.NewLogger(level))
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Investigation config file to use")
	cmd.Flags().StringVar(&outputPath, "output", "", "Write diagnostic records as JSON to this file")
	cmd.Flags().StringVar(&renderPath, "render", "", "Write an HTML report to this file")
	cmd.Flags().BoolVarP(&debug, "debug", "d", false, "Show debug output")
	cmd.MarkFlagRequired("config")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath, outputPath, renderPath string, logger *internal.Logger) error {
	inv, err := config.LoadInvestigation(configPath)
	if err != nil {
		return err
	}

	historySource, err := history.NewSource(inv.History, logger)
	if err != nil {
		return err
	}
	currentSource, err := statusdata.LoadFile(inv.Current.File)
	if err != nil {
		return err
	}

	checks := app.NewCheckService(boundary.NewRegistry(), logger)

	ids := make([]check.StrategyID, 0, len(inv.Strategies))
	for _, id := range inv.Strategies {
		ids = append(ids, check.StrategyID(id))
	}

	runID := uuid.New().String()
	logger.Debug("run %s checking sets %v", runID, inv.Sets)

	// Strategies are pure and the sources are read-only once loaded, so
	// every variable can be checked in parallel.
	outcomes := make([]report.VariableOutcome, len(inv.Sets))
	g, gctx := errgroup.WithContext(ctx)
	for i, variable := range inv.Sets {
		i, variable := i, variable
		g.Go(func() error {
			sample, err := historySource.History(gctx, variable)
			if err != nil {
				return fmt.Errorf("history for %s: %w", variable, err)
			}
			value, err := currentSource.Current(variable)
			if err != nil {
				return fmt.Errorf("current value for %s: %w", variable, err)
			}

			results, err := checks.Evaluate(sample, value, variable, ids)
			if err != nil {
				return fmt.Errorf("checking %s: %w", variable, err)
			}

			outcomes[i] = report.VariableOutcome{
				Variable: variable,
				Value:    *value,
				Results:  results,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := 0
	for _, outcome := range outcomes {
		verdict := "PASS"
		if !app.AllPassed(outcome.Results) {
			verdict = "FAIL"
			failed++
		}
		fmt.Printf("Checking %s: %s\n", outcome.Variable, verdict)
	}

	if outputPath != "" {
		if err := writeRecords(outputPath, runID, outcomes); err != nil {
			return err
		}
	}
	if renderPath != "" {
		md := report.BuildMarkdown(runID, outcomes)
		if err := os.WriteFile(renderPath, report.RenderHTML(md), 0o644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d variables failed", failed, len(outcomes))
	}
	return nil
}

func writeRecords(path, runID string, outcomes []report.VariableOutcome) error {
	type entry struct {
		Variable string                   `json:"variable"`
		Records  []check.DiagnosticRecord `json:"records"`
	}
	payload := struct {
		RunID   string  `json:"run_id"`
		Entries []entry `json:"entries"`
	}{RunID: runID}

	for _, outcome := range outcomes {
		e := entry{Variable: outcome.Variable}
		for _, r := range outcome.Results {
			e.Records = append(e.Records, r.Record)
		}
		payload.Entries = append(payload.Entries, e)
	}

	raw, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}
