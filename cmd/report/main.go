package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"sales-insights-go/internal/dataset"
	"sales-insights-go/internal/export"
	"sales-insights-go/internal/ingest"
	"sales-insights-go/internal/insights"
	"sales-insights-go/internal/logger"
	"sales-insights-go/internal/types"
)

func main() {
	_ = godotenv.Load()

	appl := &cli.Command{
		Name:  "report",
		Usage: "Summarize or export a folder tree of call-analysis JSON records",
		Commands: []*cli.Command{
			summaryCommand(),
			exportCommand(),
		},
	}

	if err := appl.Run(context.Background(), os.Args); err != nil {
		logger.New().WithError(err).Error("failed to run")
		os.Exit(1)
	}
}

func summaryCommand() *cli.Command {
	return &cli.Command{
		Name:      "summary",
		Usage:     "Print the dataset overview as JSON",
		ArgsUsage: "<folder>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			snap, err := loadSnapshot(cmd)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{
				"overview":   snap.overview,
				"highlights": snap.highlights,
				"warnings":   snap.warnings,
			})
		},
	}
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Write the dataset and summary to an xlsx workbook",
		ArgsUsage: "<folder>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Output workbook path",
				Value:   "sales-insights.xlsx",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			snap, err := loadSnapshot(cmd)
			if err != nil {
				return err
			}
			f, err := export.WriteWorkbook(snap.ds, snap.overview)
			if err != nil {
				return fmt.Errorf("build workbook: %w", err)
			}
			out := cmd.String("out")
			if err := f.SaveAs(out); err != nil {
				return fmt.Errorf("save workbook: %w", err)
			}
			fmt.Fprintf(os.Stderr, "wrote %s (%d records, %d warnings)\n", out, len(snap.ds.Rows), len(snap.warnings))
			return nil
		},
	}
}

type cliSnapshot struct {
	ds         *dataset.Dataset
	overview   dataset.Overview
	highlights []insights.Highlight
	warnings   []types.Warning
}

func loadSnapshot(cmd *cli.Command) (*cliSnapshot, error) {
	if cmd.NArg() != 1 {
		return nil, fmt.Errorf("expected exactly one argument: folder path")
	}
	root := cmd.Args().First()

	records, warnings, err := ingest.Load(root)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	ds := dataset.Aggregate(records)
	return &cliSnapshot{
		ds:         ds,
		overview:   dataset.Summarize(ds, warnings),
		highlights: insights.Generate(ds),
		warnings:   warnings,
	}, nil
}
