package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/valeriaulyamaeva/daily-reports/utils"
	"go.uber.org/zap"
)

var seedCount int

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert fake reports into the configured store",
	Args:  cobra.NoArgs,
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().IntVar(&seedCount, "count", 10, "Number of reports to insert")
}

func runSeed(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	_, log, store, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	defer func() { _ = store.Close(context.Background()) }()

	reports, err := utils.GenerateTestReports(ctx, store, nil, seedCount)
	if err != nil {
		return err
	}
	log.Info("seed complete", zap.Int("reports", len(reports)))
	return nil
}
