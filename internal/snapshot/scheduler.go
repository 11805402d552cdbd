package snapshot

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/valeriaulyamaeva/daily-reports/internal/database"
	"github.com/valeriaulyamaeva/daily-reports/internal/export"
	"go.uber.org/zap"
)

// Key returns the object key for a snapshot taken at t.
func Key(t time.Time) string {
	return "reports-" + t.UTC().Format("20060102T150405Z") + ".xlsx"
}

// Exporter builds the workbook from the store and hands it to the sink.
type Exporter struct {
	store database.ReportStore
	sink  Sink
	log   *zap.Logger
	now   func() time.Time
}

func NewExporter(store database.ReportStore, sink Sink, log *zap.Logger) *Exporter {
	return &Exporter{store: store, sink: sink, log: log, now: time.Now}
}

// Run writes one snapshot and returns its key.
func (e *Exporter) Run(ctx context.Context) (string, error) {
	reports, err := e.store.GetAllReports(ctx)
	if err != nil {
		return "", fmt.Errorf("load reports: %w", err)
	}
	if ids := export.Clipped(reports); len(ids) > 0 {
		e.log.Warn("report text cut to spreadsheet cell limit",
			zap.Int("limit", export.MaxCellChars), zap.Strings("ids", ids))
	}
	buf, err := export.Workbook(reports)
	if err != nil {
		return "", err
	}
	key := Key(e.now())
	if err := e.sink.Put(ctx, key, buf.Bytes()); err != nil {
		return "", err
	}
	e.log.Info("snapshot written", zap.String("key", key), zap.Int("reports", len(reports)))
	return key, nil
}

// Scheduler runs the Exporter on a cron schedule.
// A tick that fires while the previous export still runs is skipped.
type Scheduler struct {
	cron   *cron.Cron
	cancel context.CancelFunc
	log    *zap.Logger
}

// Schedule registers exporter under the cron expression and starts the cron runner.
func Schedule(expr string, exporter *Exporter, log *zap.Logger) (*Scheduler, error) {
	ctx, cancel := context.WithCancel(context.Background())
	cronLog := cron.PrintfLogger(zap.NewStdLog(log))
	c := cron.New(
		cron.WithLogger(cronLog),
		cron.WithChain(cron.SkipIfStillRunning(cronLog)),
	)
	_, err := c.AddFunc(expr, func() {
		if _, err := exporter.Run(ctx); err != nil {
			log.Error("ошибка выгрузки отчетов", zap.Error(err))
		}
	})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("ошибка настройки CRON-задачи %q: %w", expr, err)
	}
	c.Start()
	log.Info("export snapshots scheduled", zap.String("schedule", expr))
	return &Scheduler{cron: c, cancel: cancel, log: log}, nil
}

// Stop cancels a running export, halts the scheduler and waits for the job
// to return until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	s.cancel()
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.log.Warn("export snapshot still running at shutdown")
	}
}
