package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/valeriaulyamaeva/daily-reports/internal/config"
	"github.com/valeriaulyamaeva/daily-reports/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned when an update or delete matches no report.
var ErrNotFound = errors.New("report not found")

// ReportStore is the persistence surface used by the handlers.
// Every method performs a single store operation.
type ReportStore interface {
	// CreateReport inserts report and sets its ID.
	CreateReport(ctx context.Context, report *models.Report) error
	// GetAllReports returns every report, descending by Date,
	// ties in insertion order.
	GetAllReports(ctx context.Context) ([]models.Report, error)
	// UpdateReportByDate sets report and notes on the first report with the given date.
	UpdateReportByDate(ctx context.Context, date, report, notes string) error
	DeleteReport(ctx context.Context, id primitive.ObjectID) error
	Close(ctx context.Context) error
}

// ConnectDB opens the store selected by cfg.Driver.
func ConnectDB(ctx context.Context, cfg config.Config) (ReportStore, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		return ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection)
	case config.DriverPostgres:
		return ConnectPostgres(ctx, cfg.DatabaseURL)
	case config.DriverSQLite:
		return ConnectSQLite(ctx, cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("неизвестный драйвер хранилища %q", cfg.Driver)
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (models.Report, error) {
	var (
		report models.Report
		hexID  string
	)
	if err := row.Scan(&hexID, &report.Date, &report.Report, &report.Notes, &report.DateCreated); err != nil {
		return models.Report{}, fmt.Errorf("ошибка при чтении отчета: %w", err)
	}
	id, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return models.Report{}, fmt.Errorf("некорректный ID отчета %q: %w", hexID, err)
	}
	report.ID = id
	return report, nil
}
