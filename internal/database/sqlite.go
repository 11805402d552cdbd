package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/valeriaulyamaeva/daily-reports/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	_ "modernc.org/sqlite" // pure go sqlite driver
)

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS reports (
		seq          INTEGER PRIMARY KEY AUTOINCREMENT,
		id           TEXT NOT NULL UNIQUE,
		date         TEXT NOT NULL,
		report       TEXT NOT NULL,
		notes        TEXT NOT NULL DEFAULT '',
		date_created TEXT NOT NULL
	)`

// SQLiteStore keeps reports in a local SQLite file. Used for development and tests.
type SQLiteStore struct {
	db *sql.DB
}

func ConnectSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("ошибка создания каталога для БД: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия SQLite: %w", err)
	}
	// single writer
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ошибка создания таблицы reports: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) CreateReport(ctx context.Context, report *models.Report) error {
	query := `
		INSERT INTO reports (id, date, report, notes, date_created)
		VALUES (?, ?, ?, ?, ?)`

	id := primitive.NewObjectID()
	_, err := s.db.ExecContext(ctx, query,
		id.Hex(),
		report.Date,
		report.Report,
		report.Notes,
		report.DateCreated)
	if err != nil {
		return fmt.Errorf("ошибка при добавлении отчета: %w", err)
	}
	report.ID = id
	return nil
}

func (s *SQLiteStore) GetAllReports(ctx context.Context) ([]models.Report, error) {
	query := `
		SELECT id, date, report, notes, date_created
		FROM reports
		ORDER BY date DESC, seq ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении отчетов: %w", err)
	}
	defer func() { _ = rows.Close() }()

	reports := []models.Report{}
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при чтении отчетов: %w", err)
	}
	return reports, nil
}

func (s *SQLiteStore) UpdateReportByDate(ctx context.Context, date, report, notes string) error {
	query := `
		UPDATE reports
		SET report = ?, notes = ?
		WHERE seq = (SELECT seq FROM reports WHERE date = ? ORDER BY seq LIMIT 1)`

	result, err := s.db.ExecContext(ctx, query, report, notes, date)
	if err != nil {
		return fmt.Errorf("ошибка обновления отчета: %w", err)
	}
	return requireAffected(result, fmt.Sprintf("отчет за %s", date))
}

func (s *SQLiteStore) DeleteReport(ctx context.Context, id primitive.ObjectID) error {
	query := `
		DELETE FROM reports
		WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, id.Hex())
	if err != nil {
		return fmt.Errorf("ошибка удаления отчета: %w", err)
	}
	return requireAffected(result, fmt.Sprintf("отчет с ID %s", id.Hex()))
}

func (s *SQLiteStore) Close(context.Context) error {
	return s.db.Close()
}

func requireAffected(result sql.Result, what string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка получения числа измененных строк: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
