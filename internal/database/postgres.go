package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valeriaulyamaeva/daily-reports/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// seq keeps insertion order for tie-breaking and first-match updates.
const postgresSchema = `
	CREATE TABLE IF NOT EXISTS reports (
		seq          BIGSERIAL PRIMARY KEY,
		id           TEXT NOT NULL UNIQUE,
		date         TEXT NOT NULL,
		report       TEXT NOT NULL,
		notes        TEXT NOT NULL DEFAULT '',
		date_created TEXT NOT NULL
	)`

// PostgresStore keeps reports in a PostgreSQL table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func ConnectPostgres(ctx context.Context, connStr string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ошибка создания таблицы reports: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) CreateReport(ctx context.Context, report *models.Report) error {
	query := `
		INSERT INTO reports (id, date, report, notes, date_created)
		VALUES ($1, $2, $3, $4, $5)`

	id := primitive.NewObjectID()
	_, err := s.pool.Exec(ctx, query,
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

func (s *PostgresStore) GetAllReports(ctx context.Context) ([]models.Report, error) {
	query := `
		SELECT id, date, report, notes, date_created
		FROM reports
		ORDER BY date COLLATE "C" DESC, seq ASC`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении отчетов: %w", err)
	}
	defer rows.Close()

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

func (s *PostgresStore) UpdateReportByDate(ctx context.Context, date, report, notes string) error {
	query := `
		UPDATE reports
		SET report = $1, notes = $2
		WHERE seq = (SELECT seq FROM reports WHERE date = $3 ORDER BY seq LIMIT 1)`

	result, err := s.pool.Exec(ctx, query, report, notes, date)
	if err != nil {
		return fmt.Errorf("ошибка обновления отчета: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("отчет за %s: %w", date, ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) DeleteReport(ctx context.Context, id primitive.ObjectID) error {
	query := `
		DELETE FROM reports
		WHERE id = $1`

	result, err := s.pool.Exec(ctx, query, id.Hex())
	if err != nil {
		return fmt.Errorf("ошибка удаления отчета: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("отчет с ID %s: %w", id.Hex(), ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) Close(context.Context) error {
	s.pool.Close()
	return nil
}
