package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/valeriaulyamaeva/daily-reports/internal/database"
	"github.com/valeriaulyamaeva/daily-reports/models"
)

// seedWindow bounds how far back generated report dates go.
const seedWindow = 90 * 24 * time.Hour

// GenerateTestReports inserts numReports fake reports through store.
// faker may be nil, in which case a randomly seeded one is used.
func GenerateTestReports(ctx context.Context, store database.ReportStore, faker *gofakeit.Faker, numReports int) ([]*models.Report, error) {
	if faker == nil {
		faker = gofakeit.New(0)
	}
	now := time.Now()

	reports := make([]*models.Report, 0, numReports)
	for i := 0; i < numReports; i++ {
		date := faker.DateRange(now.Add(-seedWindow), now).Format(models.DateLayout)
		notes := ""
		if faker.Bool() {
			notes = faker.Sentence(4)
		}

		report := models.NewReport(date, faker.Sentence(8), notes)
		if err := store.CreateReport(ctx, report); err != nil {
			return reports, fmt.Errorf("ошибка при добавлении отчета %d: %w", i+1, err)
		}
		reports = append(reports, report)
	}
	return reports, nil
}
