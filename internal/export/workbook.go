// Package export renders the report collection as an .xlsx workbook.
package export

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/valeriaulyamaeva/daily-reports/models"
	"github.com/xuri/excelize/v2"
)

const (
	// FileName is the attachment name of the downloaded workbook.
	FileName = "reports.xlsx"
	// ContentType is the MIME type of an .xlsx workbook.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	// SheetName is the name of the single sheet in the workbook.
	SheetName = "Reports"
	// MaxCellChars is the most characters a spreadsheet cell holds. Longer text is cut.
	MaxCellChars = excelize.TotalCellChars
)

// Header is the first row of the sheet.
var Header = []string{"Date", "Report", "Notes", "Created At"}

// Rows returns one sanitized row per report, ascending by parsed date.
// Reports whose date does not parse come first. reports is not modified.
func Rows(reports []models.Report) [][]string {
	sorted := make([]models.Report, len(reports))
	copy(sorted, reports)
	SortByDate(sorted)

	rows := make([][]string, 0, len(sorted))
	for _, r := range sorted {
		rows = append(rows, []string{
			clip(Sanitize(r.Date)),
			clip(Sanitize(r.Report)),
			clip(Sanitize(r.Notes)),
			clip(Sanitize(r.DateCreated)),
		})
	}
	return rows
}

// Clipped returns the hex IDs of reports that have a field longer than MaxCellChars.
func Clipped(reports []models.Report) []string {
	var ids []string
	for _, r := range reports {
		for _, v := range []string{r.Date, r.Report, r.Notes, r.DateCreated} {
			if utf8.RuneCountInString(Sanitize(v)) > MaxCellChars {
				ids = append(ids, r.ID.Hex())
				break
			}
		}
	}
	return ids
}

func clip(s string) string {
	if utf8.RuneCountInString(s) <= MaxCellChars {
		return s
	}
	return string([]rune(s)[:MaxCellChars])
}

// SortByDate stable-sorts reports ascending by Date parsed as YYYY-MM-DD.
// An unparseable date sorts as the earliest possible date.
func SortByDate(reports []models.Report) {
	keys := make(map[string]time.Time, len(reports))
	for _, r := range reports {
		if _, ok := keys[r.Date]; !ok {
			keys[r.Date] = parseDate(r.Date)
		}
	}
	sort.SliceStable(reports, func(i, j int) bool {
		return keys[reports[i].Date].Before(keys[reports[j].Date])
	})
}

func parseDate(s string) time.Time {
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Sanitize drops control characters other than tab, newline and carriage return.
// Spreadsheet XML cannot carry them.
func Sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' && r != '\n' && r != '\r' {
			return -1
		}
		return r
	}, s)
}

// Workbook builds the complete workbook for reports and returns its bytes.
func Workbook(reports []models.Report) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := writeRow(f, 1, Header); err != nil {
		return nil, err
	}
	for i, row := range Rows(reports) {
		if err := writeRow(f, i+2, row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}

func writeRow(f *excelize.File, n int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return fmt.Errorf("row %d: %w", n, err)
	}
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
		return fmt.Errorf("write row %d: %w", n, err)
	}
	return nil
}
