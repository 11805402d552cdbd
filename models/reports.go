package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DateLayout is the expected format of Report.Date.
const DateLayout = "2006-01-02"

// Report is one day's free-text report plus optional notes.
type Report struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty" db:"id"`
	Date        string             `json:"date" bson:"date" db:"date"`
	Report      string             `json:"report" bson:"report" db:"report"`
	Notes       string             `json:"notes" bson:"notes" db:"notes"`
	DateCreated string             `json:"dateCreated" bson:"dateCreated" db:"date_created"`
}

// NewReport builds a Report stamped with the current creation time.
func NewReport(date, report, notes string) *Report {
	return &Report{
		Date:        date,
		Report:      report,
		Notes:       notes,
		DateCreated: Timestamp(time.Now()),
	}
}

// Timestamp formats t the way DateCreated is stored.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
