package models

// ReportInput is the body of the add and update requests.
type ReportInput struct {
	Date   string `json:"date"`
	Report string `json:"report"`
	Notes  string `json:"notes"`
}

// DeleteInput is the body of the delete request.
type DeleteInput struct {
	ID string `json:"id"`
}
