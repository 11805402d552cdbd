package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valeriaulyamaeva/daily-reports/internal/database"
	"github.com/valeriaulyamaeva/daily-reports/internal/export"
	"github.com/valeriaulyamaeva/daily-reports/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// mockStore records calls and returns canned results.
type mockStore struct {
	reports   []models.Report
	err       error
	created   []*models.Report
	updated   []models.ReportInput
	deleted   []primitive.ObjectID
	callCount int
}

func (m *mockStore) CreateReport(_ context.Context, report *models.Report) error {
	m.callCount++
	if m.err != nil {
		return m.err
	}
	report.ID = primitive.NewObjectID()
	m.created = append(m.created, report)
	return nil
}

func (m *mockStore) GetAllReports(context.Context) ([]models.Report, error) {
	m.callCount++
	return m.reports, m.err
}

func (m *mockStore) UpdateReportByDate(_ context.Context, date, report, notes string) error {
	m.callCount++
	m.updated = append(m.updated, models.ReportInput{Date: date, Report: report, Notes: notes})
	return m.err
}

func (m *mockStore) DeleteReport(_ context.Context, id primitive.ObjectID) error {
	m.callCount++
	m.deleted = append(m.deleted, id)
	return m.err
}

func (m *mockStore) Close(context.Context) error { return nil }

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(h gin.HandlerFunc, method, body string) *httptest.ResponseRecorder {
	r := gin.New()
	r.Handle(method, "/", h)
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestIndexHandler(t *testing.T) {
	w := serve(IndexHandler(), http.MethodGet, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Server is running!", w.Body.String())
}

func TestCreateReportHandler(t *testing.T) {
	store := &mockStore{}
	w := serve(CreateReportHandler(store, zap.NewNop()), http.MethodPost,
		`{"date":"2024-03-01","report":"Fixed bug","dateCreated":"1999-01-01T00:00:00Z"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Report added successfully", decode(t, w)["message"])
	require.Len(t, store.created, 1)
	got := store.created[0]
	assert.Equal(t, "2024-03-01", got.Date)
	assert.Equal(t, "Fixed bug", got.Report)
	assert.Equal(t, "", got.Notes)
	assert.NotEqual(t, "1999-01-01T00:00:00Z", got.DateCreated)
	assert.NotEmpty(t, got.DateCreated)
}

func TestCreateReportHandlerValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing date", `{"report":"x"}`, "Date and report are required"},
		{"missing report", `{"date":"2024-01-01"}`, "Date and report are required"},
		{"empty report", `{"date":"2024-01-01","report":""}`, "Date and report are required"},
		{"malformed json", `{"date":`, "Invalid request body"},
		{"empty body", ``, "Invalid request body"},
		{"wrong type", `{"date":20240101,"report":"x"}`, "Invalid request body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockStore{}
			w := serve(CreateReportHandler(store, zap.NewNop()), http.MethodPost, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.want, decode(t, w)["error"])
			assert.Zero(t, store.callCount)
		})
	}
}

func TestCreateReportHandlerStoreFailure(t *testing.T) {
	store := &mockStore{err: errors.New("connection reset")}
	w := serve(CreateReportHandler(store, zap.NewNop()), http.MethodPost, `{"date":"2024-01-01","report":"x"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, decode(t, w), "error")
}

func TestGetReportsHandler(t *testing.T) {
	id := primitive.NewObjectID()
	store := &mockStore{reports: []models.Report{{ID: id, Date: "2024-01-02", Report: "r", DateCreated: "t"}}}
	w := serve(GetReportsHandler(store, zap.NewNop()), http.MethodGet, "")
	require.Equal(t, http.StatusOK, w.Code)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, id.Hex(), got[0]["id"])
	assert.Equal(t, "", got[0]["notes"])
	for _, key := range []string{"id", "date", "report", "notes", "dateCreated"} {
		assert.Contains(t, got[0], key)
	}
}

func TestGetReportsHandlerFailure(t *testing.T) {
	store := &mockStore{err: errors.New("boom")}
	w := serve(GetReportsHandler(store, zap.NewNop()), http.MethodGet, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestUpdateReportHandler(t *testing.T) {
	store := &mockStore{}
	w := serve(UpdateReportHandler(store, zap.NewNop()), http.MethodPut, `{"date":"2024-01-01","report":"new"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Report updated successfully", decode(t, w)["message"])
	require.Len(t, store.updated, 1)
	assert.Equal(t, models.ReportInput{Date: "2024-01-01", Report: "new", Notes: ""}, store.updated[0])
}

func TestUpdateReportHandlerNotFound(t *testing.T) {
	store := &mockStore{err: database.ErrNotFound}
	w := serve(UpdateReportHandler(store, zap.NewNop()), http.MethodPut, `{"date":"2030-01-01","report":"new"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No report found to update", decode(t, w)["message"])
}

func TestUpdateReportHandlerValidation(t *testing.T) {
	for _, body := range []string{`{"report":"x"}`, `{"date":"2024-01-01"}`, `not json`} {
		store := &mockStore{}
		w := serve(UpdateReportHandler(store, zap.NewNop()), http.MethodPut, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Zero(t, store.callCount, body)
	}
}

func TestDeleteReportHandler(t *testing.T) {
	id := primitive.NewObjectID()
	store := &mockStore{}
	w := serve(DeleteReportHandler(store, zap.NewNop()), http.MethodDelete, `{"id":"`+id.Hex()+`"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Report deleted successfully", decode(t, w)["message"])
	assert.Equal(t, []primitive.ObjectID{id}, store.deleted)
}

func TestDeleteReportHandlerErrors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		storeErr error
		code     int
		key      string
		prefix   string
	}{
		{"missing id", `{}`, nil, http.StatusBadRequest, "error", "ID is required"},
		{"malformed id", `{"id":"not-an-id"}`, nil, http.StatusBadRequest, "error", "Invalid report id: "},
		{"date instead of id", `{"id":"2024-01-01"}`, nil, http.StatusBadRequest, "error", "Invalid report id: "},
		{"unknown id", `{"id":"` + primitive.NewObjectID().Hex() + `"}`, database.ErrNotFound, http.StatusNotFound, "message", "No report found to delete"},
		{"store failure", `{"id":"` + primitive.NewObjectID().Hex() + `"}`, errors.New("down"), http.StatusInternalServerError, "error", "Failed to delete report"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockStore{err: tt.storeErr}
			w := serve(DeleteReportHandler(store, zap.NewNop()), http.MethodDelete, tt.body)
			assert.Equal(t, tt.code, w.Code)
			assert.True(t, strings.HasPrefix(decode(t, w)[tt.key], tt.prefix), w.Body.String())
			if tt.code == http.StatusBadRequest {
				assert.Empty(t, store.deleted)
			}
		})
	}
}

func TestDownloadReportsHandler(t *testing.T) {
	store := &mockStore{reports: []models.Report{{Date: "2024-01-01", Report: "r", DateCreated: "t"}}}
	w := serve(DownloadReportsHandler(store, zap.NewNop()), http.MethodGet, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, export.ContentType, w.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=reports.xlsx", w.Header().Get("Content-Disposition"))
	// xlsx is a zip archive
	assert.True(t, strings.HasPrefix(w.Body.String(), "PK"))
}

func TestDownloadReportsHandlerWarnsOnLongText(t *testing.T) {
	long := models.Report{ID: primitive.NewObjectID(), Date: "2024-01-01", Report: strings.Repeat("a", export.MaxCellChars+1)}
	store := &mockStore{reports: []models.Report{long}}
	core, logs := observer.New(zapcore.WarnLevel)

	w := serve(DownloadReportsHandler(store, zap.New(core)), http.MethodGet, "")
	require.Equal(t, http.StatusOK, w.Code)

	entries := logs.FilterMessage("report text cut to spreadsheet cell limit").All()
	require.Len(t, entries, 1)
	assert.Equal(t, []interface{}{long.ID.Hex()}, entries[0].ContextMap()["ids"])
}

func TestDownloadReportsHandlerFailure(t *testing.T) {
	store := &mockStore{err: errors.New("boom")}
	w := serve(DownloadReportsHandler(store, zap.NewNop()), http.MethodGet, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
