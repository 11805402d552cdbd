package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/valeriaulyamaeva/daily-reports/internal/database"
	"github.com/valeriaulyamaeva/daily-reports/internal/export"
	"github.com/valeriaulyamaeva/daily-reports/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// IndexHandler answers the liveness probe.
func IndexHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, "Server is running!")
	}
}

// CreateReportHandler processes POST /add.
func CreateReportHandler(store database.ReportStore, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.ReportInput
		if err := c.ShouldBindJSON(&input); err != nil {
			log.Debug("ошибка привязки JSON", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		if input.Date == "" || input.Report == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Date and report are required"})
			return
		}

		report := models.NewReport(input.Date, input.Report, input.Notes)
		if err := store.CreateReport(c.Request.Context(), report); err != nil {
			log.Error("ошибка при создании отчета", zap.String("date", input.Date), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add report"})
			return
		}

		log.Debug("отчет создан", zap.String("id", report.ID.Hex()), zap.String("date", report.Date))
		c.JSON(http.StatusCreated, gin.H{"message": "Report added successfully"})
	}
}

// GetReportsHandler processes GET /reports.
func GetReportsHandler(store database.ReportStore, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reports, err := store.GetAllReports(c.Request.Context())
		if err != nil {
			log.Error("ошибка при получении отчетов", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get reports"})
			return
		}
		c.JSON(http.StatusOK, reports)
	}
}

// UpdateReportHandler processes PUT /update. The report is matched by date.
func UpdateReportHandler(store database.ReportStore, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.ReportInput
		if err := c.ShouldBindJSON(&input); err != nil {
			log.Debug("ошибка привязки JSON", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		if input.Date == "" || input.Report == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Date and report are required for update"})
			return
		}

		err := store.UpdateReportByDate(c.Request.Context(), input.Date, input.Report, input.Notes)
		switch {
		case errors.Is(err, database.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "No report found to update"})
		case err != nil:
			log.Error("ошибка обновления отчета", zap.String("date", input.Date), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update report"})
		default:
			c.JSON(http.StatusOK, gin.H{"message": "Report updated successfully"})
		}
	}
}

// DeleteReportHandler processes DELETE /delete. The report is matched by id.
func DeleteReportHandler(store database.ReportStore, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.DeleteInput
		if err := c.ShouldBindJSON(&input); err != nil {
			log.Debug("ошибка привязки JSON", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		if input.ID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ID is required for deletion"})
			return
		}
		id, err := primitive.ObjectIDFromHex(input.ID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid report id: %v", err)})
			return
		}

		err = store.DeleteReport(c.Request.Context(), id)
		switch {
		case errors.Is(err, database.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "No report found to delete"})
		case err != nil:
			log.Error("ошибка удаления отчета", zap.String("id", input.ID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete report"})
		default:
			c.JSON(http.StatusOK, gin.H{"message": "Report deleted successfully"})
		}
	}
}

// DownloadReportsHandler processes GET /download and returns every report as an .xlsx attachment.
func DownloadReportsHandler(store database.ReportStore, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reports, err := store.GetAllReports(c.Request.Context())
		if err != nil {
			log.Error("ошибка при получении отчетов для выгрузки", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get reports"})
			return
		}

		if ids := export.Clipped(reports); len(ids) > 0 {
			log.Warn("report text cut to spreadsheet cell limit",
				zap.Int("limit", export.MaxCellChars), zap.Strings("ids", ids))
		}

		buf, err := export.Workbook(reports)
		if err != nil {
			log.Error("ошибка формирования xlsx", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build spreadsheet"})
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", export.FileName))
		c.Data(http.StatusOK, export.ContentType, buf.Bytes())
	}
}
