package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/valeriaulyamaeva/daily-reports/internal/database"
	"github.com/valeriaulyamaeva/daily-reports/internal/handlers"
	"go.uber.org/zap"
)

func SetupRouter(store database.ReportStore, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(RequestLogger(log), gin.Recovery(), CORSMiddleware())

	r.GET("/", handlers.IndexHandler())
	r.POST("/add", handlers.CreateReportHandler(store, log))
	r.GET("/reports", handlers.GetReportsHandler(store, log))
	r.PUT("/update", handlers.UpdateReportHandler(store, log))
	r.DELETE("/delete", handlers.DeleteReportHandler(store, log))
	r.GET("/download", handlers.DownloadReportsHandler(store, log))

	return r
}
