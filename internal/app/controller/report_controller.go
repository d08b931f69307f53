package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jalvarez/washpoint-backend/internal/app/service"
	apperrors "github.com/jalvarez/washpoint-backend/internal/errors"
	"github.com/jalvarez/washpoint-backend/internal/middleware"
)

type ReportController struct {
	reportService service.ReportService
}

func NewReportController(reportService service.ReportService) *ReportController {
	return &ReportController{
		reportService: reportService,
	}
}

// Washes streams the completed-wash report as an XLSX attachment
// GET /reports/washes
func (ctrl *ReportController) Washes(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	businessID, ok := middleware.GetBusinessID(c)
	if !ok {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	f, err := ctrl.reportService.CompletedWashes(businessID)
	if err != nil {
		log.Error("Failed to build wash report", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "wash report")
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("washes-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		log.Error("Failed to stream wash report", err, nil)
	}
}
