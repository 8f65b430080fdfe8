package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"hotel-frontdesk/services"
	"hotel-frontdesk/utils"

	"github.com/gin-gonic/gin"
)

// AdminController serves the owner's reports.
type AdminController struct {
	Reports *services.ReportService
	History *services.HistoryService
	Audit   *services.AuditService
}

func NewAdminController(reports *services.ReportService, history *services.HistoryService, audit *services.AuditService) *AdminController {
	return &AdminController{Reports: reports, History: history, Audit: audit}
}

func (ac *AdminController) Dashboard(c *gin.Context) {
	stats, err := ac.Reports.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, stats)
}

// ListHistory handles GET /api/admin/history?filter=&from=&to=&q=&page=&page_size=
func (ac *AdminController) ListHistory(c *gin.Context) {
	var q services.HistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badPayload(c, err)
		return
	}
	page, err := ac.History.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, page)
}

// ExportHistory streams the filtered history as CSV.
func (ac *AdminController) ExportHistory(c *gin.Context) {
	var q services.HistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badPayload(c, err)
		return
	}
	var buf bytes.Buffer
	if _, err := ac.History.ExportCSV(c.Request.Context(), q, &buf); err != nil {
		respondError(c, err)
		return
	}
	filter := q.Filter
	if filter == "" {
		filter = services.FilterWeekly
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="guest-history-%s.csv"`, filter))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (ac *AdminController) DeleteHistory(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := ac.History.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}

// Logs handles GET /api/admin/logs?action=&booking_id=&limit=
func (ac *AdminController) Logs(c *gin.Context) {
	f := services.LogFilter{Action: c.Query("action")}
	if raw := c.Query("booking_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "error.validation", "booking_id must be a number")
			return
		}
		bid := uint(id)
		f.BookingID = &bid
	}
	if raw := c.Query("limit"); raw != "" {
		f.Limit, _ = strconv.Atoi(raw)
	}
	logs, err := ac.Audit.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, logs)
}
