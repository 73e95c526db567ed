package handler

import (
	"strconv"
	"time"

	financeapp "github.com/farmledger/backend/internal/application/finance"
	"github.com/farmledger/backend/internal/domain/finance"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles financial report endpoints
type ReportHandler struct {
	BaseHandler
	reportService *financeapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *financeapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Summary returns the receivable/payable rollup over pending
// installments, optionally bounded by due date
func (h *ReportHandler) Summary(c *gin.Context) {
	farmID, err := getFarmID(c)
	if err != nil {
		h.BadRequest(c, "Farm scope required")
		return
	}

	var start, end *time.Time
	if v := c.Query("start_date"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			h.BadRequest(c, "Invalid query parameter: start_date")
			return
		}
		start = &t
	}
	if v := c.Query("end_date"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			h.BadRequest(c, "Invalid query parameter: end_date")
			return
		}
		end = &t
	}

	resp, err := h.reportService.Summary(c.Request.Context(), farmID, start, end)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// MonthlySeries returns the settled cashflow per month, newest last
func (h *ReportHandler) MonthlySeries(c *gin.Context) {
	farmID, err := getFarmID(c)
	if err != nil {
		h.BadRequest(c, "Farm scope required")
		return
	}

	months := 12
	if v := c.Query("months"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 60 {
			h.BadRequest(c, "Invalid query parameter: months")
			return
		}
		months = n
	}

	series, err := h.reportService.MonthlySeries(c.Request.Context(), farmID, months)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, series)
}

// CategoryBreakdown returns the amount due per category over a period
func (h *ReportHandler) CategoryBreakdown(c *gin.Context) {
	farmID, err := getFarmID(c)
	if err != nil {
		h.BadRequest(c, "Farm scope required")
		return
	}

	categoryType := finance.CategoryType(c.Query("type"))
	if !categoryType.IsValid() {
		h.BadRequest(c, "Category type must be INCOME or EXPENSE")
		return
	}

	start, err := parseDate(c.Query("start_date"))
	if err != nil {
		h.BadRequest(c, "Invalid query parameter: start_date")
		return
	}
	end, err := parseDate(c.Query("end_date"))
	if err != nil {
		h.BadRequest(c, "Invalid query parameter: end_date")
		return
	}

	rows, err := h.reportService.CategoryBreakdown(c.Request.Context(), farmID, categoryType, start, end)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}
