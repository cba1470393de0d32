package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"gstbooks/internal/csvexport"
	"gstbooks/internal/domain"
	"gstbooks/internal/service"
	"gstbooks/internal/xlsxexport"
)

// ReportHandler handles statutory and analytics report endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// parsePeriod reads optional from and to query parameters (YYYY-MM-DD)
// into an inclusive report period.
func parsePeriod(c *gin.Context) (domain.ReportPeriod, error) {
	var period domain.ReportPeriod
	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return period, fmt.Errorf("invalid from date %q, expected YYYY-MM-DD", from)
		}
		period.Start = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return period, fmt.Errorf("invalid to date %q, expected YYYY-MM-DD", to)
		}
		// The to date is inclusive, so cover the whole day.
		end := t.Add(24*time.Hour - time.Nanosecond)
		period.End = &end
	}
	if period.Start != nil && period.End != nil && period.End.Before(*period.Start) {
		return period, fmt.Errorf("to date precedes from date")
	}
	return period, nil
}

// Gstr1 handles GET /api/v1/reports/gstr1
//
// With format=csv the rows are streamed as a UTF-8 BOM prefixed CSV
// attachment; the default is the JSON envelope.
func (h *ReportHandler) Gstr1(c *gin.Context) {
	orgID, _, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	period, err := parsePeriod(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	rows, err := h.reportService.Gstr1Rows(c.Request.Context(), orgID, period)
	if err != nil {
		HandleError(c, err)
		return
	}

	if c.Query("format") == "csv" {
		var buf bytes.Buffer
		buf.Write(csvexport.BOM)
		w := csvexport.NewWriter(&buf)
		if err := w.WriteGstr1(rows); err != nil {
			HandleError(c, err)
			return
		}
		w.Flush()
		if err := w.Error(); err != nil {
			HandleError(c, err)
			return
		}
		serveAttachment(c, csvexport.BuildFilename("gstr1", "csv"), "text/csv; charset=utf-8", buf.Bytes())
		return
	}

	RespondOK(c, gin.H{"period": period, "data": rows})
}

// Gstr3b handles GET /api/v1/reports/gstr3b
func (h *ReportHandler) Gstr3b(c *gin.Context) {
	orgID, _, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	period, err := parsePeriod(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	totals, err := h.reportService.Gstr3bTotals(c.Request.Context(), orgID, period)
	if err != nil {
		HandleError(c, err)
		return
	}

	if c.Query("format") == "csv" {
		var buf bytes.Buffer
		buf.Write(csvexport.BOM)
		w := csvexport.NewWriter(&buf)
		if err := w.WriteGstr3b(*totals); err != nil {
			HandleError(c, err)
			return
		}
		w.Flush()
		if err := w.Error(); err != nil {
			HandleError(c, err)
			return
		}
		serveAttachment(c, csvexport.BuildFilename("gstr3b", "csv"), "text/csv; charset=utf-8", buf.Bytes())
		return
	}

	RespondOK(c, gin.H{"period": period, "summary": totals})
}

// PeriodWorkbook handles GET /api/v1/reports/period.xlsx
//
// Serves a two-sheet workbook with the GSTR-1 rows and GSTR-3B totals
// for the requested period.
func (h *ReportHandler) PeriodWorkbook(c *gin.Context) {
	orgID, _, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	period, err := parsePeriod(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	report, err := h.reportService.SummarizePeriod(c.Request.Context(), orgID, period)
	if err != nil {
		HandleError(c, err)
		return
	}

	workbook, err := xlsxexport.BuildPeriodWorkbook(report.Rows, report.Totals)
	if err != nil {
		HandleError(c, err)
		return
	}

	serveAttachment(c, csvexport.BuildFilename("gst_period_report", "xlsx"),
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", workbook)
}

// PeriodSummary handles GET /api/v1/reports/period
func (h *ReportHandler) PeriodSummary(c *gin.Context) {
	orgID, _, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	period, err := parsePeriod(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	report, err := h.reportService.SummarizePeriod(c.Request.Context(), orgID, period)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, report)
}

// SalesSummary handles GET /api/v1/reports/sales-summary
func (h *ReportHandler) SalesSummary(c *gin.Context) {
	orgID, _, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	summary, err := h.reportService.SalesSummary(c.Request.Context(), orgID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, summary)
}

// TaxLiability handles GET /api/v1/reports/tax-liability
func (h *ReportHandler) TaxLiability(c *gin.Context) {
	orgID, _, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	liability, err := h.reportService.TaxLiability(c.Request.Context(), orgID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, liability)
}

// TopCustomers handles GET /api/v1/reports/top-customers
func (h *ReportHandler) TopCustomers(c *gin.Context) {
	orgID, _, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	rows, err := h.reportService.TopCustomers(c.Request.Context(), orgID, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, rows)
}

func serveAttachment(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}
