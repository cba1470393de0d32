package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gstbooks/internal/domain"
	"gstbooks/internal/middleware"
	"gstbooks/internal/service"
)

func newReportTestContext(t *testing.T, target string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	c.Set(middleware.ContextKeyOrganizationID, uuid.New())
	c.Set(middleware.ContextKeyBranchID, uuid.New())
	c.Set(middleware.ContextKeyUserID, uuid.New())
	c.Set(middleware.ContextKeyRole, string(domain.RoleAdmin))
	return c, rec
}

func TestReportHandler_PeriodWorkbook(t *testing.T) {
	svc := new(MockReportService)
	svc.On("SummarizePeriod", mock.Anything, mock.Anything, mock.Anything).Return(&service.PeriodReport{
		Rows: []domain.GstrRow{
			{InvoiceNumber: "INV-001", TaxableValue: "1000.00", CGST: "90.00", SGST: "90.00"},
		},
		Totals: domain.PeriodTotalsExport{
			Taxable: "1000.00", CGST: "90.00", SGST: "90.00", IGST: "0.00", Cess: "0.00",
		},
	}, nil)
	h := NewReportHandler(svc)

	c, rec := newReportTestContext(t, "/api/v1/reports/period.xlsx")
	h.PeriodWorkbook(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	body := rec.Body.Bytes()
	require.NotEmpty(t, body)
	// xlsx is a zip archive.
	assert.Equal(t, []byte{'P', 'K'}, body[:2])
}

func TestParsePeriod_ToDateCoversWholeDay(t *testing.T) {
	c, _ := newReportTestContext(t, "/api/v1/reports/gstr1?from=2026-04-01&to=2026-04-30")

	period, err := parsePeriod(c)

	require.NoError(t, err)
	require.NotNil(t, period.Start)
	require.NotNil(t, period.End)
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), *period.Start)
	// An invoice issued any time on the to date stays inside the period.
	issued := time.Date(2026, 4, 30, 15, 4, 5, 0, time.UTC)
	assert.False(t, period.End.Before(issued))
	assert.True(t, period.End.Before(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)))
}

func TestParsePeriod_ToPrecedesFrom(t *testing.T) {
	c, _ := newReportTestContext(t, "/api/v1/reports/gstr1?from=2026-04-30&to=2026-04-01")

	_, err := parsePeriod(c)

	assert.Error(t, err)
}

func TestMapDomainError_ExtractionFailure(t *testing.T) {
	status, code, _ := MapDomainError(domain.ErrExtractionFailed)

	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, "EXTRACTION_FAILED", code)
}
