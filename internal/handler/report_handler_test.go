package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/fleetops/driver-training-api/internal/dto"
	"github.com/fleetops/driver-training-api/internal/models"
)

type fakeReportSrv struct {
	rows []dto.ComplianceRow
	hit  bool
	err  error
}

func (f *fakeReportSrv) ComplianceReport(context.Context) ([]dto.ComplianceRow, bool, error) {
	return f.rows, f.hit, f.err
}

func (f *fakeReportSrv) RenderCSV([]dto.ComplianceRow) ([]byte, error) {
	return []byte("Employee ID,Name\nEMP001,Jane Driver\n"), nil
}

func (f *fakeReportSrv) RenderPDF([]dto.ComplianceRow) ([]byte, error) {
	return []byte("%PDF-1.3"), nil
}

func complianceRows() []dto.ComplianceRow {
	return []dto.ComplianceRow{{
		Driver:                      models.Driver{ID: "drv-1", EmployeeID: "EMP001"},
		MandatoryTrainingCompletion: "7/7",
		LicenseStatus:               models.LicenseStatusValid,
		ComplianceStatus:            models.ComplianceCompliant,
	}}
}

func TestReportHandlerComplianceJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewReportHandler(&fakeReportSrv{rows: complianceRows()})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/analytics/compliance-report", nil)

	h.Compliance(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	assert.Contains(t, rec.Body.String(), "EMP001")
}

func TestReportHandlerComplianceCSV(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewReportHandler(&fakeReportSrv{rows: complianceRows()})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/analytics/compliance-report?format=csv", nil)

	h.Compliance(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "compliance_report_")
}

func TestReportHandlerCompliancePDF(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewReportHandler(&fakeReportSrv{rows: complianceRows()})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/analytics/compliance-report?format=pdf", nil)

	h.Compliance(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/pdf")
}

func TestReportHandlerComplianceUnknownFormat(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewReportHandler(&fakeReportSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/analytics/compliance-report?format=xml", nil)

	h.Compliance(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
