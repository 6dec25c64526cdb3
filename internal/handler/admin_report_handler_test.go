package handler_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/greenwatch/greenwatch-api/internal/handler"
	"github.com/greenwatch/greenwatch-api/internal/models"
	"github.com/greenwatch/greenwatch-api/internal/repository"
	"github.com/greenwatch/greenwatch-api/internal/service"
)

func newAdminApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Report{}, &models.ActionLog{}))

	validate := validator.New(validator.WithRequiredStructEnabled())
	reportRepo := repository.NewReportRepository(db)
	logRepo := repository.NewActionLogRepository(db)

	moderation := service.NewModerationService(reportRepo, validate, false, zerolog.Nop())
	reports := service.NewReportService(reportRepo, validate, nil, zerolog.Nop())
	audit := service.NewAuditService(logRepo, zerolog.Nop())

	h := handler.NewAdminReportHandler(moderation, reports, audit, zerolog.Nop())

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", uint(9))
		c.Locals("user_role", "admin")
		return c.Next()
	})
	h.Register(app.Group("/api/admin"))

	return app, db
}

func TestAdminReportHandlerTransitionVerify(t *testing.T) {
	app, db := newAdminApp(t)

	report := models.Report{UserID: 1, Latitude: 1, Longitude: 2, Severity: models.SeverityHigh, Status: models.StatusPending}
	require.NoError(t, db.Create(&report).Error)

	req := httptest.NewRequest(http.MethodPut, "/api/admin/reports/1/verify", strings.NewReader(`{"notes":"checked"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.Report
	require.NoError(t, db.First(&updated, report.ID).Error)
	require.Equal(t, models.StatusVerified, updated.Status)
}

func TestAdminReportHandlerTransitionRejectsUnknownAction(t *testing.T) {
	app, db := newAdminApp(t)

	report := models.Report{UserID: 1, Latitude: 1, Longitude: 2, Severity: models.SeverityLow, Status: models.StatusPending}
	require.NoError(t, db.Create(&report).Error)

	req := httptest.NewRequest(http.MethodPut, "/api/admin/reports/1/approve", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.ActionLog{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestAdminReportHandlerTransitionUnknownReport(t *testing.T) {
	app, _ := newAdminApp(t)

	req := httptest.NewRequest(http.MethodPut, "/api/admin/reports/999/resolve", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAdminReportHandlerLogsAndDetail(t *testing.T) {
	app, db := newAdminApp(t)

	report := models.Report{UserID: 1, Latitude: 1, Longitude: 2, Address: "Jl. Melati 5", Severity: models.SeverityMedium, Status: models.StatusPending}
	require.NoError(t, db.Create(&report).Error)

	verify := httptest.NewRequest(http.MethodPut, "/api/admin/reports/1/verify", nil)
	resp, err := app.Test(verify)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/admin/logs", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/admin/report/1", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/admin/report/999", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
