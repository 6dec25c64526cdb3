package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/greenwatch/greenwatch-api/internal/models"
)

func TestReportRepositoryApplyStatusWritesReportAndAudit(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReportRepository(db)

	report := models.Report{UserID: 1, Latitude: -6.2, Longitude: 106.8, Severity: models.SeverityHigh, Status: models.StatusPending}
	require.NoError(t, db.Create(&report).Error)

	err := repo.ApplyStatus(context.Background(), report.ID, StatusChange{
		Status:  models.StatusVerified,
		Notes:   "confirmed on site",
		AdminID: 9,
	})
	require.NoError(t, err)

	var updated models.Report
	require.NoError(t, db.First(&updated, report.ID).Error)
	require.Equal(t, models.StatusVerified, updated.Status)
	require.Equal(t, "confirmed on site", updated.AdminNotes)

	var entries []models.ActionLog
	require.NoError(t, db.Where("report_id = ?", report.ID).Find(&entries).Error)
	require.Len(t, entries, 1)
	require.Equal(t, models.StatusVerified, entries[0].Action)
	require.Equal(t, uint(9), entries[0].AdminID)
}

func TestReportRepositoryApplyStatusUnknownReportWritesNothing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReportRepository(db)

	err := repo.ApplyStatus(context.Background(), 12345, StatusChange{
		Status:  models.StatusVerified,
		AdminID: 9,
	})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var count int64
	require.NoError(t, db.Model(&models.ActionLog{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestReportRepositoryApplyStatusHasNoTerminalState(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReportRepository(db)

	report := models.Report{UserID: 1, Latitude: 0.5, Longitude: 101.4, Severity: models.SeverityLow, Status: models.StatusPending}
	require.NoError(t, db.Create(&report).Error)

	require.NoError(t, repo.ApplyStatus(context.Background(), report.ID, StatusChange{Status: models.StatusResolved, AdminID: 9}))
	require.NoError(t, repo.ApplyStatus(context.Background(), report.ID, StatusChange{Status: models.StatusRejected, AdminID: 9}))

	var updated models.Report
	require.NoError(t, db.First(&updated, report.ID).Error)
	require.Equal(t, models.StatusRejected, updated.Status)

	var entries []models.ActionLog
	require.NoError(t, db.Where("report_id = ?", report.ID).Order("id").Find(&entries).Error)
	require.Len(t, entries, 2)
	require.Equal(t, models.StatusResolved, entries[0].Action)
	require.Equal(t, models.StatusRejected, entries[1].Action)
}

func TestReportRepositoryApplyStatusKeepResolvedPinsRow(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReportRepository(db)

	report := models.Report{UserID: 1, Latitude: 1, Longitude: 2, Severity: models.SeverityMedium, Status: models.StatusResolved}
	require.NoError(t, db.Create(&report).Error)

	err := repo.ApplyStatus(context.Background(), report.ID, StatusChange{
		Status:       models.StatusRejected,
		AdminID:      9,
		KeepResolved: true,
	})
	require.ErrorIs(t, err, ErrResolvedLocked)

	var updated models.Report
	require.NoError(t, db.First(&updated, report.ID).Error)
	require.Equal(t, models.StatusResolved, updated.Status)

	var count int64
	require.NoError(t, db.Model(&models.ActionLog{}).Count(&count).Error)
	require.Zero(t, count)

	// Re-resolving the pinned row stays legal.
	err = repo.ApplyStatus(context.Background(), report.ID, StatusChange{
		Status:       models.StatusResolved,
		AdminID:      9,
		KeepResolved: true,
	})
	require.NoError(t, err)

	// The guard must still distinguish a missing row.
	err = repo.ApplyStatus(context.Background(), 9999, StatusChange{
		Status:       models.StatusRejected,
		AdminID:      9,
		KeepResolved: true,
	})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestReportRepositoryApplyStatusConcurrentLastWriterWins(t *testing.T) {
	db := setupTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	repo := NewReportRepository(db)

	report := models.Report{UserID: 1, Latitude: 1, Longitude: 2, Severity: models.SeverityHigh, Status: models.StatusPending}
	require.NoError(t, db.Create(&report).Error)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, status := range []string{models.StatusResolved, models.StatusRejected} {
		wg.Add(1)
		go func(slot int, status string) {
			defer wg.Done()
			errs[slot] = repo.ApplyStatus(context.Background(), report.ID, StatusChange{
				Status:  status,
				AdminID: uint(slot + 1),
			})
		}(i, status)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	var entries []models.ActionLog
	require.NoError(t, db.Order("id").Find(&entries).Error)
	require.Len(t, entries, 2)

	// The final status belongs to whichever transition committed last; its
	// audit row is the newer one since both writes share a transaction.
	var updated models.Report
	require.NoError(t, db.First(&updated, report.ID).Error)
	require.Equal(t, entries[1].Action, updated.Status)
}

func TestReportRepositoryDetailWithReporterToleratesDeletedUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReportRepository(db)

	reporter := models.User{Name: "Sari", Email: "sari@example.com", PasswordHash: "x", Role: models.RoleUser}
	require.NoError(t, db.Create(&reporter).Error)

	report := models.Report{UserID: reporter.ID, Latitude: 1, Longitude: 2, Address: "Jl. Melati 5", Severity: models.SeverityMedium, Status: models.StatusPending}
	require.NoError(t, db.Create(&report).Error)

	row, err := repo.DetailWithReporter(context.Background(), report.ID)
	require.NoError(t, err)
	require.NotNil(t, row.ReporterName)
	require.Equal(t, "Sari", *row.ReporterName)

	require.NoError(t, db.Delete(&models.User{}, reporter.ID).Error)

	row, err = repo.DetailWithReporter(context.Background(), report.ID)
	require.NoError(t, err)
	require.Nil(t, row.ReporterName)
	require.Nil(t, row.ReporterEmail)

	_, err = repo.DetailWithReporter(context.Background(), 9999)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Report{}, &models.ActionLog{}))
	return db
}
