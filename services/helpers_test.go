package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"sar_tracker_go/models"
	"sar_tracker_go/services/sar"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTrackerTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.SARCase{}, &models.CaseUpdate{}, &models.CaseFile{},
		&models.Escalation{}, &models.Reminder{},
	))
	return db
}

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

// sequenceReferences hands out references in order, repeating the last one
type sequenceReferences struct {
	cases      []string
	regulators []string
	caseN      int
	regN       int
}

func (s *sequenceReferences) CaseReference(time.Time) string {
	ref := s.cases[min(s.caseN, len(s.cases)-1)]
	s.caseN++
	return ref
}

func (s *sequenceReferences) RegulatorReference(time.Time) string {
	ref := s.regulators[min(s.regN, len(s.regulators)-1)]
	s.regN++
	return ref
}

type trackerFixture struct {
	db      *gorm.DB
	svc     *TrackerService
	clock   *testClock
	owner   models.User
	other   models.User
	uploads string
}

func setupTracker(t *testing.T) *trackerFixture {
	db := setupTrackerTestDB(t)
	clock := &testClock{now: time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)}
	uploads := t.TempDir()

	svc := NewTrackerService(NewGormRepository(db), NewLocalStorage(uploads))
	svc.Now = clock.Now

	owner := models.User{Username: "alice", Email: "alice@example.test", FullName: "Alice", IsActive: true}
	other := models.User{Username: "bob", Email: "bob@example.test", FullName: "Bob", IsActive: true}
	require.NoError(t, db.Create(&owner).Error)
	require.NoError(t, db.Create(&other).Error)

	return &trackerFixture{db: db, svc: svc, clock: clock, owner: owner, other: other, uploads: uploads}
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func ptrTo[T any](v T) *T {
	return &v
}

func caseInput(org string, submitted time.Time) sar.CreateCaseInput {
	return sar.CreateCaseInput{
		OrganizationName:   org,
		RequestType:        models.RequestTypeOther,
		RequestDescription: fmt.Sprintf("All personal data %s holds about me", org),
		SubmissionDate:     sar.NewDate(submitted),
		SubmissionMethod:   models.SubmissionMethodEmail,
	}
}

func (f *trackerFixture) createCase(t *testing.T, org string, submitted time.Time) *models.SARCase {
	c, err := f.svc.CreateCase(context.Background(), f.owner.ID, caseInput(org, submitted))
	require.NoError(t, err)
	return c
}

func countRows(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	var count int64
	require.NoError(t, db.Model(model).Where(query, args...).Count(&count).Error)
	return count
}

func itoa(id uint) string {
	return fmt.Sprintf("%d", id)
}
