package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"sar_tracker_go/db"
	"sar_tracker_go/middleware"
	"sar_tracker_go/models"
	"sar_tracker_go/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	testDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// One connection so every request sees the same in-memory database
	sqlDB, err := testDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, testDB.AutoMigrate(db.Models()...))
	return testDB
}

type apiFixture struct {
	e     *echo.Echo
	db    *gorm.DB
	svc   *services.TrackerService
	owner models.User
	other models.User
}

func setupAPI(t *testing.T) *apiFixture {
	testDB := setupTestDB(t)

	svc := services.NewTrackerService(services.NewGormRepository(testDB), services.NewLocalStorage(t.TempDir()))
	now := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return now }

	owner := models.User{Username: "alice", Email: "alice@example.test", FullName: "Alice", IsActive: true}
	other := models.User{Username: "bob", Email: "bob@example.test", FullName: "Bob", IsActive: true}
	require.NoError(t, testDB.Create(&owner).Error)
	require.NoError(t, testDB.Create(&other).Error)

	e := echo.New()
	New(svc).Register(e)

	return &apiFixture{e: e, db: testDB, svc: svc, owner: owner, other: other}
}

// request sends body as JSON on behalf of owner
func (f *apiFixture) request(method, path string, owner *models.User, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if owner != nil {
		req.Header.Set(middleware.OwnerHeader, strconv.FormatUint(uint64(owner.ID), 10))
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func (f *apiFixture) upload(t *testing.T, path, filename string, content []byte, fields map[string]string) *httptest.ResponseRecorder {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	req.Header.Set(middleware.OwnerHeader, strconv.FormatUint(uint64(f.owner.ID), 10))
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func caseBody(org, submitted string) map[string]interface{} {
	return map[string]interface{}{
		"organization_name":   org,
		"request_type":        "Personal Data",
		"request_description": "Copies of all personal data held about me",
		"submission_date":     submitted,
		"submission_method":   "Email",
	}
}

func (f *apiFixture) createCase(t *testing.T, org, submitted string) models.SARCase {
	rec := f.request(http.MethodPost, "/api/sar", &f.owner, caseBody(org, submitted))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var c models.SARCase
	decode(t, rec, &c)
	return c
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func caseURL(id uint, suffix string) string {
	return "/api/sar/" + itoa(id) + suffix
}
