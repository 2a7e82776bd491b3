package main

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"catalog/internal/models"
	"catalog/internal/oauth"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func newTestApp(t *testing.T) (*gorm.DB, *oauth.FakeProvider) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect to in-memory database: %v", err)
	}
	return db, oauth.NewFakeProvider("test-client-id")
}

func TestNewAppHealthEndpoint(t *testing.T) {
	db, provider := newTestApp(t)
	app, err := newApp(db, provider, nil)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
}

func TestNewAppSeedsReferenceData(t *testing.T) {
	db, provider := newTestApp(t)
	_, err := newApp(db, provider, nil)
	assert.NoError(t, err)

	var roles []models.Role
	assert.NoError(t, db.Find(&roles).Error)
	assert.Len(t, roles, 2)

	var loginTypes []models.LoginType
	assert.NoError(t, db.Find(&loginTypes).Error)
	assert.Len(t, loginTypes, 1)
	assert.Equal(t, "google", loginTypes[0].Source)
}

func TestNewAppSeedIsIdempotent(t *testing.T) {
	db, provider := newTestApp(t)
	_, err := newApp(db, provider, nil)
	assert.NoError(t, err)
	_, err = newApp(db, provider, nil)
	assert.NoError(t, err)

	var count int64
	db.Model(&models.Role{}).Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestOpenDatabaseSQLiteFallback(t *testing.T) {
	path := t.TempDir() + "/catalog.db"
	db, err := openDatabase("", path)
	assert.NoError(t, err)
	assert.NotNil(t, db)
}
