package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ekaraca/bist-portfolio-backend/internal/api/handlers"
	"github.com/ekaraca/bist-portfolio-backend/internal/model"
	"github.com/ekaraca/bist-portfolio-backend/internal/testutil"
)

// TestSystemHandler_Health tests the health check endpoint.
func TestSystemHandler_Health(t *testing.T) {
	t.Run("healthy database returns 200", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewSystemHandler(testutil.NewTestSystemService(t, db))

		req := httptest.NewRequest(http.MethodGet, "/api/system/health", nil)
		rec := httptest.NewRecorder()

		// Execute
		handler.Health(rec, req)

		// Assert
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", rec.Code)
		}

		var body handlers.HealthResponse
		testutil.DecodeJSONResponse(t, rec, &body)
		if body.Status != "healthy" {
			t.Errorf("Expected status healthy, got %q", body.Status)
		}
		if body.Database != "connected" {
			t.Errorf("Expected database connected, got %q", body.Database)
		}
	})

	t.Run("closed database returns 503", func(t *testing.T) {
		// Setup: close the handle so the ping fails
		db := testutil.SetupTestDB(t)
		handler := handlers.NewSystemHandler(testutil.NewTestSystemService(t, db))
		db.Close()

		req := httptest.NewRequest(http.MethodGet, "/api/system/health", nil)
		rec := httptest.NewRecorder()

		// Execute
		handler.Health(rec, req)

		// Assert
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("Expected status 503, got %d", rec.Code)
		}

		var body handlers.HealthResponse
		testutil.DecodeJSONResponse(t, rec, &body)
		if body.Status != "unhealthy" {
			t.Errorf("Expected status unhealthy, got %q", body.Status)
		}
	})
}

// TestSystemHandler_Version tests the version endpoint.
func TestSystemHandler_Version(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := handlers.NewSystemHandler(testutil.NewTestSystemService(t, db))

	req := httptest.NewRequest(http.MethodGet, "/api/system/version", nil)
	rec := httptest.NewRecorder()

	handler.Version(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var body model.VersionInfo
	testutil.DecodeJSONResponse(t, rec, &body)
	if body.AppVersion == "" {
		t.Error("Expected an app version in the response")
	}
	if body.DbVersion != "1" {
		t.Errorf("Expected schema version 1, got %q", body.DbVersion)
	}
	if body.Features["ingest"] {
		t.Error("Expected ingest feature disabled without an API key")
	}
}
