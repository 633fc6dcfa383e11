package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

// asUser injects an authenticated user into request locals, standing in
// for the JWT middleware.
func asUser(userID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		return c.Next()
	}
}

func TestHealthHandlerWithoutBackends(t *testing.T) {
	app := fiber.New()
	handler := NewHealthHandler(nil, nil)
	app.Get("/health", handler.Handle)

	req := httptest.NewRequest("GET", "/health", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to send request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if payload["status"] != "healthy" {
		t.Errorf("Expected healthy status, got %v", payload["status"])
	}
	if payload["mongodb"] != "disconnected" {
		t.Errorf("Expected mongodb disconnected, got %v", payload["mongodb"])
	}
	if payload["redis"] != "disabled" {
		t.Errorf("Expected redis disabled, got %v", payload["redis"])
	}
}

func TestSignalIngestRejectsBadBody(t *testing.T) {
	app := fiber.New()
	handler := NewSignalHandler(nil, nil)
	app.Post("/api/signals", asUser("user-1"), handler.Ingest)

	req := httptest.NewRequest("POST", "/api/signals", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to send request: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", resp.StatusCode)
	}
}

func TestSignalIngestRequiresAuth(t *testing.T) {
	app := fiber.New()
	handler := NewSignalHandler(nil, nil)
	app.Post("/api/signals", handler.Ingest)

	req := httptest.NewRequest("POST", "/api/signals", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to send request: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", resp.StatusCode)
	}
}

func TestMirrorHistoryValidatesDays(t *testing.T) {
	app := fiber.New()
	handler := NewMirrorHandler(nil)
	app.Get("/api/mirror/history", asUser("user-1"), handler.History)

	for _, days := range []string{"0", "91", "-5"} {
		req := httptest.NewRequest("GET", "/api/mirror/history?days="+days, nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("Failed to send request: %v", err)
		}
		resp.Body.Close()

		if resp.StatusCode != fiber.StatusBadRequest {
			t.Errorf("days=%s: expected status 400, got %d", days, resp.StatusCode)
		}
	}
}

func TestPatternRecentValidatesLimit(t *testing.T) {
	app := fiber.New()
	handler := NewPatternHandler(nil)
	app.Get("/api/patterns/recent", asUser("user-1"), handler.Recent)

	req := httptest.NewRequest("GET", "/api/patterns/recent?limit=500", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to send request: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", resp.StatusCode)
	}
}

func TestDeviceRegisterValidation(t *testing.T) {
	app := fiber.New()
	handler := NewDeviceHandler(nil)
	app.Post("/api/devices", asUser("user-1"), handler.Register)

	tests := []struct {
		name string
		body string
	}{
		{"missing token", `{"platform":"ios"}`},
		{"unknown platform", `{"token":"abc","platform":"windows"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/devices", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("Failed to send request: %v", err)
			}
			resp.Body.Close()

			if resp.StatusCode != fiber.StatusBadRequest {
				t.Errorf("Expected status 400, got %d", resp.StatusCode)
			}
		})
	}
}
