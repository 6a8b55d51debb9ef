package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestRenderer_LoginPage(t *testing.T) {
	r := NewRenderer()
	var buf strings.Builder
	data := map[string]string{"Error": "Invalid username or password.", "Next": "/mobile"}
	if err := r.Render(&buf, "login.html", data, nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Invalid username or password.") {
		t.Error("error message missing from rendered page")
	}
	if !strings.Contains(out, `value="/mobile"`) {
		t.Error("next field missing from rendered page")
	}
}

func TestRenderer_IndexPage(t *testing.T) {
	r := NewRenderer()
	var buf strings.Builder
	if err := r.Render(&buf, "index.html", nil, nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "/api/data") {
		t.Error("index shell should fetch /api/data")
	}
}

func TestStaticHandler_ServesEmbeddedAssets(t *testing.T) {
	e := echo.New()
	e.GET("/manifest.json", StaticHandler("manifest.json"))
	e.GET("/sw.js", StaticHandler("sw.js"))

	req := httptest.NewRequest(http.MethodGet, "/manifest.json", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("manifest status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "NCD Tracker") {
		t.Error("manifest content missing")
	}
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.Contains(ct, "json") {
		t.Errorf("manifest Content-Type = %q, want a JSON type", ct)
	}

	req = httptest.NewRequest(http.MethodGet, "/sw.js", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("sw.js status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "addEventListener") {
		t.Error("service worker content missing")
	}
}

func TestStaticHandler_UnknownAsset(t *testing.T) {
	e := echo.New()
	e.GET("/missing", StaticHandler("missing.txt"))

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
