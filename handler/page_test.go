package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGetUploadPage(t *testing.T) {
	w := httptest.NewRecorder()
	GetUploadPage(w, httptest.NewRequest(http.MethodGet, "/", nil))
	res := w.Result()
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected status code %d, got %d", http.StatusOK, res.StatusCode)
	}
	if !strings.HasPrefix(res.Header.Get("Content-Type"), "text/html") {
		t.Fatalf("expected html content type, got %s", res.Header.Get("Content-Type"))
	}

	page := readBody(t, res)
	for _, want := range []string{`form.append("` + IMG_FORM_FIELD + `"`, "/generate-image", "image_url"} {
		if !strings.Contains(page, want) {
			t.Fatalf("expected upload page to contain %s", want)
		}
	}
}

func TestHealth(t *testing.T) {
	w := httptest.NewRecorder()
	Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status code %d, got %d", http.StatusNoContent, w.Code)
	}
}

func TestNotFound(t *testing.T) {
	w := httptest.NewRecorder()
	NotFound(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status code %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestTooManyRequests(t *testing.T) {
	w := httptest.NewRecorder()
	TooManyRequests(w, httptest.NewRequest(http.MethodPost, "/generate-image", nil))

	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status code %d, got %d", http.StatusTooManyRequests, w.Code)
	}
}
