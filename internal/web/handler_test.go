package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandler_ServesClient(t *testing.T) {
	handler := Handler()

	tests := []struct {
		name        string
		path        string
		contains    string
		cache       string
		contentType string
	}{
		{"root serves index.html", "/", "<title>GibLife</title>", CacheNoStore, "text/html"},
		{"unknown path falls back to index.html", "/play", "<title>GibLife</title>", CacheNoStore, "text/html"},
		{"script asset is cached", "/assets/app.js", "EventSource", CacheImmutable, "javascript"},
		{"style asset is cached", "/assets/app.css", "progress", CacheImmutable, "text/css"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.contains)
			assert.Equal(t, tt.cache, rec.Header().Get("Cache-Control"))
			assert.Contains(t, rec.Header().Get("Content-Type"), tt.contentType)
		})
	}
}
