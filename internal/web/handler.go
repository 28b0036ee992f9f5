package web

import (
	"io/fs"
	"net/http"
	"strings"
)

// Cache-Control values
const (
	CacheNoStore   = "no-cache, no-store, must-revalidate"
	CacheImmutable = "public, max-age=31536000, immutable"
)

// Handler serves the embedded browser client. Unknown paths fall back to
// index.html so deep links load the client.
func Handler() http.Handler {
	root, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic("web: failed to get static sub-filesystem: " + err.Error())
	}

	fileServer := http.FileServer(http.FS(root))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if path == "" || path == "/" {
			w.Header().Set("Cache-Control", CacheNoStore)
			fileServer.ServeHTTP(w, r)
			return
		}

		cleanPath := strings.TrimPrefix(path, "/")
		if f, err := root.Open(cleanPath); err == nil {
			f.Close()
			if strings.HasPrefix(cleanPath, "assets/") {
				w.Header().Set("Cache-Control", CacheImmutable)
			}
			fileServer.ServeHTTP(w, r)
			return
		}

		w.Header().Set("Cache-Control", CacheNoStore)
		r.URL.Path = "/"
		fileServer.ServeHTTP(w, r)
	})
}
