package server

import (
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// handleStatic serves the embedded script and stylesheet.
func handleStatic(fsys fs.FS) http.Handler {
	return http.StripPrefix("/static/", http.FileServer(http.FS(fsys)))
}

// handleAssets serves images and audio from dir. Directory listings are
// not served.
func handleAssets(dir string) http.HandlerFunc {
	fileServer := http.StripPrefix("/assets/", http.FileServer(http.Dir(dir)))

	return func(w http.ResponseWriter, r *http.Request) {
		rel, err := filepath.Rel("/assets", filepath.Clean(r.URL.Path))
		if err != nil || strings.HasPrefix(rel, "..") {
			http.NotFound(w, r)
			return
		}
		if info, err := os.Stat(filepath.Join(dir, rel)); err != nil || info.IsDir() {
			http.NotFound(w, r)
			return
		}
		fileServer.ServeHTTP(w, r)
	}
}
