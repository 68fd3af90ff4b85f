package handlers

import (
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/expenseflow/spaserver/internal/config"
)

// SPAHandler serves the pre-built application bundle with SPA fallback.
//
// Resolution order: files under the static/ subtree (content-hashed, long
// cache), then files under the build root (short cache), then index.html for
// anything else so that client-side routing can handle the path. A miss under
// static/ is a genuine 404 since that tree contains only real built files.
func SPAHandler(buildFS fs.FS) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Clean with a leading "/" so parent traversal cannot escape the build tree.
		urlPath := path.Clean("/" + r.URL.Path)

		// Skip API routes (should never reach here due to router ordering, but safety check).
		if strings.HasPrefix(urlPath, "/api/") {
			http.NotFound(w, r)
			return
		}

		name := strings.TrimPrefix(urlPath, "/")
		if name == "" {
			name = config.IndexFileName
		}

		if name != config.IndexFileName && fileExists(buildFS, name) {
			w.Header().Set("Cache-Control", cacheTier(name))
			serveFile(w, r, buildFS, name)
			return
		}

		if strings.HasPrefix(urlPath, "/"+config.StaticDirName+"/") {
			http.NotFound(w, r)
			return
		}

		// Root index, or no file matched — serve index.html for client-side routing.
		slog.Debug("SPA fallback", "path", urlPath)

		w.Header().Set("Cache-Control", config.CacheNoCache)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		serveFile(w, r, buildFS, config.IndexFileName)
	}
}

// cacheTier maps a resolved file to its Cache-Control value. HTML is always
// revalidated; hashed assets under static/ are immutable for a year; unhashed
// root-level assets get a day.
func cacheTier(name string) string {
	isHTML := strings.HasSuffix(name, ".html")
	if strings.HasPrefix(name, config.StaticDirName+"/") {
		if isHTML {
			return config.CacheNoCache
		}
		return config.CacheImmutable
	}
	if isHTML {
		return config.CacheNoCache
	}
	return config.CacheOneDay
}

func fileExists(fsys fs.FS, name string) bool {
	info, err := fs.Stat(fsys, name)
	return err == nil && !info.IsDir()
}

// serveFile delivers a single file via ServeContent. http.FileServer is
// deliberately not used here: its canonical redirect for paths ending in
// /index.html would turn direct index requests into a 301.
func serveFile(w http.ResponseWriter, r *http.Request, fsys fs.FS, name string) {
	f, err := fsys.Open(name)
	if err != nil {
		// For index.html this is a fatal operational misconfiguration: the
		// build output is incomplete or the build dir is wrong.
		slog.Error("failed to open build output file", "file", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		slog.Error("failed to stat build output file", "file", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	rs, ok := f.(readSeeker)
	if !ok {
		slog.Error("build output file does not support seeking", "file", name)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.ServeContent(w, r, name, stat.ModTime(), rs)
}

// readSeeker combines io.ReadSeeker for http.ServeContent.
type readSeeker interface {
	Read(p []byte) (n int, err error)
	Seek(offset int64, whence int) (int64, error)
}
