// Package web serves the embedded single-page client.
package web

import (
	"embed"
	"io"
	"io/fs"
	"net/http"
	"strings"
	"time"
)

//go:embed static
var assets embed.FS

// Handler serves the embedded client. Unknown paths fall back to
// index.html so the client handles its own views.
func Handler() http.Handler {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	fileServer := http.FileServer(http.FS(sub))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/")
		if path != "" {
			if _, err := fs.Stat(sub, path); err != nil {
				serveIndex(w, r, sub)
				return
			}
		}
		fileServer.ServeHTTP(w, r)
	})
}

// serveIndex serves index.html from fsys; equivalent to
// http.ServeFileFS, which requires Go 1.22.
func serveIndex(w http.ResponseWriter, r *http.Request, fsys fs.FS) {
	f, err := fsys.Open("index.html")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	rs, ok := f.(io.ReadSeeker)
	if !ok {
		http.NotFound(w, r)
		return
	}
	modtime := time.Time{}
	if info, err := f.Stat(); err == nil {
		modtime = info.ModTime()
	}
	http.ServeContent(w, r, "index.html", modtime, rs)
}
