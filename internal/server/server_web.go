package server

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"telco_churn/pkg/httpx/reply"
	"telco_churn/pkg/logx"
	"telco_churn/pkg/rest"
)

const (
	indexFile        = "index.html"
	staticDir        = "static"
	indexNotFoundMsg = "index.html not found"
)

// WebServer отдаёт страницу с формой и её статические файлы.
type WebServer struct {
	dir string
}

func NewWebServer(dir string) WebServer {
	return WebServer{dir: dir}
}

func (s WebServer) getIndex(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()
	path := filepath.Join(s.dir, indexFile)

	info, err := os.Stat(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("os.Stat: %w", err)
		}

		logger(ctx).Warn(indexNotFoundMsg, slog.String(logx.FieldPath, path))
		reply.JSON(ctx, w, http.StatusOK, rest.LandingNotFound{Error: indexNotFoundMsg, Path: path})

		return nil
	}

	if info.IsDir() {
		reply.JSON(ctx, w, http.StatusOK, rest.LandingNotFound{Error: indexNotFoundMsg, Path: path})
		return nil
	}

	http.ServeFile(w, r, path)

	return nil
}

func (s WebServer) staticFiles() http.Handler {
	return http.StripPrefix("/"+staticDir+"/", http.FileServer(http.Dir(filepath.Join(s.dir, staticDir))))
}
