// Package server exposes dungeon generation over HTTP.
//
// Levels are loaded once from a directory of TOML files at startup. Routes:
//
//	GET  /api/health
//	GET  /api/levels
//	GET  /api/levels/{name}
//	GET  /api/levels/{name}/graphs/{graph}   (SVG)
//	POST /api/levels/{name}/generate?seed=&graph=&format=
//
// Generation goes through a [pipeline.Runner], so layouts are cached in
// whatever [cache.Cache] the runner holds (Redis when several instances
// share work).
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	derrors "github.com/matzehuels/dungeonforge/pkg/errors"
	"github.com/matzehuels/dungeonforge/pkg/level"
	"github.com/matzehuels/dungeonforge/pkg/pipeline"
)

// entry is one loaded level.
type entry struct {
	level  *level.Level
	hash   string
	data   []byte
	issues []level.Issue
}

// Server serves the levels in one directory.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	levels map[string]*entry
}

// New loads every *.toml file in dir. Levels are keyed by their name
// setting, or by file name when unset. A level that fails to decode aborts
// startup; validation errors are logged and the level is still served.
func New(dir string, runner *pipeline.Runner, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{})
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	s := &Server{runner: runner, logger: logger, levels: make(map[string]*entry)}

	paths, err := filepath.Glob(filepath.Join(dir, "*.toml"))
	if err != nil {
		return nil, err
	}
	for _, p := range paths {
		if err := derrors.ValidateLevelFilename(filepath.Base(p)); err != nil {
			logger.Debug("skipping level file", "path", p, "reason", derrors.UserMessage(err))
			continue
		}
		if err := s.load(p); err != nil {
			return nil, err
		}
	}
	logger.Info("loaded levels", "dir", dir, "count", len(s.levels))
	return s, nil
}

func (s *Server) load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	lvl, hash, err := s.runner.Load(pipeline.Options{LevelData: data})
	if err != nil {
		return err
	}
	if lvl.Name == "" {
		lvl.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if _, dup := s.levels[lvl.Name]; dup {
		return fmt.Errorf("duplicate level name %q in %s", lvl.Name, path)
	}
	issues := level.Validate(lvl)
	if level.HasErrors(issues) {
		s.logger.Warn("level has errors", "level", lvl.Name, "issues", len(issues))
	}
	s.levels[lvl.Name] = &entry{level: lvl, hash: hash, data: data, issues: issues}
	return nil
}

// Names returns the loaded level names, sorted.
func (s *Server) Names() []string {
	names := make([]string, 0, len(s.levels))
	for n := range s.levels {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.health)
		r.Get("/levels", s.listLevels)
		r.Get("/levels/{name}", s.getLevel)
		r.Get("/levels/{name}/graphs/{graph}", s.graphSVG)
		r.Post("/levels/{name}/generate", s.generate)
	})

	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
