package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"svw.info/polygen/internal/codec"
	"svw.info/polygen/internal/config"
	"svw.info/polygen/internal/domain"
	"svw.info/polygen/internal/generator"
	"svw.info/polygen/internal/hint"
	"svw.info/polygen/internal/infrastructure/storage"
	"svw.info/polygen/internal/infrastructure/xlsx"
	"svw.info/polygen/internal/ports"
	"svw.info/polygen/internal/solver"
	"svw.info/polygen/internal/usecase"
	"svw.info/polygen/internal/validator"
)

func newSolver(kind string) ports.Solver {
	if kind == "backtrack" {
		return solver.NewBacktrackingSolver()
	}
	return solver.NewDLXSolver()
}

// openStorage returns the configured store and a func that releases it.
func openStorage(ctx context.Context, c *config.Config) (ports.Storage, func() error, error) {
	noop := func() error { return nil }
	switch c.Storage.Backend {
	case "sqlite":
		path := c.Storage.Path
		if filepath.Ext(path) == "" {
			path = filepath.Join(path, "polygen.db")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, noop, err
		}
		db, err := storage.OpenSQLite(ctx, path)
		if err != nil {
			return nil, noop, err
		}
		return db, db.Close, nil
	default:
		if err := os.MkdirAll(c.Storage.Path, 0o755); err != nil {
			return nil, noop, err
		}
		return storage.NewFS(c.Storage.Path), noop, nil
	}
}

// newService wires providers into the use-case service. Storage is left
// unset; serve attaches it.
func newService() *usecase.Service {
	s := newSolver(cfg.Solver.Kind)
	g := generator.NewRandomGenerator(s)
	if cfg.Solver.CountLimit > 0 {
		g.CountLimit = cfg.Solver.CountLimit
	}
	return usecase.NewService(s, g, validator.New(), hint.NewNextPiece(s), nil, xlsx.Exporter{})
}

// readPuzzle loads a puzzle from a file, from stdin ("-"), or from a
// share link.
func readPuzzle(arg string, stdin io.Reader) (*domain.Puzzle, error) {
	switch {
	case arg == "-":
		return codec.Decode(stdin)
	case strings.HasPrefix(arg, "http://"), strings.HasPrefix(arg, "https://"):
		return codec.FromShareURL(arg)
	}
	f, err := os.Open(arg)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	p, err := codec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", arg, err)
	}
	return p, nil
}

// writeOutput writes through fn to path, or to w when path is empty or "-".
func writeOutput(path string, w io.Writer, fn func(io.Writer) error) error {
	if path == "" || path == "-" {
		return fn(w)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
