package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"svw.info/polygen/internal/codec"
	"svw.info/polygen/internal/domain"
)

// FS keeps one JSON file per puzzle under a subdirectory per family.
type FS struct{ dir string }

func NewFS(dir string) *FS { return &FS{dir: dir} }

// record wraps the exchange format with storage metadata.
type record struct {
	ID        string          `json:"id"`
	Name      string          `json:"name,omitempty"`
	Family    string          `json:"family"`
	Dims      domain.Dims     `json:"dims"`
	CreatedAt int64           `json:"createdAt"`
	Puzzle    json.RawMessage `json:"puzzle"`
}

func families() []domain.Family { return []domain.Family{domain.Soma, domain.Pentomino} }

func validID(id string) bool {
	id = strings.TrimSpace(id)
	return id != "" && !strings.ContainsAny(id, `/\`) && id != "." && id != ".."
}

func (s *FS) pathFor(id string, f domain.Family) string {
	return filepath.Join(s.dir, f.String(), strings.TrimSpace(id)+".json")
}

func (s *FS) Save(ctx context.Context, p *domain.Puzzle) error {
	if p == nil || !validID(p.ID) {
		return fmt.Errorf("%w: missing or invalid ID", domain.ErrInvalidPuzzle)
	}
	body, err := codec.Marshal(p)
	if err != nil {
		return err
	}
	// a family change moves the file
	for _, f := range families() {
		if f != p.Family {
			_ = os.Remove(s.pathFor(p.ID, f))
		}
	}
	target := s.pathFor(p.ID, p.Family)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	f, err := os.Create(target)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(record{
		ID:        p.ID,
		Name:      p.Name,
		Family:    p.Family.String(),
		Dims:      p.Dims(),
		CreatedAt: p.CreatedAt,
		Puzzle:    body,
	})
}

func (s *FS) find(id string) (string, error) {
	if !validID(id) {
		return "", domain.ErrNotFound
	}
	for _, f := range families() {
		path := s.pathFor(id, f)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s", domain.ErrNotFound, id)
}

func (s *FS) Load(ctx context.Context, id string) (*domain.Puzzle, error) {
	path, err := s.find(id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	p, err := codec.Decode(bytes.NewReader(rec.Puzzle))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", id, err)
	}
	p.ID = rec.ID
	p.CreatedAt = rec.CreatedAt
	return p, nil
}

func (s *FS) Delete(ctx context.Context, id string) error {
	path, err := s.find(id)
	if err != nil {
		return err
	}
	return os.Remove(path)
}

func (s *FS) List(ctx context.Context) ([]domain.PuzzleMeta, error) {
	var out []domain.PuzzleMeta
	for _, f := range families() {
		dir := filepath.Join(s.dir, f.String())
		ents, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		for _, e := range ents {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
				continue
			}
			data, err := os.ReadFile(filepath.Join(dir, e.Name()))
			if err != nil {
				continue
			}
			var rec record
			if err := json.Unmarshal(data, &rec); err != nil || rec.ID == "" {
				continue
			}
			family := rec.Family
			if family == "" {
				family = f.String() // infer from folder if absent
			}
			out = append(out, domain.PuzzleMeta{
				ID:        rec.ID,
				Name:      rec.Name,
				Family:    family,
				Dims:      rec.Dims,
				CreatedAt: rec.CreatedAt,
			})
		}
	}
	sortMeta(out)
	return out, nil
}
