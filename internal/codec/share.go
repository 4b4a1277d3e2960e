package codec

import (
	"fmt"
	"net/url"

	"svw.info/polygen/internal/domain"
)

// ShareParam is the query parameter that carries a shared puzzle.
const ShareParam = "puzzle"

// ShareURL appends the puzzle's JSON to base as a query parameter.
func ShareURL(base string, p *domain.Puzzle) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("share url: %w", err)
	}
	data, err := Marshal(p)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set(ShareParam, string(data))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// FromShareURL decodes a puzzle from a link built by ShareURL.
func FromShareURL(raw string) (*domain.Puzzle, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("share url: %w", err)
	}
	data := u.Query().Get(ShareParam)
	if data == "" {
		return nil, fmt.Errorf("%w: link has no %q parameter", domain.ErrInvalidPuzzle, ShareParam)
	}
	return Unmarshal([]byte(data))
}
