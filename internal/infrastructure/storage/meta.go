package storage

import (
	"slices"
	"strings"

	"svw.info/polygen/internal/domain"
)

// sortMeta orders listings newest first, then by ID.
func sortMeta(ms []domain.PuzzleMeta) {
	slices.SortFunc(ms, func(a, b domain.PuzzleMeta) int {
		if a.CreatedAt != b.CreatedAt {
			if a.CreatedAt > b.CreatedAt {
				return -1
			}
			return 1
		}
		return strings.Compare(a.ID, b.ID)
	})
}
