package validator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/polygen/internal/domain"
)

// vAndL fills a 3x2x1 slab with a V and a three-cell "L", which is one
// cube short of the real L piece.
//
//	V V L
//	V L L
func vAndL() (*domain.Puzzle, *domain.Solution) {
	p := domain.NewPuzzle(domain.Soma, domain.Dims{Width: 3, Length: 2, Height: 1})
	sol := domain.Solution{Value: domain.NewGrid[domain.Piece](p.Dims()), Order: []domain.Piece{'V', 'L'}}
	assign := map[domain.Pos]domain.Piece{
		{L: 0, W: 0}: 'V', {L: 0, W: 1}: 'V', {L: 1, W: 0}: 'V',
		{L: 0, W: 2}: 'L', {L: 1, W: 1}: 'L', {L: 1, W: 2}: 'L',
	}
	for pos, pc := range assign {
		p.Occupancy.Set(pos, true)
		sol.Value.Set(pos, pc)
	}
	return p, &sol
}

func TestValidateAcceptsGoodSolution(t *testing.T) {
	p := domain.NewPuzzle(domain.Soma, domain.Dims{Width: 3, Length: 3, Height: 1})
	sol := domain.Solution{Value: domain.NewGrid[domain.Piece](p.Dims()), Order: []domain.Piece{'V', 'L'}}
	// V in the corner, L along the right edge and bottom
	assign := map[domain.Pos]domain.Piece{
		{L: 0, W: 0}: 'V', {L: 0, W: 1}: 'V', {L: 1, W: 0}: 'V',
		{L: 0, W: 2}: 'L', {L: 1, W: 2}: 'L', {L: 2, W: 2}: 'L', {L: 2, W: 1}: 'L',
	}
	for pos, pc := range assign {
		p.Occupancy.Set(pos, true)
		sol.Value.Set(pos, pc)
	}
	ok, conf, err := New().Validate(context.Background(), p, &sol)
	require.NoError(t, err)
	assert.True(t, ok, "conflicts: %v", conf)
	assert.Empty(t, conf)
}

func TestValidateFlagsWrongShape(t *testing.T) {
	p, sol := vAndL() // L only has three cells here
	ok, conf, err := New().Validate(context.Background(), p, sol)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.ElementsMatch(t, []domain.Pos{{L: 0, W: 2}, {L: 1, W: 1}, {L: 1, W: 2}}, conf)
}

func TestValidateFlagsCorrespondence(t *testing.T) {
	p, sol := vAndL()
	sol.Value.Set(domain.Pos{L: 0, W: 0}, domain.Unassigned)
	p.Occupancy.Set(domain.Pos{L: 1, W: 1}, false)
	ok, conf, err := New().Validate(context.Background(), p, sol)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, conf, domain.Pos{L: 0, W: 0})
	assert.Contains(t, conf, domain.Pos{L: 1, W: 1})
}

func TestValidateFlagsMissingOrder(t *testing.T) {
	p := domain.NewPuzzle(domain.Soma, domain.Dims{Width: 2, Length: 2, Height: 1})
	sol := domain.Solution{Value: domain.NewGrid[domain.Piece](p.Dims())}
	for _, pos := range []domain.Pos{{}, {W: 1}, {L: 1}} {
		p.Occupancy.Set(pos, true)
		sol.Value.Set(pos, 'V')
	}
	ok, conf, err := New().Validate(context.Background(), p, &sol)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Len(t, conf, 3)

	sol.Order = []domain.Piece{'V'}
	ok, _, err = New().Validate(context.Background(), p, &sol)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestValidateDimsMismatch(t *testing.T) {
	p, _ := vAndL()
	other := domain.Solution{Value: domain.NewGrid[domain.Piece](domain.Dims{Width: 1, Length: 1, Height: 1})}
	_, _, err := New().Validate(context.Background(), p, &other)
	require.ErrorIs(t, err, domain.ErrInvalidPuzzle)
}
