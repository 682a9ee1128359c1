package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggestPrice(t *testing.T) {
	// A box of 12 bought at 1200 costs 1200 per dozen; with a 300 margin
	// the suggested selling rate is 1500.
	assert.Equal(t, 1500.0, SuggestPrice(1200, 12, 300))
}

func TestSuggestPriceRoundsUp(t *testing.T) {
	// 1000/12*12 = 1000 exactly, but odd piece counts produce fractions
	// that round up to the next rupee.
	assert.Equal(t, 1200.0, SuggestPrice(1000, 12, 200))
	assert.Equal(t, 2486.0, SuggestPrice(1200, 6, 86)) // 2400 + 86
	assert.Equal(t, 1829.0, SuggestPrice(800, 7, 457)) // ceil(1371.43 + 457)
}

func TestSuggestPriceInvalidPieceCount(t *testing.T) {
	assert.Equal(t, 0.0, SuggestPrice(1200, 0, 300))
	assert.Equal(t, 0.0, SuggestPrice(1200, -4, 300))
}
