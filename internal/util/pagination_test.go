package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	from, limit := Calculate(1, 20)
	require.Equal(t, 0, from)
	require.Equal(t, 20, limit)

	from, limit = Calculate(3, 10)
	require.Equal(t, 20, from)
	require.Equal(t, 10, limit)

	// Out-of-range inputs fall back to sane defaults.
	from, limit = Calculate(0, 0)
	require.Equal(t, 0, from)
	require.Equal(t, DefaultPageSize, limit)

	_, limit = Calculate(1, 500)
	require.Equal(t, DefaultPageSize, limit)
}

func TestTotalPages(t *testing.T) {
	require.EqualValues(t, 0, TotalPages(0, 20))
	require.EqualValues(t, 1, TotalPages(20, 20))
	require.EqualValues(t, 2, TotalPages(21, 20))
	require.EqualValues(t, 0, TotalPages(10, 0))
}
