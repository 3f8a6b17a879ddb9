package indexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitRange(t *testing.T) {
	cases := []struct {
		name      string
		from, to  uint64
		batchSize uint64
		want      []BlockRange
	}{
		{"uneven", 1, 10, 3, []BlockRange{{1, 3}, {4, 6}, {7, 9}, {10, 10}}},
		{"single block", 5, 5, 10, []BlockRange{{5, 5}}},
		{"exact batches", 0, 5, 3, []BlockRange{{0, 2}, {3, 5}}},
		{"batch larger than range", 100, 150, 1000, []BlockRange{{100, 150}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SplitRange(tc.from, tc.to, tc.batchSize)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSplitRangeRejectsBadInput(t *testing.T) {
	_, err := SplitRange(1, 10, 0)
	require.Error(t, err)

	_, err = SplitRange(10, 1, 5)
	require.Error(t, err)
}

func TestNextRange(t *testing.T) {
	r, ok := NextRange(100, 105, 100)
	require.True(t, ok)
	assert.Equal(t, BlockRange{100, 105}, r)

	r, ok = NextRange(100, 500, 100)
	require.True(t, ok)
	assert.Equal(t, BlockRange{100, 199}, r)
	assert.Equal(t, uint64(100), r.Len())

	_, ok = NextRange(106, 105, 100)
	assert.False(t, ok)

	_, ok = NextRange(1, 5, 0)
	assert.False(t, ok)
}
