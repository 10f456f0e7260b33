package sequence_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/distmalvinas/remito-service/internal/sequence"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		expected string
	}{
		{name: "pads_to_four_digits", n: 1, expected: "0001"},
		{name: "mid_range", n: 41, expected: "0041"},
		{name: "four_digits_unchanged", n: 9999, expected: "9999"},
		{name: "widens_past_9999", n: 12345, expected: "12345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sequence.Format(tt.n))
		})
	}
}

func TestFileCounter_StartsAtOne(t *testing.T) {
	path := filepath.Join(t.TempDir(), "remito_seq.json")

	counter, err := sequence.NewFileCounter(path)
	require.NoError(t, err)

	n, err := counter.Peek(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestFileCounter_PeekDoesNotAdvance(t *testing.T) {
	path := filepath.Join(t.TempDir(), "remito_seq.json")
	counter, err := sequence.NewFileCounter(path)
	require.NoError(t, err)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		n, err := counter.Peek(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	}
}

func TestFileCounter_TakeNextIsStrictlyIncreasing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "remito_seq.json")
	counter, err := sequence.NewFileCounter(path)
	require.NoError(t, err)

	ctx := context.Background()
	seen := make(map[int]bool)
	prev := 0
	for i := 0; i < 5; i++ {
		n, err := counter.TakeNext(ctx)
		require.NoError(t, err)
		assert.Greater(t, n, prev)
		assert.False(t, seen[n])
		seen[n] = true
		prev = n
	}

	next, err := counter.Peek(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, next)
}

func TestFileCounter_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "remito_seq.json")
	ctx := context.Background()

	counter, err := sequence.NewFileCounter(path)
	require.NoError(t, err)

	n, err := counter.TakeNext(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	reopened, err := sequence.NewFileCounter(path)
	require.NoError(t, err)

	n, err = reopened.TakeNext(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestFileCounter_PersistsBeforeHandingOutNumber(t *testing.T) {
	path := filepath.Join(t.TempDir(), "remito_seq.json")
	ctx := context.Background()

	counter, err := sequence.NewFileCounter(path)
	require.NoError(t, err)

	_, err = counter.TakeNext(ctx)
	require.NoError(t, err)

	// The file must already hold the incremented value.
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"next":2}`, string(b))
}

func TestFileCounter_RejectsCorruptState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "remito_seq.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := sequence.NewFileCounter(path)
	assert.Error(t, err)
}
