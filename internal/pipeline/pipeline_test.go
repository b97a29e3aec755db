package pipeline

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStreamDeliversEveryItem(t *testing.T) {
	in := make([]int, 100)
	for i := range in {
		in[i] = i
	}
	var got []int
	for r := range Stream(context.Background(), 4, in, func(v int) (int, error) { return v * v, nil }) {
		require.NoError(t, r.Err)
		require.Equal(t, in[r.Index]*in[r.Index], r.Value)
		got = append(got, r.Index)
	}
	sort.Ints(got)
	require.Equal(t, in, got)
}

func TestMapKeepsOrderAndFirstError(t *testing.T) {
	errOdd := errors.New("odd")
	out, err := Map(context.Background(), 3, []int{2, 4, 5, 6, 7}, func(v int) (int, error) {
		if v%2 == 1 {
			return 0, errOdd
		}
		return v / 2, nil
	})
	require.ErrorIs(t, err, errOdd)
	require.Equal(t, []int{1, 2, 0, 3, 0}, out)

	out, err = Map(context.Background(), 0, []string{"a", "bb"}, func(s string) (int, error) { return len(s), nil })
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, out)
}

func TestMapEmpty(t *testing.T) {
	out, err := Map(context.Background(), 8, []int(nil), func(v int) (int, error) { return v, nil })
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestCancelledStopsSubmitting(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	in := make([]int, 1000)
	n := 0
	for range Stream(ctx, 2, in, func(v int) (int, error) { return v, nil }) {
		n++
	}
	require.Less(t, n, len(in))
}
