package sh

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseEdges(t *testing.T) {
	edges, err := ParseEdges("10_01")
	require.NoError(t, err)
	require.Equal(t, []bool{true, false, false, true}, edges)
	_, err = ParseEdges("102")
	require.Error(t, err)
}
