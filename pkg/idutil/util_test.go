package idutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeterministicID(t *testing.T) {
	a := DeterministicID("user1", "req1")
	require.Equal(t, a, DeterministicID("user1", "req1"))
	require.NotEqual(t, a, DeterministicID("user1", "req2"))
	require.NotEqual(t, a, DeterministicID("user1req1"))
}

func TestKey(t *testing.T) {
	require.Equal(t, "engagement:e1", Key("engagement", "e1"))
	require.Equal(t, "achievement:u1:a1", Key("achievement", "u1", "a1"))
}

func TestSnowflakeNode(t *testing.T) {
	node := NewSnowflakeNode(1)
	require.NotEqual(t, node.Generate().Int64(), node.Generate().Int64())
}
