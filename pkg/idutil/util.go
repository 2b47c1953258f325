package idutil

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
)

var namespace = uuid.MustParse("6f6b0a52-3c1e-4c8f-9e55-2f1d8d7b9a10")

// NewSnowflakeNode panics on an invalid node id, it is only called at startup.
func NewSnowflakeNode(nodeID int64) *snowflake.Node {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		panic(err)
	}

	return node
}

// DeterministicID returns the same uuid for the same parts, so a retried
// request maps to the same row.
func DeterministicID(parts ...string) string {
	return uuid.NewSHA1(namespace, []byte(strings.Join(parts, "\x00"))).String()
}

// Key builds an idempotency key of the form kind:part1:part2.
func Key(kind string, parts ...string) string {
	return kind + ":" + strings.Join(parts, ":")
}
