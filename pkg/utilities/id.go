package utilities

import (
	"os"
	"strconv"

	"github.com/bwmarrin/snowflake"
	"github.com/segmentio/ksuid"
)

// NewUserID generates a new globally unique KSUID string. KSUIDs sort by
// creation time, which keeps the users table index friendly.
func NewUserID() string {
	return ksuid.New().String()
}

// NewNoteID generates a snowflake ID string using a node ID from the
// SNOWFLAKE_NODE environment variable, defaulting to node 1.
func NewNoteID() string {
	nodeEnv := os.Getenv("SNOWFLAKE_NODE")
	if nodeEnv == "" {
		return NewNoteIDWithNode(1)
	}
	nodeID, err := strconv.ParseInt(nodeEnv, 10, 64)
	if err != nil {
		return NewNoteIDWithNode(1)
	}
	return NewNoteIDWithNode(nodeID)
}

// NewNoteIDWithNode generates a snowflake ID string using the provided node
// ID. If the node cannot be initialized, it falls back to a KSUID string so
// a unique ID is always returned.
func NewNoteIDWithNode(nodeID int64) string {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return ksuid.New().String()
	}
	return node.Generate().String()
}
