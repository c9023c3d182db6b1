package recipe

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator returns a fresh identifier for a newly added recipe.
type IDGenerator func() string

// RandomIDs generates random UUIDs.
func RandomIDs() IDGenerator {
	return uuid.NewString
}

// SequentialIDs generates prefix-1, prefix-2, ... in order. Safe for
// concurrent use.
func SequentialIDs(prefix string) IDGenerator {
	var n atomic.Uint64
	return func() string {
		return fmt.Sprintf("%s-%d", prefix, n.Add(1))
	}
}
