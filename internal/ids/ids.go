// Package ids generates identifiers for fleet entities.
package ids

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

const actionPrefix = "action_"

var fallbackCounter atomic.Uint64

// NewActionID returns a fresh action identifier. UUIDv7 values are
// time-salted and monotonic within the process; if the random source fails
// the id falls back to a millisecond timestamp plus a process counter.
func NewActionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		n := fallbackCounter.Add(1)
		return fmt.Sprintf("%s%d_%d", actionPrefix, time.Now().UnixMilli(), n)
	}
	return actionPrefix + id.String()
}
