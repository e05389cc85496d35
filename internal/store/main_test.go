package store

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain ensures the index watcher goroutine never outlives its store.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
