package stream

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain enables goroutine leak detection for all tests in this package.
// Iterator is backed by iter.Pull, so an iterator that is never stopped
// shows up here.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
