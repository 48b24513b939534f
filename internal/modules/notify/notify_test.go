package notify

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const ttl = 40 * time.Millisecond

func TestTransientNoticeClearsAfterTTL(t *testing.T) {
	n := New(ttl)
	var changes atomic.Int32
	n.OnChange(func() { changes.Add(1) })

	n.Success("Product saved")
	got, ok := n.Current()
	require.True(t, ok)
	assert.Equal(t, "Product saved", got.Message)

	require.Eventually(t, func() bool {
		_, ok := n.Current()
		return !ok
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(2), changes.Load(), "set and cleared")
}

func TestNewerNoticeGovernsClearing(t *testing.T) {
	const slow = 120 * time.Millisecond
	n := New(slow)
	defer n.Stop()

	n.Success("first")
	time.Sleep(slow / 2)
	second := n.Info("second")

	// Past the first notice's deadline, the second is still showing.
	time.Sleep(slow * 3 / 4)
	got, ok := n.Current()
	require.True(t, ok)
	assert.Equal(t, second.ID, got.ID)

	require.Eventually(t, func() bool {
		_, ok := n.Current()
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestStaleExpiryIgnored(t *testing.T) {
	n := New(time.Hour)
	defer n.Stop()

	first := n.Success("first")
	n.Success("second")
	n.expire(first.ID)

	got, ok := n.Current()
	require.True(t, ok)
	assert.Equal(t, "second", got.Message)
}

func TestErrorNoticePersists(t *testing.T) {
	n := New(ttl)
	n.Success("ok")
	n.Error("Failed to load products (500)")

	time.Sleep(2 * ttl)
	got, ok := n.Current()
	require.True(t, ok)
	assert.Equal(t, KindError, got.Kind)

	n.Dismiss()
	_, ok = n.Current()
	assert.False(t, ok)
}

func TestDefaultTTL(t *testing.T) {
	n := New(0)
	assert.Equal(t, DefaultTTL, n.ttl)
	assert.False(t, KindError.Transient())
	assert.True(t, KindSuccess.Transient())
}
