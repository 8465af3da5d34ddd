package bridge_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maus-dev/maus/internal/bridge"
	th "github.com/maus-dev/maus/internal/testing"
	"github.com/maus-dev/maus/pkg/wire"
)

func newTestBridge(t *testing.T, opts bridge.Options) (*bridge.Bridge, *th.RecorderPort) {
	t.Helper()
	port := &th.RecorderPort{}
	return bridge.New(port, opts, slog.Default(), nil), port
}

func TestReportDrainPublishCycle(t *testing.T) {
	b, port := newTestBridge(t, bridge.Options{Scale: 0.5})

	b.Report([]byte{0x00, 100, 0x9C}) // dx=100 dy=-100
	require.True(t, b.DrainOnce())

	f := wire.Encode(wire.Delta{X: 50, Y: -50})
	got := port.Nibbles()
	require.Len(t, got, 1)
	assert.Equal(t, f[0], got[0])

	// Nothing new: the cycle is a no-op.
	assert.False(t, b.DrainOnce())
}

func TestShortReportsAreDiscarded(t *testing.T) {
	b, port := newTestBridge(t, bridge.Options{})

	b.Report(nil)
	b.Report([]byte{0x01})
	b.Report([]byte{0x01, 0x02})

	assert.False(t, b.DrainOnce(), "short reports must not mark motion pending")
	assert.Empty(t, port.Nibbles())
}

func TestButtonsDriveDedicatedLines(t *testing.T) {
	b, port := newTestBridge(t, bridge.Options{})

	b.Report([]byte{0x01, 0, 0}) // left held
	left, right := port.Buttons()
	assert.True(t, left)
	assert.False(t, right)

	b.Report([]byte{0x03, 0, 0}) // both held
	left, right = port.Buttons()
	assert.True(t, left)
	assert.True(t, right)

	b.Report([]byte{0x00, 0, 0})
	left, right = port.Buttons()
	assert.False(t, left)
	assert.False(t, right)
}

func TestDetachResetsAccumulator(t *testing.T) {
	b, _ := newTestBridge(t, bridge.Options{Scale: 1})

	b.Report([]byte{0x00, 50, 50})
	b.Detached()
	assert.False(t, b.DrainOnce(), "motion from before the unplug must not leak")
}

func TestDetachStickyByDefault(t *testing.T) {
	b, port := newTestBridge(t, bridge.Options{Scale: 1})
	em := b.Emitter()

	b.Report([]byte{0x00, 10, 0})
	require.True(t, b.DrainOnce())
	b.Detached()

	require.True(t, em.Streaming(), "default policy repeats the last frame")
	em.OnEdge()
	f := wire.Encode(wire.Delta{X: 10, Y: 0})
	got := port.Nibbles()
	assert.Equal(t, f[0], got[len(got)-1])
}

func TestDetachForcesIdleWhenConfigured(t *testing.T) {
	b, port := newTestBridge(t, bridge.Options{Scale: 1, IdleOnDisconnect: true})
	em := b.Emitter()

	b.Report([]byte{0x00, 10, 0})
	require.True(t, b.DrainOnce())
	b.Detached()

	assert.False(t, em.Streaming())
	assert.True(t, port.Released())
	em.OnEdge()
	assert.True(t, port.Released())
}

func TestRunDrainsOnTicker(t *testing.T) {
	port := &th.RecorderPort{}
	b := bridge.New(port, bridge.Options{Scale: 1, DrainInterval: time.Millisecond}, slog.Default(), nil)

	src := &th.ScriptSource{Steps: []th.ScriptStep{
		{Attach: "test mouse"},
		{Report: []byte{0x00, 5, 0xFB}},
	}}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- b.Run(ctx, src) }()

	f := wire.Encode(wire.Delta{X: 5, Y: -5})
	require.Eventually(t, func() bool {
		n := port.Nibbles()
		return len(n) > 0 && n[0] == f[0]
	}, time.Second, time.Millisecond, "drain loop should publish the report's frame")

	cancel()
	require.NoError(t, <-done)
}
