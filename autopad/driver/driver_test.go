package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-autopad/autopad/keymap"
)

// fakeHost simulates the host frontend: it owns the frame counter the
// driver reads.
type fakeHost struct {
	frame uint64
}

func (h *fakeHost) counter() uint64 { return h.frame }

func writeScript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// testBinds binds pad input A to key symbol 5, matching the key the test
// scripts press.
func testBinds() *keymap.BindSet {
	binds := &keymap.BindSet{}
	binds[keymap.BindA] = keymap.Bind{Key: keymap.Key(5), Valid: true}
	return binds
}

func newTestDriver(t *testing.T, host *fakeHost, scriptContent string) *Driver {
	t.Helper()
	d, err := New(Config{
		ScriptPath:   writeScript(t, scriptContent),
		FrameCounter: host.counter,
		Binds:        testBinds(),
	})
	require.NoError(t, err)
	return d
}

func TestDriver_PressScenario(t *testing.T) {
	host := &fakeHost{}
	d := newTestDriver(t, host, `[{"frame":10,"action":1,"param_num":5}]`)

	host.frame = 10
	d.Poll()
	assert.Equal(t, int16(0), d.State(0, DeviceJoypad, 0, uint(keymap.BindA)),
		"released when polled on the trigger frame")

	host.frame = 11
	d.Poll()
	assert.Equal(t, int16(1), d.State(0, DeviceJoypad, 0, uint(keymap.BindA)),
		"pressed one frame later")
}

func TestDriver_DefaultFrameScenario(t *testing.T) {
	host := &fakeHost{}
	d := newTestDriver(t, host,
		`[{"frame":10,"action":1,"param_num":5},{"action":2,"param_num":5}]`)

	// second step omits its frame: resolves to 10 + 60 = 70, so the key is
	// down for frames 11 through 70 and up again at 71
	for frame := uint64(0); frame <= 71; frame++ {
		host.frame = frame
		d.Poll()

		want := int16(0)
		if frame >= 11 && frame <= 70 {
			want = 1
		}
		assert.Equal(t, want, d.State(0, DeviceJoypad, 0, uint(keymap.BindA)),
			"frame %d", frame)
	}
}

func TestDriver_JoypadMask(t *testing.T) {
	host := &fakeHost{}
	binds := &keymap.BindSet{}
	binds[keymap.BindA] = keymap.Bind{Key: keymap.Key(5), Valid: true}
	binds[keymap.BindStart] = keymap.Bind{Key: keymap.Key(6), Valid: true}
	binds[keymap.BindB] = keymap.Bind{Key: keymap.Key(7), Valid: true} // never pressed

	d, err := New(Config{
		ScriptPath: writeScript(t,
			`[{"frame":1,"action":1,"param_num":5},{"frame":1,"action":1,"param_num":6}]`),
		FrameCounter: host.counter,
		Binds:        binds,
	})
	require.NoError(t, err)

	host.frame = 2
	d.Poll()

	mask := d.State(0, DeviceJoypad, 0, JoypadMask)
	assert.Equal(t, int16(1<<keymap.BindA|1<<keymap.BindStart), mask,
		"one bit per bound input whose key is down")
}

func TestDriver_InvalidBindReadsIdle(t *testing.T) {
	host := &fakeHost{}
	binds := &keymap.BindSet{}
	binds[keymap.BindA] = keymap.Bind{Key: keymap.Key(5), Valid: false}

	d, err := New(Config{
		ScriptPath:   writeScript(t, `[{"frame":1,"action":1,"param_num":5}]`),
		FrameCounter: host.counter,
		Binds:        binds,
	})
	require.NoError(t, err)

	host.frame = 2
	d.Poll()
	assert.Equal(t, int16(0), d.State(0, DeviceJoypad, 0, uint(keymap.BindA)))
	assert.Equal(t, int16(0), d.State(0, DeviceJoypad, 0, JoypadMask))
}

func TestDriver_OnlyPortZeroSeesInput(t *testing.T) {
	host := &fakeHost{}
	d := newTestDriver(t, host, `[{"frame":1,"action":1,"param_num":5}]`)

	host.frame = 2
	d.Poll()

	require.Equal(t, int16(1), d.State(0, DeviceJoypad, 0, uint(keymap.BindA)))
	for port := uint(1); port < 4; port++ {
		assert.Equal(t, int16(0), d.State(port, DeviceJoypad, 0, uint(keymap.BindA)),
			"port %d", port)
		assert.Equal(t, int16(0), d.State(port, DeviceJoypad, 0, JoypadMask), "port %d", port)
	}
}

func TestDriver_KeyboardDevice(t *testing.T) {
	host := &fakeHost{}
	d := newTestDriver(t, host, `[{"frame":1,"action":1,"param_num":5}]`)

	host.frame = 2
	d.Poll()

	assert.Equal(t, int16(1), d.State(0, DeviceKeyboard, 0, uint(keymap.BindA)))
	assert.Equal(t, int16(0), d.State(0, DeviceKeyboard, 0, uint(keymap.BindB)))
}

func TestDriver_UnknownDevice(t *testing.T) {
	host := &fakeHost{}
	d := newTestDriver(t, host, `[{"frame":1,"action":1,"param_num":5}]`)

	host.frame = 2
	d.Poll()
	assert.Equal(t, int16(0), d.State(0, 7, 0, uint(keymap.BindA)))
}

func TestDriver_IdempotentQueries(t *testing.T) {
	host := &fakeHost{}
	d := newTestDriver(t, host, `[{"frame":1,"action":1,"param_num":5}]`)

	host.frame = 2
	d.Poll()

	first := d.State(0, DeviceJoypad, 0, uint(keymap.BindA))
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, d.State(0, DeviceJoypad, 0, uint(keymap.BindA)),
			"queries between polls return the same value")
	}
}

func TestDriver_Capabilities(t *testing.T) {
	host := &fakeHost{}
	d, err := New(Config{FrameCounter: host.counter})
	require.NoError(t, err)

	assert.Equal(t, uint64(1)<<DeviceJoypad, d.Capabilities())
}

func TestDriver_NoScript(t *testing.T) {
	host := &fakeHost{}
	d, err := New(Config{FrameCounter: host.counter})
	require.NoError(t, err, "scripted input is optional")

	// polling and querying with nothing scheduled is fine
	for frame := uint64(0); frame < 10; frame++ {
		host.frame = frame
		d.Poll()
	}
	assert.Equal(t, int16(0), d.State(0, DeviceJoypad, 0, JoypadMask))
	assert.Equal(t, 0, d.Remaining())
}

func TestDriver_MalformedScriptKeepsPrefix(t *testing.T) {
	host := &fakeHost{}
	d, err := New(Config{
		ScriptPath:   writeScript(t, `[{"frame":1,"action":1,"param_num":5},{"frame":`),
		FrameCounter: host.counter,
		Binds:        testBinds(),
	})
	require.NoError(t, err, "a malformed script must not fail driver init")

	host.frame = 2
	d.Poll()
	assert.Equal(t, int16(1), d.State(0, DeviceJoypad, 0, uint(keymap.BindA)),
		"steps before the syntax error still play")
}

func TestDriver_RequiresFrameCounter(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestDriver_Close(t *testing.T) {
	host := &fakeHost{}
	d := newTestDriver(t, host, `[{"frame":1,"action":1,"param_num":5}]`)

	host.frame = 2
	d.Poll()
	require.Equal(t, int16(1), d.State(0, DeviceJoypad, 0, uint(keymap.BindA)))

	d.Close()
	assert.Equal(t, int16(0), d.State(0, DeviceJoypad, 0, uint(keymap.BindA)),
		"teardown releases every key")

	d.Close() // safe to repeat
}
