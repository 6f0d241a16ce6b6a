package keystate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valerio/go-autopad/autopad/keymap"
)

func TestTable_SetAndPressed(t *testing.T) {
	table := NewTable()

	assert.False(t, table.Pressed(KeyboardPort, keymap.KeyA))

	table.Set(KeyboardPort, keymap.KeyA, true)
	assert.True(t, table.Pressed(KeyboardPort, keymap.KeyA))

	// repeated reads are stable
	assert.True(t, table.Pressed(KeyboardPort, keymap.KeyA))

	table.Set(KeyboardPort, keymap.KeyA, false)
	assert.False(t, table.Pressed(KeyboardPort, keymap.KeyA))
}

func TestTable_PortsAreIndependent(t *testing.T) {
	table := NewTable()

	table.Set(KeyboardPort, keymap.KeyA, true)
	assert.False(t, table.Pressed(0, keymap.KeyA), "keyboard row does not leak into port rows")

	table.Set(0, keymap.KeyZ, true)
	assert.False(t, table.Pressed(KeyboardPort, keymap.KeyZ))
}

func TestTable_OutOfRange(t *testing.T) {
	table := NewTable()

	// none of these may panic or stick
	table.Set(-1, keymap.KeyA, true)
	table.Set(MaxPorts+1, keymap.KeyA, true)
	table.Set(0, keymap.KeyLast, true)
	table.Set(0, keymap.KeyLast+500, true)

	assert.False(t, table.Pressed(-1, keymap.KeyA))
	assert.False(t, table.Pressed(MaxPorts+1, keymap.KeyA))
	assert.False(t, table.Pressed(0, keymap.KeyLast))
}

func TestTable_Reset(t *testing.T) {
	table := NewTable()
	table.Set(0, keymap.KeyA, true)
	table.Set(KeyboardPort, keymap.KeyZ, true)

	table.Reset()

	assert.False(t, table.Pressed(0, keymap.KeyA))
	assert.False(t, table.Pressed(KeyboardPort, keymap.KeyZ))
	assert.Empty(t, table.PressedKeys(KeyboardPort))
}

func TestTable_PressedKeys(t *testing.T) {
	table := NewTable()
	table.Set(KeyboardPort, keymap.KeyZ, true)
	table.Set(KeyboardPort, keymap.KeyA, true)

	keys := table.PressedKeys(KeyboardPort)
	assert.Equal(t, []keymap.Key{keymap.KeyA, keymap.KeyZ}, keys, "symbol order")

	assert.Nil(t, table.PressedKeys(-1))
}
