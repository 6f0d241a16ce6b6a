package keymap

import (
	"encoding/json"
	"fmt"
	"os"
)

// BindID identifies one logical pad input in a bind set. The order matches
// the frontend's pad layout and fixes the bit position each input occupies
// in a mask query.
type BindID uint

const (
	BindB BindID = iota
	BindY
	BindSelect
	BindStart
	BindUp
	BindDown
	BindLeft
	BindRight
	BindA
	BindX
	BindL
	BindR
	BindL2
	BindR2
	BindL3
	BindR3

	// BindCount is the number of pad inputs in a bind set.
	BindCount
)

var bindNames = [BindCount]string{
	"b", "y", "select", "start",
	"up", "down", "left", "right",
	"a", "x", "l", "r",
	"l2", "r2", "l3", "r3",
}

// Name returns the bind file name for a pad input.
func (b BindID) Name() string {
	if b < BindCount {
		return bindNames[b]
	}
	return "bind" + fmt.Sprint(uint(b))
}

// Bind associates a pad input with a keyboard key.
type Bind struct {
	Key   Key
	Valid bool
}

// BindSet is the keyboard binding table for one controller port.
type BindSet [BindCount]Bind

// DefaultBinds returns the stock keyboard layout for port 0.
func DefaultBinds() *BindSet {
	b := &BindSet{}
	for id, key := range map[BindID]Key{
		BindB:      KeyZ,
		BindY:      KeyA,
		BindSelect: KeyRShift,
		BindStart:  KeyReturn,
		BindUp:     KeyUp,
		BindDown:   KeyDown,
		BindLeft:   KeyLeft,
		BindRight:  KeyRight,
		BindA:      KeyX,
		BindX:      KeyS,
		BindL:      KeyQ,
		BindR:      KeyW,
	} {
		b[id] = Bind{Key: key, Valid: true}
	}
	return b
}

// ParseBinds reads a JSON bind override file mapping pad input names to key
// names, e.g. {"a": "x", "start": "enter"}. Entries replace the default
// binding for that input; inputs not mentioned keep their default. Unknown
// input or key names are rejected so that a typo does not silently leave an
// input unbound.
func ParseBinds(path string) (*BindSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading bind file: %w", err)
	}

	var overrides map[string]string
	if err := json.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parsing bind file %s: %w", path, err)
	}

	binds := DefaultBinds()
	for name, keyName := range overrides {
		id, ok := lookupBind(name)
		if !ok {
			return nil, fmt.Errorf("bind file %s: unknown pad input %q", path, name)
		}
		key, ok := Lookup(keyName)
		if !ok {
			return nil, fmt.Errorf("bind file %s: unknown key %q for input %q", path, keyName, name)
		}
		binds[id] = Bind{Key: key, Valid: true}
	}
	return binds, nil
}

func lookupBind(name string) (BindID, bool) {
	for id, n := range bindNames {
		if n == name {
			return BindID(id), true
		}
	}
	return 0, false
}
