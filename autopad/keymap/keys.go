package keymap

import "strconv"

// Key is a logical keyboard key symbol. Values follow the classic frontend
// keysym numbering so that script files written against the original key
// codes keep their meaning.
type Key uint

const (
	KeyUnknown   Key = 0
	KeyBackspace Key = 8
	KeyTab       Key = 9
	KeyClear     Key = 12
	KeyReturn    Key = 13
	KeyPause     Key = 19
	KeyEscape    Key = 27
	KeySpace     Key = 32
	KeyComma     Key = 44
	KeyMinus     Key = 45
	KeyPeriod    Key = 46
	KeySlash     Key = 47
	Key0         Key = 48
	Key1         Key = 49
	Key2         Key = 50
	Key3         Key = 51
	Key4         Key = 52
	Key5         Key = 53
	Key6         Key = 54
	Key7         Key = 55
	Key8         Key = 56
	Key9         Key = 57
	KeySemicolon Key = 59
	KeyEquals    Key = 61

	KeyLeftBracket  Key = 91
	KeyBackslash    Key = 92
	KeyRightBracket Key = 93
	KeyBackquote    Key = 96

	KeyA Key = 97
	KeyB Key = 98
	KeyC Key = 99
	KeyD Key = 100
	KeyE Key = 101
	KeyF Key = 102
	KeyG Key = 103
	KeyH Key = 104
	KeyI Key = 105
	KeyJ Key = 106
	KeyK Key = 107
	KeyL Key = 108
	KeyM Key = 109
	KeyN Key = 110
	KeyO Key = 111
	KeyP Key = 112
	KeyQ Key = 113
	KeyR Key = 114
	KeyS Key = 115
	KeyT Key = 116
	KeyU Key = 117
	KeyV Key = 118
	KeyW Key = 119
	KeyX Key = 120
	KeyY Key = 121
	KeyZ Key = 122

	KeyDelete Key = 127

	Keypad0        Key = 256
	Keypad1        Key = 257
	Keypad2        Key = 258
	Keypad3        Key = 259
	Keypad4        Key = 260
	Keypad5        Key = 261
	Keypad6        Key = 262
	Keypad7        Key = 263
	Keypad8        Key = 264
	Keypad9        Key = 265
	KeypadPeriod   Key = 266
	KeypadDivide   Key = 267
	KeypadMultiply Key = 268
	KeypadMinus    Key = 269
	KeypadPlus     Key = 270
	KeypadEnter    Key = 271

	KeyUp       Key = 273
	KeyDown     Key = 274
	KeyRight    Key = 275
	KeyLeft     Key = 276
	KeyInsert   Key = 277
	KeyHome     Key = 278
	KeyEnd      Key = 279
	KeyPageUp   Key = 280
	KeyPageDown Key = 281

	KeyF1  Key = 282
	KeyF2  Key = 283
	KeyF3  Key = 284
	KeyF4  Key = 285
	KeyF5  Key = 286
	KeyF6  Key = 287
	KeyF7  Key = 288
	KeyF8  Key = 289
	KeyF9  Key = 290
	KeyF10 Key = 291
	KeyF11 Key = 292
	KeyF12 Key = 293

	KeyNumLock    Key = 300
	KeyCapsLock   Key = 301
	KeyScrollLock Key = 302
	KeyRShift     Key = 303
	KeyLShift     Key = 304
	KeyRCtrl      Key = 305
	KeyLCtrl      Key = 306
	KeyRAlt       Key = 307
	KeyLAlt       Key = 308

	// KeyLast bounds every key table in the module. Key codes at or past
	// this value are out of range and must be treated as no-ops.
	KeyLast Key = 323
)

// keyNames covers the keys a script or bind file is likely to reference.
// Keys without an entry render as "key<code>".
var keyNames = map[Key]string{
	KeyBackspace:  "backspace",
	KeyTab:        "tab",
	KeyReturn:     "enter",
	KeyPause:      "pause",
	KeyEscape:     "escape",
	KeySpace:      "space",
	KeyComma:      "comma",
	KeyMinus:      "minus",
	KeyPeriod:     "period",
	KeySlash:      "slash",
	KeySemicolon:  "semicolon",
	KeyEquals:     "equals",
	KeyUp:         "up",
	KeyDown:       "down",
	KeyRight:      "right",
	KeyLeft:       "left",
	KeyInsert:     "insert",
	KeyHome:       "home",
	KeyEnd:        "end",
	KeyPageUp:     "pageup",
	KeyPageDown:   "pagedown",
	KeyDelete:     "delete",
	KeyNumLock:    "numlock",
	KeyCapsLock:   "capslock",
	KeyScrollLock: "scrolllock",
	KeyRShift:     "rshift",
	KeyLShift:     "lshift",
	KeyRCtrl:      "rctrl",
	KeyLCtrl:      "lctrl",
	KeyRAlt:       "ralt",
	KeyLAlt:       "lalt",
}

var namedKeys map[string]Key

func init() {
	for k := Key0; k <= Key9; k++ {
		keyNames[k] = string(rune(k))
	}
	for k := KeyA; k <= KeyZ; k++ {
		keyNames[k] = string(rune(k))
	}
	for i := 0; i < 12; i++ {
		keyNames[KeyF1+Key(i)] = "f" + strconv.Itoa(i+1)
	}
	for i := 0; i < 10; i++ {
		keyNames[Keypad0+Key(i)] = "kp" + strconv.Itoa(i)
	}

	namedKeys = make(map[string]Key, len(keyNames))
	for k, name := range keyNames {
		namedKeys[name] = k
	}
}

// Name returns a printable name for a key symbol.
func (k Key) Name() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "key" + strconv.Itoa(int(k))
}

// Lookup resolves a key name as used in bind files back to its symbol.
func Lookup(name string) (Key, bool) {
	k, ok := namedKeys[name]
	return k, ok
}
