package keymap

// Lut translates host key codes into the key symbols that index the virtual
// key state table. The host supplies one per platform; scripts and default
// binds already speak the table's own numbering, so the identity table is
// the common case.
type Lut struct {
	table [KeyLast]Key
}

// IdentityLut returns the translation table that maps every key to itself.
func IdentityLut() *Lut {
	l := &Lut{}
	for i := range l.table {
		l.table[i] = Key(i)
	}
	return l
}

// NewLut builds a translation table from an explicit mapping. Keys absent
// from the mapping translate to KeyUnknown.
func NewLut(mapping map[Key]Key) *Lut {
	l := &Lut{}
	for from, to := range mapping {
		if from < KeyLast && to < KeyLast {
			l.table[from] = to
		}
	}
	return l
}

// Translate maps a host key code to its table symbol. Out-of-range codes
// translate to KeyUnknown.
func (l *Lut) Translate(k Key) Key {
	if k >= KeyLast {
		return KeyUnknown
	}
	return l.table[k]
}
