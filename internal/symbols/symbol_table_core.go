package symbols

import "strconv"

type ValueKind int

const (
	IntConst ValueKind = iota
	StrConst
	Ident
)

func (k ValueKind) String() string {
	switch k {
	case IntConst:
		return "INT_CONST"
	case StrConst:
		return "STR_CONST"
	case Ident:
		return "ID"
	default:
		return "UNKNOWN"
	}
}

// Value is what an identifier is bound to. The set of variants is closed:
// IntValue, StrValue and AliasValue.
type Value interface {
	Kind() ValueKind
	// String renders the value the way redefinition warnings show it.
	String() string
	value()
}

type IntValue struct {
	V int64
}

type StrValue struct {
	V string
}

// AliasValue names another identifier. It is resolved by lookup every time,
// so it always sees the current binding of Target.
type AliasValue struct {
	Target string
}

func (IntValue) Kind() ValueKind   { return IntConst }
func (StrValue) Kind() ValueKind   { return StrConst }
func (AliasValue) Kind() ValueKind { return Ident }

func (v IntValue) String() string   { return strconv.FormatInt(v.V, 10) }
func (v StrValue) String() string   { return v.V }
func (v AliasValue) String() string { return v.Target }

func (IntValue) value()   {}
func (StrValue) value()   {}
func (AliasValue) value() {}

// Symbol is one binding owned by a Table.
type Symbol struct {
	Key   string
	Value Value
	// InCycle is set while the symbol sits on an alias chain that loops.
	// Only markCycle and unmarkCycle write it.
	InCycle bool

	next *Symbol // bucket chain
}
