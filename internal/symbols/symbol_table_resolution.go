package symbols

import (
	"io"

	"go.uber.org/zap"
)

// Resolve follows key's alias chain to a literal and returns it as text.
//
//   - an integer resolves to its decimal form, a string to itself;
//   - an alias on a marked cycle resolves to its own key;
//   - an alias to an undefined identifier resolves to that identifier's name.
//
// The second result is false only when key itself is not defined.
func (t *Table) Resolve(key string) (string, bool) {
	sym := t.lookup(key)
	if sym == nil {
		return "", false
	}

	for steps := 0; ; steps++ {
		switch v := sym.Value.(type) {
		case IntValue:
			return v.String(), true
		case StrValue:
			return v.V, true
		case AliasValue:
			if sym.InCycle || steps > t.count {
				// A chain longer than the table has looped.
				t.logger.Debug("resolved through cycle", zap.String("key", key), zap.String("value", sym.Key))
				return sym.Key, true
			}
			next := t.lookup(v.Target)
			if next == nil {
				return v.Target, true
			}
			sym = next
		default:
			return "", false
		}
	}
}

// Substitute writes the resolved value of id to w. It reports false and
// writes nothing if id is not defined.
func (t *Table) Substitute(w io.Writer, id string) (bool, error) {
	value, ok := t.Resolve(id)
	if !ok {
		t.logger.Debug("no match found", zap.String("id", id))
		return false, nil
	}
	t.logger.Debug("substituting", zap.String("id", id), zap.String("value", value))
	if _, err := io.WriteString(w, value); err != nil {
		return true, err
	}
	return true, nil
}
