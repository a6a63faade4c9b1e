package symbols

import "go.uber.org/zap"

// DefineInt binds key to an integer. line is the source line of the
// definition and only shows up in the redefinition warning.
// It returns true if key was not defined before.
func (t *Table) DefineInt(key string, v int64, line int) bool {
	return t.insertOrUpdate(&Symbol{Key: key, Value: IntValue{V: v}}, line)
}

// DefineStr binds key to a string.
func (t *Table) DefineStr(key, v string, line int) bool {
	return t.insertOrUpdate(&Symbol{Key: key, Value: StrValue{V: v}}, line)
}

// DefineAlias binds key to another identifier. target does not need to be
// defined yet.
func (t *Table) DefineAlias(key, target string, line int) bool {
	return t.insertOrUpdate(&Symbol{Key: key, Value: AliasValue{Target: target}}, line)
}

// Define binds key to any Value.
func (t *Table) Define(key string, v Value, line int) bool {
	return t.insertOrUpdate(&Symbol{Key: key, Value: v}, line)
}

// Lookup returns a copy of the symbol bound to key.
func (t *Table) Lookup(key string) (Symbol, bool) {
	sym := t.lookup(key)
	if sym == nil {
		return Symbol{}, false
	}
	cp := *sym
	cp.next = nil
	return cp, true
}

func (t *Table) insertOrUpdate(sym *Symbol, line int) bool {
	sym.InCycle = false

	old := t.lookup(sym.Key)
	var cleared []*Symbol
	if old != nil {
		// The old chain has to be walked while old is still reachable.
		cleared = t.unmarkCycle(old)
		t.remove(sym.Key)
		t.reporter.Redefinition(sym.Key, sym.Value.String(), line)
		t.logger.Debug("redefined symbol",
			zap.String("key", sym.Key),
			zap.Stringer("kind", sym.Value.Kind()),
			zap.String("value", sym.Value.String()),
			zap.Int("line", line))
	} else {
		t.logger.Debug("defined symbol",
			zap.String("key", sym.Key),
			zap.Stringer("kind", sym.Value.Kind()),
			zap.String("value", sym.Value.String()),
			zap.Int("line", line))
	}

	t.place(sym)
	t.markCycle(sym)

	// Clearing the old chain may have run through a loop that does not
	// involve the replaced symbol; put those flags back.
	for _, s := range cleared {
		if s != old && !s.InCycle {
			t.markCycle(s)
		}
	}

	return old == nil
}
