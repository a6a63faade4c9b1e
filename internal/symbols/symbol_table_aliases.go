package symbols

import "go.uber.org/zap"

// markCycle classifies the alias chain that starts at start. Every symbol
// on the chain, up to the first one already marked, ends up marked if the
// walk reached a marked symbol, and unmarked if the chain ended at a literal
// or an undefined target.
func (t *Table) markCycle(start *Symbol) {
	start.InCycle = true

	cur := start
	for {
		alias, ok := cur.Value.(AliasValue)
		if !ok {
			break
		}
		next := t.lookup(alias.Target)
		if next == nil {
			break
		}
		if next.InCycle {
			t.logger.Debug("alias cycle marked",
				zap.String("from", start.Key), zap.String("closed_at", next.Key))
			return
		}
		next.InCycle = true
		cur = next
	}

	t.unmarkCycle(start)
}

// unmarkCycle clears flags along the alias chain from start until it reaches
// an unmarked symbol, a literal or an undefined target. It returns the
// symbols it cleared, in chain order.
func (t *Table) unmarkCycle(start *Symbol) []*Symbol {
	var cleared []*Symbol
	for cur := start; cur != nil && cur.InCycle; {
		cur.InCycle = false
		cleared = append(cleared, cur)
		alias, ok := cur.Value.(AliasValue)
		if !ok {
			break
		}
		cur = t.lookup(alias.Target)
	}
	return cleared
}
