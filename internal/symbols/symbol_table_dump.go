package symbols

import (
	"fmt"
	"io"
)

// Dump writes one line per symbol in bucket order. The format is meant for
// people and may change.
func (t *Table) Dump(w io.Writer) error {
	for i, p := range t.buckets {
		for ; p != nil; p = p.next {
			_, err := fmt.Fprintf(w, "[%d] key=%s, type=%s, value=%s, in_cycle=%t\n",
				i, p.Key, p.Value.Kind(), p.Value.String(), p.InCycle)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// Symbols returns copies of every symbol in bucket order.
func (t *Table) Symbols() []Symbol {
	out := make([]Symbol, 0, t.count)
	for _, p := range t.buckets {
		for ; p != nil; p = p.next {
			cp := *p
			cp.next = nil
			out = append(out, cp)
		}
	}
	return out
}
