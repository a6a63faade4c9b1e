package symbols

import (
	"github.com/funvibe/defsub/internal/config"
	"github.com/funvibe/defsub/internal/diagnostics"
	"go.uber.org/zap"
)

// Table is an open-chaining hash table of symbols keyed by identifier.
// It is not safe for concurrent use.
type Table struct {
	buckets []*Symbol
	count   int
	grows   int

	reporter diagnostics.Reporter
	logger   *zap.Logger
}

type Option func(*Table)

// WithReporter sends redefinition warnings to r.
func WithReporter(r diagnostics.Reporter) Option {
	return func(t *Table) {
		if r != nil {
			t.reporter = r
		}
	}
}

// WithLogger traces table activity at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(t *Table) {
		if l != nil {
			t.logger = l
		}
	}
}

// NewTable returns an empty table with config.InitialBucketCount buckets.
func NewTable(opts ...Option) *Table {
	t := &Table{
		reporter: diagnostics.Discard,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.buckets = make([]*Symbol, config.InitialBucketCount)
	return t
}

// Destroy drops every symbol. The table stays usable and starts over at the
// initial bucket count.
func (t *Table) Destroy() {
	t.buckets = make([]*Symbol, config.InitialBucketCount)
	t.count = 0
	t.grows = 0
}

// Len returns the number of live symbols.
func (t *Table) Len() int { return t.count }

// BucketCount returns the current size of the bucket array.
func (t *Table) BucketCount() int { return len(t.buckets) }

// Grows returns how many times the bucket array has been enlarged.
func (t *Table) Grows() int { return t.grows }

// hash depends on the current bucket count and must be recomputed after grow.
func (t *Table) hash(key string) int {
	n := len(t.buckets)
	h := 0
	for i := 0; i < len(key); i++ {
		h = (37*h + int(key[i])) % n
	}
	return h
}

// lookup returns nil if key is not defined.
func (t *Table) lookup(key string) *Symbol {
	p := t.buckets[t.hash(key)]
	for p != nil && p.Key != key {
		p = p.next
	}
	return p
}

func (t *Table) place(sym *Symbol) {
	i := t.hash(sym.Key)
	sym.next = t.buckets[i]
	t.buckets[i] = sym
	t.count++
	if t.count > config.MaxLoadFactor*len(t.buckets) {
		t.grow(config.ScaleFactor * len(t.buckets))
	}
}

// remove unlinks key from its chain and returns the unlinked symbol, or nil.
func (t *Table) remove(key string) *Symbol {
	link := &t.buckets[t.hash(key)]
	for *link != nil {
		sym := *link
		if sym.Key == key {
			*link = sym.next
			sym.next = nil
			t.count--
			return sym
		}
		link = &sym.next
	}
	return nil
}

func (t *Table) grow(size int) {
	old := t.buckets
	t.buckets = make([]*Symbol, size)
	for _, p := range old {
		for p != nil {
			next := p.next
			i := t.hash(p.Key)
			p.next = t.buckets[i]
			t.buckets[i] = p
			p = next
		}
	}
	t.grows++
	t.logger.Debug("grew symbol table",
		zap.Int("from", len(old)), zap.Int("to", size), zap.Int("symbols", t.count))
}
