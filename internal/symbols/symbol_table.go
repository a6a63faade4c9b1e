// symbols/symbol_table.go - Main symbol table entry point
//
// The table is split into focused files:
// - symbol_table_core.go: Symbol record and the Value sum type
// - symbol_table_storage.go: Table struct, bucket chains, hashing and growth
// - symbol_table_operations.go: define/redefine and read accessors
// - symbol_table_aliases.go: alias cycle marking
// - symbol_table_resolution.go: value resolution and substitution
// - symbol_table_dump.go: debugging dump of every record

// Package symbols stores #define bindings and resolves identifiers through
// alias chains, including chains that loop back on themselves.
package symbols
