// Package state holds the record collection behind the table.
//
// The collection is owned by a Store and changes only through dispatched
// actions. Reduce is the pure transition function; the Store applies it under
// a lock and then notifies subscribers with the post-mutation state.
//
// ARCHITECTURE:
//
//	intent ──Dispatch(Action)──► Store ──Reduce──► State
//	                               │
//	                               └──► subscribers (persistence, printers)
//
// Insertion order is the canonical order of the collection. Sorting and
// filtering are derived views (see package view) and never touch State.
//
// IDs are unique across the collection. The reducer refuses any action that
// would introduce a duplicate and returns the state unchanged.
package state
