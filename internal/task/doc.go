// Package task holds the task model and the ordered task list.
//
// A Task is one of three kinds:
//
//   - ToDo: a description and a done flag.
//   - Deadline: additionally a due instant (by).
//   - Event: additionally a start and end instant (from, to), with from <= to.
//
// The kind set is closed. Code that behaves differently per kind switches over Kind
// exhaustively instead of relying on interfaces.
//
// # Rendering
//
//	[T][ ] buy milk
//	[D][X] pay bills (by: Sep 10 2025, 11:59PM)
//	[E][ ] trip (from: Sep 01 2025, 12:00AM to: Sep 03 2025, 11:59PM)
//
// # Instants
//
// Instants are produced by the datetime package. Date-only input for a deadline or
// an event end becomes 23:59; date-only input for an event start becomes 00:00.
//
// # List positions
//
// List methods take 0-based indices. User-facing commands translate from 1-based
// positions before calling them.
package task
