// Package service holds the pure computations of the Self Focus domain: goal
// progress, ledger aggregation, solvency, habit streaks and check-ins.
//
// Every function here works on collections supplied by the caller. Nothing
// performs I/O, logs, or keeps state between calls, so results depend only on
// the arguments and repeated calls with the same input give the same output.
// Callers own the read, compute, persist sequence and must serialise it per
// entity.
package service
