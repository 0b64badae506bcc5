// Package srs implements the spaced-repetition core of the practice engine:
// an SM-2 style memory model, the practice batch selector, the mastery
// aggregate and per-item scoring.
//
// Every function in this package is pure: state goes in, new state comes out,
// and the caller is responsible for persisting it. Time is always passed in
// explicitly so results are reproducible.
package srs
