// Package shift turns myTime schedule labels into structured work shifts.
//
// A weekly schedule page describes each day with a label such as
// "schedule for 2023-10-09 with 1 shifts" and each shift with a label such as
// "Tech shift from 05:00PM to 10:00PM at location 1234 on Monday October 12. Click to view daily view".
// The package parses both, combines them into a Shift with absolute start and end
// instants, and derives a 32-bit identity for a set of shifts so that repeated exports
// of the same week produce the same calendar UIDs.
//
// Parsing commits to a single label grammar and fails with a *ParseError on any
// mismatch; nothing is corrected or guessed.
package shift
