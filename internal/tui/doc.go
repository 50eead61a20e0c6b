// Package tui is the interactive terminal front end of the alarm clock.
//
// It runs an engine in-process and shows a live clock, the pending alarms
// with a selection cursor, a form to add an alarm and a banner while an
// alarm is sounding. Keys: a add, d delete selected, s stop, q quit.
package tui
