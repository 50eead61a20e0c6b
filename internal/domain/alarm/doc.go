// Package alarm contains core domain types for the alarm clock.
//
// It defines TimeOfDay (validated user input), Entry (one scheduled alarm)
// and Registry (the pending alarms with add, remove and due checks).
// Nothing here touches the wall clock directly: callers supply "now".
package alarm
