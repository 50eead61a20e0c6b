// Package sound plays the audible part of an alarm.
//
// A Player makes a single beep; platform strategies (native tone, terminal
// bell, external command, silence) are interchangeable. The Controller turns
// beeps into the repeating alarm sequence and tracks the Idle/Sounding state.
package sound
