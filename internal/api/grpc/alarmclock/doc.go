// Package alarmclock implements the gRPC transport of the alarm clock.
//
// The service alarmclock.v1.AlarmClock is described by hand and carries
// protobuf well-known types (Struct, ListValue, StringValue, BoolValue,
// Empty), so no generated code is needed on either side. The package holds
// the service descriptor, the client stub, the server that calls into the
// engine, and the conversions between domain values and messages.
package alarmclock
