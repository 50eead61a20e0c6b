package alarmclock

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/service/engine"
)

// Struct field names used on the wire.
const (
	fieldHour        = "hour"
	fieldMinute      = "minute"
	fieldSecond      = "second"
	fieldID          = "id"
	fieldLabel       = "label"
	fieldScheduledAt = "scheduled_at"
	fieldKind        = "kind"
	fieldAt          = "at"
	fieldStopped     = "stopped"
)

// timestampLayout is the wire format of timestamps.
const timestampLayout = time.RFC3339

// errMessageRequired is returned when a nil message is decoded.
var errMessageRequired = errors.New("message is required")

// TimeOfDayToStruct encodes an AddAlarm request.
func TimeOfDayToStruct(t alarm.TimeOfDay) *structpb.Struct {
	return &structpb.Struct{
		Fields: map[string]*structpb.Value{
			fieldHour:   structpb.NewNumberValue(float64(t.Hour)),
			fieldMinute: structpb.NewNumberValue(float64(t.Minute)),
			fieldSecond: structpb.NewNumberValue(float64(t.Second)),
		},
	}
}

// TimeOfDayFromStruct decodes an AddAlarm request. Components may be numbers
// or decimal strings; a missing second means zero. Bad input yields an
// alarm.ValidationError.
func TimeOfDayFromStruct(s *structpb.Struct) (alarm.TimeOfDay, error) {
	if s == nil {
		return alarm.TimeOfDay{}, errMessageRequired
	}

	fields := s.GetFields()

	hour, err := componentString(fields, fieldHour, "")
	if err != nil {
		return alarm.TimeOfDay{}, err
	}

	minute, err := componentString(fields, fieldMinute, "")
	if err != nil {
		return alarm.TimeOfDay{}, err
	}

	second, err := componentString(fields, fieldSecond, "0")
	if err != nil {
		return alarm.TimeOfDay{}, err
	}

	return alarm.ParseTimeOfDay(hour, minute, second)
}

// componentString renders one time component as the string the domain parser expects.
func componentString(fields map[string]*structpb.Value, name, fallback string) (string, error) {
	value, ok := fields[name]
	if !ok {
		return fallback, nil
	}

	switch kind := value.GetKind().(type) {
	case *structpb.Value_StringValue:
		return kind.StringValue, nil
	case *structpb.Value_NumberValue:
		number := kind.NumberValue
		if number != math.Trunc(number) {
			// Let the domain parser reject it with a proper validation error.
			return strconv.FormatFloat(number, 'f', -1, 64), nil
		}

		return strconv.FormatInt(int64(number), 10), nil
	default:
		return "", &alarm.ValidationError{
			Field:  name,
			Value:  value.String(),
			Reason: "must be a number or a string",
		}
	}
}

// EntryToStruct encodes an alarm entry.
func EntryToStruct(e alarm.Entry) *structpb.Struct {
	fields := map[string]*structpb.Value{
		fieldID:    structpb.NewStringValue(e.ID),
		fieldLabel: structpb.NewStringValue(e.Label),
	}

	if !e.ScheduledAt.IsZero() {
		fields[fieldScheduledAt] = structpb.NewStringValue(e.ScheduledAt.Format(timestampLayout))
	}

	return &structpb.Struct{Fields: fields}
}

// EntryFromStruct decodes an alarm entry.
func EntryFromStruct(s *structpb.Struct) (alarm.Entry, error) {
	if s == nil {
		return alarm.Entry{}, errMessageRequired
	}

	fields := s.GetFields()

	entry := alarm.Entry{
		ID:    fields[fieldID].GetStringValue(),
		Label: fields[fieldLabel].GetStringValue(),
	}

	if raw := fields[fieldScheduledAt].GetStringValue(); raw != "" {
		scheduledAt, err := time.Parse(timestampLayout, raw)
		if err != nil {
			return alarm.Entry{}, fmt.Errorf("parse %s: %w", fieldScheduledAt, err)
		}

		entry.ScheduledAt = scheduledAt
	}

	return entry, nil
}

// EntriesToList encodes a ListAlarms response.
func EntriesToList(entries []alarm.Entry) *structpb.ListValue {
	values := make([]*structpb.Value, 0, len(entries))

	for _, entry := range entries {
		values = append(values, structpb.NewStructValue(EntryToStruct(entry)))
	}

	return &structpb.ListValue{Values: values}
}

// EntriesFromList decodes a ListAlarms response.
func EntriesFromList(list *structpb.ListValue) ([]alarm.Entry, error) {
	entries := make([]alarm.Entry, 0, len(list.GetValues()))

	for i, value := range list.GetValues() {
		entry, err := EntryFromStruct(value.GetStructValue())
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

// EventToStruct encodes one WatchEvents message.
func EventToStruct(ev engine.Event) *structpb.Struct {
	s := EntryToStruct(ev.Entry)

	s.Fields[fieldKind] = structpb.NewStringValue(string(ev.Kind))
	s.Fields[fieldAt] = structpb.NewStringValue(ev.At.Format(timestampLayout))

	if ev.Kind == engine.EventSoundingEnded {
		s.Fields[fieldStopped] = structpb.NewBoolValue(ev.Stopped)
	}

	return s
}

// EventFromStruct decodes one WatchEvents message.
func EventFromStruct(s *structpb.Struct) (engine.Event, error) {
	entry, err := EntryFromStruct(s)
	if err != nil {
		return engine.Event{}, err
	}

	fields := s.GetFields()

	ev := engine.Event{
		Kind:    engine.EventKind(fields[fieldKind].GetStringValue()),
		Entry:   entry,
		Stopped: fields[fieldStopped].GetBoolValue(),
	}

	if raw := fields[fieldAt].GetStringValue(); raw != "" {
		if ev.At, err = time.Parse(timestampLayout, raw); err != nil {
			return engine.Event{}, fmt.Errorf("parse %s: %w", fieldAt, err)
		}
	}

	return ev, nil
}
