package w3c

import (
	"fmt"
	"strconv"
	"time"

	"github.com/araddon/dateparse"

	"github.com/GabrielNunesIT/iis-log-parser/internal/model"
)

// TimestampLayout is how IIS writes the date and time columns once joined.
const TimestampLayout = "2006-01-02 15:04:05"

// BuildEvent converts a row into a LogEvent. loc is the zone of the date
// and time columns; nil means UTC.
func BuildEvent(row Row, loc *time.Location) (*model.LogEvent, error) {
	if loc == nil {
		loc = time.UTC
	}

	ts, err := parseTimestamp(row, loc)
	if err != nil {
		return nil, err
	}

	event := &model.LogEvent{
		Timestamp:    ts,
		SiteName:     stringField(row, FieldSiteName),
		ComputerName: stringField(row, FieldComputerName),
		ServerIP:     stringField(row, FieldServerIP),
		Method:       stringField(row, FieldMethod),
		URIStem:      stringField(row, FieldURIStem),
		URIQuery:     stringField(row, FieldURIQuery),
		Username:     stringField(row, FieldUsername),
		ClientIP:     stringField(row, FieldClientIP),
		Version:      stringField(row, FieldVersion),
		UserAgent:    stringField(row, FieldUserAgent),
		Cookie:       stringField(row, FieldCookie),
		Referer:      stringField(row, FieldReferer),
		Host:         stringField(row, FieldHost),
	}

	ints := []struct {
		field Field
		dst   **int
	}{
		{FieldServerPort, &event.ServerPort},
		{FieldStatus, &event.Status},
		{FieldSubstatus, &event.Substatus},
		{FieldTimeTaken, &event.TimeTaken},
	}
	for _, f := range ints {
		if *f.dst, err = intField(row, f.field); err != nil {
			return nil, err
		}
	}

	wides := []struct {
		field Field
		dst   **int64
	}{
		{FieldWin32Status, &event.Win32Status},
		{FieldBytesSent, &event.BytesSent},
		{FieldBytesReceived, &event.BytesReceived},
	}
	for _, f := range wides {
		if *f.dst, err = int64Field(row, f.field); err != nil {
			return nil, err
		}
	}

	return event, nil
}

func parseTimestamp(row Row, loc *time.Location) (time.Time, error) {
	date, okDate := row.Get(FieldDate)
	clock, okTime := row.Get(FieldTime)
	if !okDate || !okTime {
		return time.Time{}, fmt.Errorf("%w: date and time columns are required", ErrMalformedTimestamp)
	}

	value := date + " " + clock
	if ts, err := time.ParseInLocation(TimestampLayout, value, loc); err == nil {
		return ts, nil
	}

	// The lenient parser only gets to reinterpret the date. The clock token
	// must still be a time of day and must survive parsing unchanged.
	want, ok := parseClock(clock)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %q: invalid time of day", ErrMalformedTimestamp, value)
	}
	ts, err := dateparse.ParseIn(value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrMalformedTimestamp, value, err)
	}
	if h, m, sec := ts.Clock(); h != want.Hour() || m != want.Minute() || sec != want.Second() {
		return time.Time{}, fmt.Errorf("%w: %q: time of day not preserved", ErrMalformedTimestamp, value)
	}
	return ts, nil
}

var clockLayouts = []string{"15:04:05", "15:04"}

func parseClock(clock string) (time.Time, bool) {
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, clock); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func stringField(row Row, f Field) *string {
	v, ok := row.Get(f)
	if !ok {
		return nil
	}
	return &v
}

func intField(row Row, f Field) (*int, error) {
	v, ok := row.Get(f)
	if !ok {
		return nil, nil
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: %s=%q", ErrMalformedNumber, f, v)
	}
	i := int(n)
	return &i, nil
}

func int64Field(row Row, f Field) (*int64, error) {
	v, ok := row.Get(f)
	if !ok {
		return nil, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s=%q", ErrMalformedNumber, f, v)
	}
	return &n, nil
}
