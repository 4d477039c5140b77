package w3c

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapLine(t *testing.T, header, line string) Row {
	t.Helper()
	h, err := ParseHeader(header)
	require.NoError(t, err)
	row, err := h.Map(line)
	require.NoError(t, err)
	return row
}

func TestBuildEvent_Minimal(t *testing.T) {
	row := mapLine(t, "#Fields: date time s-ip cs-method", "2023-01-01 00:00:01 10.0.0.1 GET")

	event, err := BuildEvent(row, nil)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2023, 1, 1, 0, 0, 1, 0, time.UTC), event.Timestamp)
	require.NotNil(t, event.ServerIP)
	assert.Equal(t, "10.0.0.1", *event.ServerIP)
	require.NotNil(t, event.Method)
	assert.Equal(t, "GET", *event.Method)

	assert.Nil(t, event.SiteName)
	assert.Nil(t, event.URIStem)
	assert.Nil(t, event.ServerPort)
	assert.Nil(t, event.Status)
	assert.Nil(t, event.Win32Status)
	assert.Nil(t, event.TimeTaken)
}

func TestBuildEvent_FullIISLine(t *testing.T) {
	header := "#Fields: date time s-sitename s-computername s-ip cs-method cs-uri-stem cs-uri-query s-port cs-username c-ip cs-version cs(User-Agent) cs(Cookie) cs(Referer) cs-host sc-status sc-substatus sc-win32-status sc-bytes cs-bytes time-taken"
	line := "2023-06-15 13:45:10 W3SVC1 WEB01 192.168.1.10 POST /api/orders id=7 443 alice 203.0.113.5 HTTP/1.1 Mozilla/5.0+(Windows+NT+10.0) ASP.NET_SessionId=abc https://example.com/ example.com 201 0 3221225477 5120 812 37"

	event, err := BuildEvent(mapLine(t, header, line), time.UTC)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2023, 6, 15, 13, 45, 10, 0, time.UTC), event.Timestamp)
	assert.Equal(t, "W3SVC1", *event.SiteName)
	assert.Equal(t, "WEB01", *event.ComputerName)
	assert.Equal(t, "/api/orders", *event.URIStem)
	assert.Equal(t, "id=7", *event.URIQuery)
	assert.Equal(t, 443, *event.ServerPort)
	assert.Equal(t, "alice", *event.Username)
	assert.Equal(t, "203.0.113.5", *event.ClientIP)
	assert.Equal(t, "HTTP/1.1", *event.Version)
	assert.Equal(t, "Mozilla/5.0+(Windows+NT+10.0)", *event.UserAgent)
	assert.Equal(t, "ASP.NET_SessionId=abc", *event.Cookie)
	assert.Equal(t, "https://example.com/", *event.Referer)
	assert.Equal(t, "example.com", *event.Host)
	assert.Equal(t, 201, *event.Status)
	assert.Equal(t, 0, *event.Substatus)
	// Win32 status exceeds the 32-bit range
	assert.Equal(t, int64(3221225477), *event.Win32Status)
	assert.Equal(t, int64(5120), *event.BytesSent)
	assert.Equal(t, int64(812), *event.BytesReceived)
	assert.Equal(t, 37, *event.TimeTaken)
}

func TestBuildEvent_DashIsAbsentNotZero(t *testing.T) {
	row := mapLine(t, "#Fields: date time sc-status sc-bytes cs-username", "2023-01-01 00:00:01 - - -")

	event, err := BuildEvent(row, nil)
	require.NoError(t, err)

	assert.Nil(t, event.Status)
	assert.Nil(t, event.BytesSent)
	assert.Nil(t, event.Username)
}

func TestBuildEvent_Location(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	row := mapLine(t, "#Fields: date time", "2023-01-01 02:00:00")

	event, err := BuildEvent(row, loc)
	require.NoError(t, err)
	assert.True(t, event.Timestamp.Equal(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestBuildEvent_LenientTimestamp(t *testing.T) {
	row := mapLine(t, "#Fields: date time", "2023/01/02 03:04:05")

	event, err := BuildEvent(row, nil)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC), event.Timestamp)
}

func TestBuildEvent_Errors(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		line    string
		wantErr error
	}{
		{
			name:    "missing time column",
			header:  "#Fields: date s-ip",
			line:    "2023-01-01 10.0.0.1",
			wantErr: ErrMalformedTimestamp,
		},
		{
			name:    "dash date",
			header:  "#Fields: date time",
			line:    "- 00:00:01",
			wantErr: ErrMalformedTimestamp,
		},
		{
			name:    "garbage timestamp",
			header:  "#Fields: date time",
			line:    "2023-02-30 25:61:00",
			wantErr: ErrMalformedTimestamp,
		},
		{
			name:    "truncated time token",
			header:  "#Fields: date time",
			line:    "2023-01-01 1",
			wantErr: ErrMalformedTimestamp,
		},
		{
			name:    "lenient date with bad clock",
			header:  "#Fields: date time",
			line:    "2023/01/02 noon",
			wantErr: ErrMalformedTimestamp,
		},
		{
			name:    "non numeric status",
			header:  "#Fields: date time sc-status",
			line:    "2023-01-01 00:00:01 OK",
			wantErr: ErrMalformedNumber,
		},
		{
			name:    "port overflows 32 bits",
			header:  "#Fields: date time s-port",
			line:    "2023-01-01 00:00:01 4294967296",
			wantErr: ErrMalformedNumber,
		},
		{
			name:    "empty bytes token",
			header:  "#Fields: date time sc-bytes",
			line:    "2023-01-01 00:00:01 ",
			wantErr: ErrMalformedNumber,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildEvent(mapLine(t, tt.header, tt.line), nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLineError(t *testing.T) {
	err := &LineError{Line: 12, Err: ErrColumnMismatch}

	assert.Equal(t, "line 12: fewer values than header columns", err.Error())
	assert.ErrorIs(t, err, ErrColumnMismatch)
	assert.True(t, IsMalformed(err))
	assert.False(t, IsMalformed(ErrColumnMismatch))
}
