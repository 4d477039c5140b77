// Package model defines the record types produced by the parser.
package model

import (
	"time"
)

// LogEvent represents a single data row of a W3C extended log file.
// Every optional field is a pointer: nil means the column held "-" or
// was not declared by the active #Fields: directive.
type LogEvent struct {
	// Timestamp combines the row's date and time columns.
	Timestamp time.Time `json:"timestamp"`

	SiteName     *string `json:"s-sitename,omitempty"`
	ComputerName *string `json:"s-computername,omitempty"`
	ServerIP     *string `json:"s-ip,omitempty"`
	Method       *string `json:"cs-method,omitempty"`
	URIStem      *string `json:"cs-uri-stem,omitempty"`
	URIQuery     *string `json:"cs-uri-query,omitempty"`
	Username     *string `json:"cs-username,omitempty"`
	ClientIP     *string `json:"c-ip,omitempty"`
	Version      *string `json:"cs-version,omitempty"`
	UserAgent    *string `json:"cs(User-Agent),omitempty"`
	Cookie       *string `json:"cs(Cookie),omitempty"`
	Referer      *string `json:"cs(Referer),omitempty"`
	Host         *string `json:"cs-host,omitempty"`

	ServerPort    *int   `json:"s-port,omitempty"`
	Status        *int   `json:"sc-status,omitempty"`
	Substatus     *int   `json:"sc-substatus,omitempty"`
	Win32Status   *int64 `json:"sc-win32-status,omitempty"`
	BytesSent     *int64 `json:"sc-bytes,omitempty"`
	BytesReceived *int64 `json:"cs-bytes,omitempty"`

	// TimeTaken is the request duration in milliseconds.
	TimeTaken *int `json:"time-taken,omitempty"`
}

// String returns a pointer to v.
func String(v string) *string { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Int64 returns a pointer to v.
func Int64(v int64) *int64 { return &v }
