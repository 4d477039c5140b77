// Package w3c interprets W3C extended log format directives and data lines
// as written by IIS.
package w3c

// Field is one of the column names the parser maps onto a LogEvent.
type Field int

// Known columns. FieldUnknown marks header columns that are ignored.
const (
	FieldUnknown Field = iota
	FieldDate
	FieldTime
	FieldSiteName
	FieldComputerName
	FieldServerIP
	FieldMethod
	FieldURIStem
	FieldURIQuery
	FieldServerPort
	FieldUsername
	FieldClientIP
	FieldVersion
	FieldUserAgent
	FieldCookie
	FieldReferer
	FieldHost
	FieldStatus
	FieldSubstatus
	FieldWin32Status
	FieldBytesSent
	FieldBytesReceived
	FieldTimeTaken

	fieldCount
)

var fieldNames = [fieldCount]string{
	FieldUnknown:       "",
	FieldDate:          "date",
	FieldTime:          "time",
	FieldSiteName:      "s-sitename",
	FieldComputerName:  "s-computername",
	FieldServerIP:      "s-ip",
	FieldMethod:        "cs-method",
	FieldURIStem:       "cs-uri-stem",
	FieldURIQuery:      "cs-uri-query",
	FieldServerPort:    "s-port",
	FieldUsername:      "cs-username",
	FieldClientIP:      "c-ip",
	FieldVersion:       "cs-version",
	FieldUserAgent:     "cs(User-Agent)",
	FieldCookie:        "cs(Cookie)",
	FieldReferer:       "cs(Referer)",
	FieldHost:          "cs-host",
	FieldStatus:        "sc-status",
	FieldSubstatus:     "sc-substatus",
	FieldWin32Status:   "sc-win32-status",
	FieldBytesSent:     "sc-bytes",
	FieldBytesReceived: "cs-bytes",
	FieldTimeTaken:     "time-taken",
}

var fieldsByName = func() map[string]Field {
	m := make(map[string]Field, fieldCount)
	for f := FieldDate; f < fieldCount; f++ {
		m[fieldNames[f]] = f
	}
	return m
}()

// FieldByName resolves a header column name. Matching is exact, as IIS
// writes the names with fixed casing.
func FieldByName(name string) (Field, bool) {
	f, ok := fieldsByName[name]
	return f, ok
}

// String returns the W3C column name.
func (f Field) String() string {
	if f <= FieldUnknown || f >= fieldCount {
		return "unknown"
	}
	return fieldNames[f]
}

// StandardFields is the column order IIS uses for its default W3C logging,
// extended with the optional columns the parser understands.
var StandardFields = []string{
	"date", "time", "s-sitename", "s-computername", "s-ip", "cs-method",
	"cs-uri-stem", "cs-uri-query", "s-port", "cs-username", "c-ip",
	"cs-version", "cs(User-Agent)", "cs(Cookie)", "cs(Referer)", "cs-host",
	"sc-status", "sc-substatus", "sc-win32-status", "sc-bytes", "cs-bytes",
	"time-taken",
}
