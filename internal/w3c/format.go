package w3c

import (
	"strconv"
	"strings"

	"github.com/GabrielNunesIT/iis-log-parser/internal/model"
)

// FormatEvent writes event back out as a data line for the given header.
// Absent values and unknown columns are written as "-".
func FormatEvent(event *model.LogEvent, h *Header) string {
	var sb strings.Builder
	for i, f := range h.fields {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(formatField(event, f))
	}
	return sb.String()
}

// FormatDirective returns the #Fields: line for h.
func FormatDirective(h *Header) string {
	return directivePrefix + " " + strings.Join(h.columns, " ")
}

func formatField(e *model.LogEvent, f Field) string {
	switch f {
	case FieldDate:
		return e.Timestamp.Format("2006-01-02")
	case FieldTime:
		return e.Timestamp.Format("15:04:05")
	case FieldSiteName:
		return str(e.SiteName)
	case FieldComputerName:
		return str(e.ComputerName)
	case FieldServerIP:
		return str(e.ServerIP)
	case FieldMethod:
		return str(e.Method)
	case FieldURIStem:
		return str(e.URIStem)
	case FieldURIQuery:
		return str(e.URIQuery)
	case FieldServerPort:
		return num(e.ServerPort)
	case FieldUsername:
		return str(e.Username)
	case FieldClientIP:
		return str(e.ClientIP)
	case FieldVersion:
		return str(e.Version)
	case FieldUserAgent:
		return str(e.UserAgent)
	case FieldCookie:
		return str(e.Cookie)
	case FieldReferer:
		return str(e.Referer)
	case FieldHost:
		return str(e.Host)
	case FieldStatus:
		return num(e.Status)
	case FieldSubstatus:
		return num(e.Substatus)
	case FieldWin32Status:
		return wide(e.Win32Status)
	case FieldBytesSent:
		return wide(e.BytesSent)
	case FieldBytesReceived:
		return wide(e.BytesReceived)
	case FieldTimeTaken:
		return num(e.TimeTaken)
	default:
		return absentValue
	}
}

func str(v *string) string {
	if v == nil {
		return absentValue
	}
	return *v
}

func num(v *int) string {
	if v == nil {
		return absentValue
	}
	return strconv.Itoa(*v)
}

func wide(v *int64) string {
	if v == nil {
		return absentValue
	}
	return strconv.FormatInt(*v, 10)
}
