// Package email provides reminder email delivery via a DB-backed queue.
package email

import (
	"bytes"
	"strings"
	"time"
)

const icsTimeLayout = "20060102T150405Z"

// BuildActivityInvite renders a minimal RFC 5545 calendar invite for an
// activity, suitable for attaching to a reminder email as text/calendar.
// When the activity has no end time the event defaults to one hour.
func BuildActivityInvite(activityID, summary string, startsAt time.Time, endsAt *time.Time) []byte {
	end := startsAt.Add(1 * time.Hour)
	if endsAt != nil && endsAt.After(startsAt) {
		end = *endsAt
	}

	var buf bytes.Buffer
	writeICSLine := func(line string) {
		buf.WriteString(line)
		buf.WriteString("\r\n")
	}

	writeICSLine("BEGIN:VCALENDAR")
	writeICSLine("VERSION:2.0")
	writeICSLine("PRODID:-//Engage CRM//Reminder Engine//EN")
	writeICSLine("METHOD:REQUEST")
	writeICSLine("BEGIN:VEVENT")
	writeICSLine("UID:" + activityID + "@engage-crm")
	writeICSLine("DTSTAMP:" + time.Now().UTC().Format(icsTimeLayout))
	writeICSLine("DTSTART:" + startsAt.UTC().Format(icsTimeLayout))
	writeICSLine("DTEND:" + end.UTC().Format(icsTimeLayout))
	writeICSLine("SUMMARY:" + escapeICSText(summary))
	writeICSLine("END:VEVENT")
	writeICSLine("END:VCALENDAR")

	return buf.Bytes()
}

// escapeICSText escapes the characters RFC 5545 reserves in text values.
func escapeICSText(s string) string {
	r := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\n", "\\n",
	)
	return r.Replace(s)
}
