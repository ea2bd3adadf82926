package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"studyplan/internal/availability"
)

const icalTimestampLayout = "20060102T150405"

// ICal renders free slots as an iCalendar document with one VEVENT per
// slot. Times are emitted as floating local times, matching how the
// slots are meant to be read (wall-clock study windows, no timezone
// arithmetic).
func ICal(slots []availability.FreeSlot, calendarName string) []byte {
	if calendarName == "" {
		calendarName = "Study Availability"
	}

	var b strings.Builder
	writeLine := func(s string) {
		b.WriteString(s)
		b.WriteString("\r\n")
	}

	writeLine("BEGIN:VCALENDAR")
	writeLine("VERSION:2.0")
	writeLine("PRODID:-//studyplan//availability//EN")
	writeLine("CALSCALE:GREGORIAN")
	writeLine("X-WR-CALNAME:" + escapeText(calendarName))

	stamp := time.Now().UTC().Format(icalTimestampLayout) + "Z"
	for _, slot := range slots {
		start := combine(slot.Date, slot.Window.Start)
		end := combine(slot.Date, slot.Window.End)

		writeLine("BEGIN:VEVENT")
		writeLine("UID:" + uuid.NewString() + "@studyplan")
		writeLine("DTSTAMP:" + stamp)
		writeLine("DTSTART:" + start.Format(icalTimestampLayout))
		writeLine("DTEND:" + end.Format(icalTimestampLayout))
		writeLine("SUMMARY:" + escapeText(fmt.Sprintf("Free study slot (%.1fh)", slot.DurationHours)))
		writeLine("END:VEVENT")
	}

	writeLine("END:VCALENDAR")
	return []byte(b.String())
}

func combine(date time.Time, t availability.TimeOfDay) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location())
}

// escapeText escapes the characters RFC 5545 requires in TEXT values.
func escapeText(s string) string {
	r := strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`, "\n", `\n`)
	return r.Replace(s)
}
