package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"studyplan/internal/availability"
)

// CSV renders free slots as a CSV table with a header row.
func CSV(slots []availability.FreeSlot) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"date", "weekday", "start", "end", "hours"}); err != nil {
		return nil, err
	}
	for _, slot := range slots {
		record := []string{
			slot.Date.Format("2006-01-02"),
			slot.Date.Weekday().String(),
			slot.Window.Start.String(),
			slot.Window.End.String(),
			fmt.Sprintf("%.2f", slot.DurationHours),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
