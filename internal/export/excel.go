package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"studyplan/internal/availability"
)

// Excel renders free slots as an .xlsx workbook with one "Free Slots"
// sheet and a bold header row.
func Excel(slots []availability.FreeSlot) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Free Slots"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Date", "Weekday", "Start", "End", "Hours"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		startCell, _ := excelize.CoordinatesToCellName(1, 1)
		endCell, _ := excelize.CoordinatesToCellName(len(headers), 1)
		_ = f.SetCellStyle(sheet, startCell, endCell, style)
	}

	for i, slot := range slots {
		row := i + 2
		values := []interface{}{
			slot.Date.Format("2006-01-02"),
			slot.Date.Weekday().String(),
			slot.Window.Start.String(),
			slot.Window.End.String(),
			slot.DurationHours,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("write row %d: %w", row, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
