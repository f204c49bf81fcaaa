package export

import (
	"fmt"
	"io"

	"github.com/Eursukkul/shareit/internal/models"
	"github.com/xuri/excelize/v2"
)

const SheetName = "Bookings"

var header = []string{"ID", "Item", "Booker", "Start", "End", "Status"}

var statusFill = map[models.BookingStatus]string{
	models.StatusApproved: "#E2EFDA",
	models.StatusWaiting:  "#FFEB9C",
	models.StatusRejected: "#FFC7CE",
}

// WriteBookings renders bookings as an XLSX workbook into w. Bookings should
// have Item and Booker loaded; missing associations fall back to ids.
func WriteBookings(w io.Writer, bookings []models.Booking) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	for i, title := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(SheetName, cell, title)
		_ = f.SetCellStyle(SheetName, cell, cell, headerStyle)
	}

	styles := make(map[models.BookingStatus]int, len(statusFill))
	for status, color := range statusFill {
		id, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		})
		if err != nil {
			return fmt.Errorf("create status style: %w", err)
		}
		styles[status] = id
	}

	for i, b := range bookings {
		row := i + 2
		itemName := fmt.Sprintf("#%d", b.ItemID)
		if b.Item != nil {
			itemName = b.Item.Name
		}
		booker := fmt.Sprintf("#%d", b.BookerID)
		if b.Booker != nil {
			booker = b.Booker.Name
		}

		values := []any{b.ID, itemName, booker, b.StartAt.UTC().Format("2006-01-02 15:04"), b.EndAt.UTC().Format("2006-01-02 15:04"), string(b.Status)}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(SheetName, cell, v)
		}
		if style, ok := styles[b.Status]; ok {
			cell, _ := excelize.CoordinatesToCellName(len(values), row)
			_ = f.SetCellStyle(SheetName, cell, cell, style)
		}
	}

	_ = f.SetColWidth(SheetName, "A", "A", 8)
	_ = f.SetColWidth(SheetName, "B", "C", 25)
	_ = f.SetColWidth(SheetName, "D", "F", 18)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
