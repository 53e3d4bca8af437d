package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Leads"

// ExcelExporter writes .xlsx workbooks with excelize.
type ExcelExporter struct{}

func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

func (e *ExcelExporter) Export(table *Table, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	row := 1
	if table.Title != "" {
		titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
		if err != nil {
			return fmt.Errorf("failed to create title style: %w", err)
		}
		cell := cellName(1, row)
		f.SetCellValue(sheetName, cell, table.Title)
		f.SetCellStyle(sheetName, cell, cell, titleStyle)
		row++
		if table.Subtitle != "" {
			f.SetCellValue(sheetName, cellName(1, row), table.Subtitle)
			row++
		}
		row++
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF", Size: table.Style.FontSize + 1},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{stripHash(table.Style.HeaderBgColor)}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	stripeStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{stripHash(table.Style.StripeColor)}},
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return fmt.Errorf("failed to create row style: %w", err)
	}

	headerRow := row
	for col, header := range table.Headers {
		cell := cellName(col+1, row)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
		if width, ok := table.ColumnWidths[col]; ok {
			colName, _ := excelize.ColumnNumberToName(col + 1)
			f.SetColWidth(sheetName, colName, colName, width)
		}
	}
	row++

	for i, values := range table.Rows {
		for col, value := range values {
			cell := cellName(col+1, row)
			f.SetCellValue(sheetName, cell, value)
			if i%2 == 1 {
				f.SetCellStyle(sheetName, cell, cell, stripeStyle)
			}
		}
		row++
	}

	if len(table.Headers) > 0 {
		f.SetPanes(sheetName, &excelize.Panes{
			Freeze:      true,
			YSplit:      headerRow,
			TopLeftCell: cellName(1, headerRow+1),
			ActivePane:  "bottomLeft",
		})
		lastCol, _ := excelize.ColumnNumberToName(len(table.Headers))
		f.AutoFilter(sheetName, fmt.Sprintf("A%d:%s%d", headerRow, lastCol, headerRow+len(table.Rows)), nil)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func (e *ExcelExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (e *ExcelExporter) Extension() string {
	return ".xlsx"
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func stripHash(color string) string {
	if len(color) > 0 && color[0] == '#' {
		return color[1:]
	}
	return color
}
