package timesheet

import (
	"bytes"
	"fmt"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// sheetGrid is one worksheet flattened to string cells, the common shape
// the layout detectors work on regardless of the container format.
type sheetGrid struct {
	name string
	rows [][]string
}

// readSheets loads every worksheet of an uploaded workbook, picking the
// reader by file extension: excelize for OOXML, a BIFF reader for legacy
// .xls, and the zip container reader for .ods.
func readSheets(content []byte, ext string) ([]sheetGrid, error) {
	switch ext {
	case "xls":
		return readLegacySheets(content)
	case "ods":
		return readODSSheets(content)
	default:
		return readOOXMLSheets(content)
	}
}

func readOOXMLSheets(content []byte) ([]sheetGrid, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("read xlsx workbook: %v", err)
	}
	defer func() { _ = f.Close() }()

	var sheets []sheetGrid
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			continue
		}
		sheets = append(sheets, sheetGrid{name: name, rows: rows})
	}
	return sheets, nil
}

func readLegacySheets(content []byte) ([]sheetGrid, error) {
	wb, err := xls.OpenReader(bytes.NewReader(content), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("read xls workbook: %v", err)
	}

	var sheets []sheetGrid
	for i := 0; i < wb.NumSheets(); i++ {
		sheet := wb.GetSheet(i)
		if sheet == nil {
			continue
		}
		rows := make([][]string, 0, int(sheet.MaxRow)+1)
		for r := 0; r <= int(sheet.MaxRow); r++ {
			row := sheet.Row(r)
			if row == nil {
				rows = append(rows, nil)
				continue
			}
			cells := make([]string, row.LastCol())
			for c := 0; c < row.LastCol(); c++ {
				cells[c] = row.Col(c)
			}
			rows = append(rows, cells)
		}
		sheets = append(sheets, sheetGrid{name: sheet.Name, rows: rows})
	}
	return sheets, nil
}
