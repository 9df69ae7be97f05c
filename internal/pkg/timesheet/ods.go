package timesheet

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

// OpenDocument spreadsheets are a zip container holding content.xml; the
// tables are read from it directly. Repeat counts compress runs of
// identical cells, so expansion is capped well past the widest layout the
// detectors look at.
const odsMaxRepeat = 64

type odsContent struct {
	Tables []odsTable `xml:"body>spreadsheet>table"`
}

type odsTable struct {
	Name string   `xml:"name,attr"`
	Rows []odsRow `xml:"table-row"`
}

type odsRow struct {
	Repeated int       `xml:"number-rows-repeated,attr"`
	Cells    []odsCell `xml:"table-cell"`
}

type odsCell struct {
	Repeated int      `xml:"number-columns-repeated,attr"`
	Value    string   `xml:"value,attr"`
	Text     []string `xml:"p"`
}

// text prefers the typed office:value attribute, falling back to the
// cell's paragraph content for plain strings.
func (c odsCell) text() string {
	if v := strings.TrimSpace(c.Value); v != "" {
		return v
	}
	return strings.TrimSpace(strings.Join(c.Text, " "))
}

func repeatCount(n int) int {
	if n < 1 {
		return 1
	}
	if n > odsMaxRepeat {
		return odsMaxRepeat
	}
	return n
}

func readODSSheets(content []byte) ([]sheetGrid, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("read ods container: %v", err)
	}

	var doc odsContent
	parsed := false
	for _, zf := range zr.File {
		if zf.Name != "content.xml" {
			continue
		}
		rc, err := zf.Open()
		if err != nil {
			return nil, fmt.Errorf("read ods content: %v", err)
		}
		err = xml.NewDecoder(rc).Decode(&doc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("parse ods content: %v", err)
		}
		parsed = true
		break
	}
	if !parsed {
		return nil, fmt.Errorf("read ods container: content.xml missing")
	}

	sheets := make([]sheetGrid, 0, len(doc.Tables))
	for _, table := range doc.Tables {
		var rows [][]string
		for _, row := range table.Rows {
			var cells []string
			for _, cell := range row.Cells {
				text := cell.text()
				for n := repeatCount(cell.Repeated); n > 0; n-- {
					cells = append(cells, text)
				}
			}
			for n := repeatCount(row.Repeated); n > 0; n-- {
				rows = append(rows, cells)
			}
		}
		sheets = append(sheets, sheetGrid{name: table.Name, rows: rows})
	}
	return sheets, nil
}
