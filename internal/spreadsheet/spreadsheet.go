// Package spreadsheet decodes uploaded member workbooks and builds the
// blank import template. It knows nothing about validation; rows come out
// as-is and the import pipeline judges them.
package spreadsheet

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/leoclub/points-tracker-api/internal/domain"
)

const templateSheetName = "Members"

var templateColumns = []struct {
	header string
	width  float64
}{
	{"reg_no", 15},
	{"full_name", 25},
	{"name_with_initials", 20},
	{"batch", 10},
	{"faculty", 40},
	{"whatsapp", 15},
	{"my_lci_num", 15},
}

// ParseMemberRows reads the first sheet of the workbook. The first row is
// treated as the header; every following row becomes an ImportRow keyed by
// the header's column names. Unknown columns are ignored.
func ParseMemberRows(r io.Reader) ([]domain.ImportRow, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("excelize.OpenReader -> %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("file.GetRows -> %w", err)
	}
	if len(rows) == 0 {
		return []domain.ImportRow{}, nil
	}

	header := rows[0]
	out := make([]domain.ImportRow, 0, len(rows)-1)

	for _, cells := range rows[1:] {
		var row domain.ImportRow
		for col, name := range header {
			value := ""
			if col < len(cells) {
				value = cells[col]
			}

			switch strings.TrimSpace(strings.ToLower(name)) {
			case "reg_no":
				row.RegNo = value
			case "full_name":
				row.FullName = value
			case "name_with_initials":
				row.NameWithInitials = value
			case "batch":
				row.Batch = value
			case "faculty":
				row.Faculty = value
			case "whatsapp":
				row.WhatsApp = value
			case "my_lci_num":
				row.MyLCINum = value
			}
		}
		out = append(out, row)
	}

	return out, nil
}

// BuildTemplate produces the blank import workbook with the header row and
// two example members.
func BuildTemplate() (*excelize.File, error) {
	file := excelize.NewFile()

	index, err := file.NewSheet(templateSheetName)
	if err != nil {
		return nil, fmt.Errorf("file.NewSheet -> %w", err)
	}
	file.SetActiveSheet(index)
	if err = file.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("file.DeleteSheet -> %w", err)
	}

	for i, col := range templateColumns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("excelize.ColumnNumberToName -> %w", err)
		}

		cell := name + "1"
		if err = file.SetCellValue(templateSheetName, cell, col.header); err != nil {
			return nil, fmt.Errorf("file.SetCellValue -> %w", err)
		}
		if err = file.SetColWidth(templateSheetName, name, name, col.width); err != nil {
			return nil, fmt.Errorf("file.SetColWidth -> %w", err)
		}
	}

	examples := [][]interface{}{
		{"S/2021/001", "John Doe Smith", "J.D. Smith", "2021", "Faculty of Computing", "+94771234567", "12345678"},
		{"S/2021/002", "Jane Mary Johnson", "J.M. Johnson", "2021", "Faculty of Applied Sciences", "+94777654321", ""},
	}
	for rowIdx, example := range examples {
		cell, err := excelize.CoordinatesToCellName(1, rowIdx+2)
		if err != nil {
			return nil, fmt.Errorf("excelize.CoordinatesToCellName -> %w", err)
		}
		if err = file.SetSheetRow(templateSheetName, cell, &example); err != nil {
			return nil, fmt.Errorf("file.SetSheetRow -> %w", err)
		}
	}

	return file, nil
}
