package grid

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
)

const xlsxSheetName = "Report"

// XLSXSheet renders a document as a spreadsheet workbook with a bold
// header, hyperlinked identity cells and 2-decimal number formatting.
type XLSXSheet struct {
	w io.Writer
}

// NewXLSXSheet renders into the given writer on Render.
func NewXLSXSheet(w io.Writer) *XLSXSheet {
	return &XLSXSheet{w: w}
}

// Render builds the workbook and writes it out.
func (s *XLSXSheet) Render(doc Document) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()
	index, err := f.NewSheet(xlsxSheetName)
	if err != nil {
		return fmt.Errorf("grid: new sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("grid: delete default sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("grid: header style: %w", err)
	}
	amount, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return fmt.Errorf("grid: amount style: %w", err)
	}

	if err := f.SetCellValue(xlsxSheetName, "A1", doc.Title); err != nil {
		return err
	}
	if err := f.SetCellValue(xlsxSheetName, "A2", doc.Subtitle); err != nil {
		return err
	}
	if err := f.SetCellStyle(xlsxSheetName, "A1", "A1", bold); err != nil {
		return err
	}

	const headerRow = 4
	if err := f.SetSheetRow(xlsxSheetName, fmt.Sprintf("A%d", headerRow), &doc.Header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(doc.Header), headerRow)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(xlsxSheetName, fmt.Sprintf("A%d", headerRow), last, bold); err != nil {
		return err
	}

	row := headerRow
	for _, cells := range doc.Rows {
		row++
		if err := s.writeRow(f, row, cells, amount); err != nil {
			return err
		}
	}

	row++
	if err := s.writeRow(f, row, doc.Totals, amount); err != nil {
		return err
	}
	start, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(len(doc.Header), row)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(xlsxSheetName, start, end, bold); err != nil {
		return err
	}

	if err := f.SetCellValue(xlsxSheetName, fmt.Sprintf("A%d", row+2), doc.Summary); err != nil {
		return err
	}
	if err := f.SetColWidth(xlsxSheetName, "A", "A", 28); err != nil {
		return err
	}

	if _, err := f.WriteTo(s.w); err != nil {
		return fmt.Errorf("grid: write workbook: %w", err)
	}
	return nil
}

func (s *XLSXSheet) writeRow(f *excelize.File, row int, cells []Cell, amountStyle int) error {
	values := make([]interface{}, len(cells))
	for i, cell := range cells {
		if v, err := strconv.ParseFloat(cell.Value, 64); err == nil && cell.Value != "" {
			values[i] = v
			continue
		}
		values[i] = cell.Value
	}
	anchor, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(xlsxSheetName, anchor, &values); err != nil {
		return err
	}
	for i, cell := range cells {
		name, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if cell.URL != "" {
			if err := f.SetCellHyperLink(xlsxSheetName, name, cell.URL, "External"); err != nil {
				return err
			}
		}
		if _, isNumber := values[i].(float64); isNumber {
			if err := f.SetCellStyle(xlsxSheetName, name, name, amountStyle); err != nil {
				return err
			}
		}
	}
	return nil
}
