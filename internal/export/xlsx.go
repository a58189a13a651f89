package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/studykit/studykit/internal/questionset"
)

// SheetName is the worksheet holding exported questions.
const SheetName = "Questions"

// XLSXHeader returns the header row of the spreadsheet layout.
func XLSXHeader(includeAnswers bool) []string {
	h := []string{"#", "Question", "Type", "Options"}
	if includeAnswers {
		h = append(h, "Answer")
	}
	return h
}

func renderXLSX(w io.Writer, title string, rows []questionset.ExportRow, includeAnswers bool) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetDocProps(&excelize.DocProperties{Title: title}); err != nil {
		return fmt.Errorf("set properties: %w", err)
	}

	header := XLSXHeader(includeAnswers)
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{r.Number, r.Question, string(r.Kind), strings.Join(r.Options, "\n")}
		if includeAnswers {
			row = append(row, r.Answer)
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", r.Number, err)
		}
	}

	if err := f.SetColWidth(SheetName, "B", "B", 60); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetName, "D", "D", 40); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
