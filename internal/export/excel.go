package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"sales-insights-go/internal/dataset"
)

const (
	recordsSheet = "Records"
	summarySheet = "Summary"
)

// WriteWorkbook renders one Dataset and its Overview into an xlsx workbook:
// a Records sheet holding the raw table and a Summary sheet with the score
// cards and per-folder means. The caller decides where the file goes.
func WriteWorkbook(ds *dataset.Dataset, ov dataset.Overview) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := writeRecords(f, ds); err != nil {
		return nil, err
	}
	if err := writeSummary(f, ds, ov); err != nil {
		return nil, err
	}

	// drop the default sheet excelize creates
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("delete default sheet: %w", err)
	}
	idx, err := f.GetSheetIndex(recordsSheet)
	if err != nil {
		return nil, fmt.Errorf("sheet index: %w", err)
	}
	f.SetActiveSheet(idx)
	return f, nil
}

func writeRecords(f *excelize.File, ds *dataset.Dataset) error {
	if _, err := f.NewSheet(recordsSheet); err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}
	for c, col := range ds.Columns {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetCellValue(recordsSheet, cell, col); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	for r, row := range ds.Rows {
		for c, col := range ds.Columns {
			v, ok := row[col]
			if !ok {
				continue // missing cell stays blank
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return fmt.Errorf("cell name: %w", err)
			}
			if err := f.SetCellValue(recordsSheet, cell, v); err != nil {
				return fmt.Errorf("write cell: %w", err)
			}
		}
	}
	return nil
}

func writeSummary(f *excelize.File, ds *dataset.Dataset, ov dataset.Overview) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}

	set := func(col, row int, v any) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetCellValue(summarySheet, cell, v); err != nil {
			return fmt.Errorf("write cell: %w", err)
		}
		return nil
	}

	if err := set(1, 1, "Total Records"); err != nil {
		return err
	}
	if err := set(2, 1, ov.TotalRecords); err != nil {
		return err
	}
	if err := set(1, 2, "Total Folders"); err != nil {
		return err
	}
	if err := set(2, 2, ov.TotalFolders); err != nil {
		return err
	}
	if err := set(1, 3, "Warnings"); err != nil {
		return err
	}
	if err := set(2, 3, ov.WarningCount); err != nil {
		return err
	}

	row := 5
	if err := set(1, row, "Metric"); err != nil {
		return err
	}
	if err := set(2, row, "Average"); err != nil {
		return err
	}
	if err := set(3, row, "Samples"); err != nil {
		return err
	}
	for _, card := range ov.Cards {
		row++
		if err := set(1, row, card.Name); err != nil {
			return err
		}
		if err := set(2, row, card.Display); err != nil {
			return err
		}
		if err := set(3, row, card.Samples); err != nil {
			return err
		}
	}

	row += 2
	if err := set(1, row, "Folder"); err != nil {
		return err
	}
	for c, col := range dataset.ScoreColumns {
		if err := set(c+2, row, col); err != nil {
			return err
		}
	}
	for _, folder := range ds.Folders() {
		row++
		if err := set(1, row, folder); err != nil {
			return err
		}
		fv, ok := dataset.FolderDetail(ds, folder)
		if !ok {
			continue
		}
		for c, col := range dataset.ScoreColumns {
			mean, ok := fv.ScoreMeans[col]
			if !ok {
				continue
			}
			if err := set(c+2, row, mean); err != nil {
				return err
			}
		}
	}
	return nil
}
