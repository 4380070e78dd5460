// Package xlsx renders session history as an Excel workbook.
package xlsx

import (
	"fmt"
	"io"
	"math"
	"time"

	"healthmetrics/internal/domain"

	"github.com/xuri/excelize/v2"
)

// Sheet is the name of the history worksheet.
const Sheet = "History"

// ContentType is the MIME type of the generated workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Headers are the column titles, in column order.
var Headers = []string{
	"Date", "Weight (kg)", "Height (cm)", "Age", "Sex", "Activity",
	"BMI", "Category", "BMR (kcal)", "Calories (kcal)", "Water (mL)",
	"Protein (g)", "Fats (g)", "Carbs (g)",
}

var colWidths = []float64{18, 12, 12, 6, 8, 12, 8, 20, 12, 15, 12, 12, 10, 10}

// Write renders entries, oldest first, into a single-sheet workbook and
// writes it to w. Timestamps are shown in loc.
func Write(w io.Writer, entries []domain.HistoryEntry, loc *time.Location) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", Sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	for i, h := range Headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(Sheet, cell, h); err != nil {
			return err
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(Sheet, col, col, colWidths[i]); err != nil {
			return err
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(Headers), 1)
	if err := f.SetCellStyle(Sheet, "A1", last, header); err != nil {
		return fmt.Errorf("apply header style: %w", err)
	}

	for i, e := range entries {
		r := e.Report
		row := []any{
			e.CreatedAt.In(loc).Format("2006-01-02 15:04"),
			e.Measurement.WeightKg,
			e.Measurement.HeightCm,
			e.Measurement.AgeYears,
			string(e.Measurement.Sex),
			e.Activity.Name(),
			round1(r.BMI),
			string(r.BMICategory),
			round1(r.BMR),
			r.DailyCalories,
			r.WaterIntakeMl,
			r.Macros.ProteinG,
			r.Macros.FatsG,
			r.Macros.CarbsG,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(Sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(Sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
