package export

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/MikeSquared-Agency/InteliHire/internal/scoring"
)

const (
	CriteriaSheet    = "Criteria"
	SubCriteriaSheet = "Sub-Criteria"
)

// ExportCriteria writes c to an Excel workbook at path and returns the path
// written. A .xlsx extension is added when missing.
func ExportCriteria(c scoring.Criteria, path string) (string, error) {
	if !strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		path += ".xlsx"
	}
	path = filepath.Clean(path)

	f, err := build(c)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}
	return path, nil
}

// WriteCriteria streams the workbook for c to w.
func WriteCriteria(c scoring.Criteria, w io.Writer) error {
	f, err := build(c)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func build(c scoring.Criteria) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", CriteriaSheet); err != nil {
		f.Close()
		return nil, err
	}
	if _, err := f.NewSheet(SubCriteriaSheet); err != nil {
		f.Close()
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		f.Close()
		return nil, err
	}

	if err := criteriaSheet(f, c, headerStyle); err != nil {
		f.Close()
		return nil, fmt.Errorf("criteria sheet: %w", err)
	}
	if err := subCriteriaSheet(f, c, headerStyle); err != nil {
		f.Close()
		return nil, fmt.Errorf("sub-criteria sheet: %w", err)
	}
	return f, nil
}

func criteriaSheet(f *excelize.File, c scoring.Criteria, headerStyle int) error {
	sheet := CriteriaSheet
	headers := []interface{}{"Key", "Criterion", "Enabled", "Weight (%)", "Max Points"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "E1", headerStyle); err != nil {
		return err
	}
	f.SetColWidth(sheet, "A", "A", 22)
	f.SetColWidth(sheet, "B", "B", 30)
	f.SetColWidth(sheet, "C", "E", 12)

	row := 2
	for _, cr := range c.Ordered() {
		values := []interface{}{string(cr.Key), cr.Label, enabledText(cr.Enabled), cr.Weight, cr.MaxPoints}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &values); err != nil {
			return err
		}
		row++
	}

	// Totals cover enabled criteria only.
	row++
	totals := []interface{}{"Total", "", "", scoring.EnabledWeightSum(c), scoring.MaxScore(c)}
	if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &totals); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("E%d", row), bold)
}

func subCriteriaSheet(f *excelize.File, c scoring.Criteria, headerStyle int) error {
	sheet := SubCriteriaSheet
	headers := []interface{}{"Criterion", "Sub-Criterion", "Description", "Points"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "D1", headerStyle); err != nil {
		return err
	}
	f.SetColWidth(sheet, "A", "B", 30)
	f.SetColWidth(sheet, "C", "C", 50)

	row := 2
	for _, cr := range c.Ordered() {
		for _, sc := range cr.SubCriteria {
			values := []interface{}{cr.Label, sc.Name, sc.Description, sc.Points}
			if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &values); err != nil {
				return err
			}
			row++
		}
	}
	return nil
}

func enabledText(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
