package export

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/garyjia/docsynth/internal/models"
	"github.com/xuri/excelize/v2"
)

// LabelsFileName is the workbook written at the output root
const LabelsFileName = "labels.xlsx"

var labelBaseColumns = []string{"index", "file_name", "template", "subtype", "split"}

// WriteLabels writes one sheet per class listing every generated document
// with its split assignment and field values. Returns the workbook path.
func WriteLabels(dir string, reports []*models.BatchReport, split Split) (string, error) {
	if len(reports) == 0 {
		return "", ErrNoReports
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create header style: %w", err)
	}

	position := 0
	first := true
	for _, report := range reports {
		if report == nil {
			continue
		}
		sheet := string(report.Class)
		if first {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return "", fmt.Errorf("failed to name sheet: %w", err)
			}
			first = false
		} else if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
			if _, err := f.NewSheet(sheet); err != nil {
				return "", fmt.Errorf("failed to create sheet %s: %w", sheet, err)
			}
		}

		columns := append([]string{}, labelBaseColumns...)
		columns = append(columns, fieldColumns(report.Documents)...)
		if err := writeRow(f, sheet, 1, toAny(columns)); err != nil {
			return "", err
		}
		last, _ := excelize.CoordinatesToCellName(len(columns), 1)
		if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return "", fmt.Errorf("failed to style header: %w", err)
		}
		if err := f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
			return "", fmt.Errorf("failed to freeze header: %w", err)
		}

		for i, doc := range report.Documents {
			row := []any{doc.Index, doc.FileName, doc.Template, string(doc.Subtype), split.Assign(position)}
			position++
			for _, key := range columns[len(labelBaseColumns):] {
				row = append(row, cellValue(doc.Fields, key))
			}
			if err := writeRow(f, sheet, i+2, row); err != nil {
				return "", err
			}
		}

		if err := f.SetColWidth(sheet, "B", "C", 32); err != nil {
			return "", fmt.Errorf("failed to set column width: %w", err)
		}
	}

	path := filepath.Join(dir, LabelsFileName)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save labels workbook: %w", err)
	}
	return path, nil
}

// fieldColumns returns the union of field keys in first-seen order
func fieldColumns(docs []models.DocumentRecord) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, doc := range docs {
		if doc.Fields == nil {
			continue
		}
		for _, k := range doc.Fields.Keys() {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	return keys
}

func cellValue(fields *models.FieldMapping, key string) any {
	if fields == nil {
		return ""
	}
	v, ok := fields.Get(key)
	if !ok || v == nil {
		return ""
	}
	switch v.(type) {
	case string, int, int64, float64, bool:
		return v
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(data)
	}
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d of %s: %w", row, sheet, err)
	}
	return nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
