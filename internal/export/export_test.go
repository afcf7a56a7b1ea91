package export

import (
	"bytes"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/garyjia/docsynth/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func sampleReports() []*models.BatchReport {
	started := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	tax := &models.BatchReport{
		BatchID:    "b-tax",
		Class:      models.ClassTaxForm,
		Requested:  3,
		Succeeded:  2,
		Failed:     1,
		Failures:   []models.DocumentFailure{{Index: 2, Stage: models.StageRender, Error: "boom"}},
		StartedAt:  started,
		FinishedAt: started.Add(3 * time.Second),
	}
	for _, i := range []int{1, 3} {
		tax.Documents = append(tax.Documents, models.DocumentRecord{
			Index:    i,
			FileName: fmt.Sprintf("synthetic_tax-form_%04d.jpg", i),
			Template: "w2_classic.html",
			Fields:   models.NewFieldMapping().Set("tax_year", 2023).Set("wages", "52,000.00"),
		})
	}

	misc := &models.BatchReport{
		BatchID:    "b-misc",
		Class:      models.ClassMiscellaneous,
		Requested:  1,
		Succeeded:  1,
		StartedAt:  started,
		FinishedAt: started.Add(time.Second),
		Documents: []models.DocumentRecord{{
			Index:    1,
			FileName: "synthetic_miscellaneous_0001.jpg",
			Template: "receipt_retail.html",
			Subtype:  models.SubtypeReceipt,
			Fields: models.NewFieldMapping().
				Set("document_type", "receipt").
				Set("items", []map[string]any{{"name": "Coffee", "quantity": 1}}).
				Set("has_discount", false),
		}},
	}
	return []*models.BatchReport{tax, misc}
}

func TestNewSplit(t *testing.T) {
	tests := []struct {
		total                int
		train, val, wantTest int
	}{
		{total: 100, train: 80, val: 10, wantTest: 10},
		{total: 7, train: 5, val: 0, wantTest: 2},
		{total: 0, train: 0, val: 0, wantTest: 0},
		{total: 15, train: 12, val: 1, wantTest: 2},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("total=%d", tt.total), func(t *testing.T) {
			s, err := NewSplit(tt.total, DefaultRatios())
			require.NoError(t, err)
			assert.Equal(t, tt.train, s.Train)
			assert.Equal(t, tt.val, s.Validation)
			assert.Equal(t, tt.wantTest, s.Test)
			assert.Equal(t, tt.total, s.Train+s.Validation+s.Test)
		})
	}

	t.Run("rejects ratios not summing to one", func(t *testing.T) {
		_, err := NewSplit(10, Ratios{Train: 0.7, Validation: 0.1, Test: 0.1})
		assert.ErrorIs(t, err, ErrInvalidRatios)
	})
}

func TestSplit_Assign(t *testing.T) {
	s := Split{Total: 10, Train: 8, Validation: 1, Test: 1}

	assert.Equal(t, SetTrain, s.Assign(0))
	assert.Equal(t, SetTrain, s.Assign(7))
	assert.Equal(t, SetValidation, s.Assign(8))
	assert.Equal(t, SetTest, s.Assign(9))
}

func TestBuildMetadata(t *testing.T) {
	md, err := BuildMetadata(sampleReports(), "/out", 4*time.Second, 7, DefaultRatios())
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"tax-form": 2, "miscellaneous": 1}, md.Counts)
	assert.Equal(t, 1, md.Failed["tax-form"])
	assert.Equal(t, 3, md.Total())
	assert.Equal(t, Split{Total: 3, Train: 2, Validation: 0, Test: 1}, md.SplitInfo)
	assert.InDelta(t, 4.0, md.GenerationTime, 1e-9)
	require.Len(t, md.Batches, 2)
	assert.InDelta(t, 3.0, md.Batches[0].Seconds, 1e-9)
}

func TestSaveAndLoadMetadata(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file yields empty metadata", func(t *testing.T) {
		md, err := LoadMetadata(dir)
		require.NoError(t, err)
		assert.Equal(t, 0, md.Total())
	})

	t.Run("saved metadata loads back", func(t *testing.T) {
		md, err := BuildMetadata(sampleReports(), dir, time.Second, 0, DefaultRatios())
		require.NoError(t, err)

		path, err := SaveMetadata(dir, md)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, MetadataFileName), path)

		loaded, err := LoadMetadata(dir)
		require.NoError(t, err)
		assert.Equal(t, md.Counts, loaded.Counts)
		assert.Equal(t, md.SplitInfo, loaded.SplitInfo)
	})
}

func TestWriteLabels(t *testing.T) {
	dir := t.TempDir()
	split := Split{Total: 3, Train: 2, Validation: 0, Test: 1}

	path, err := WriteLabels(dir, sampleReports(), split)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"tax-form", "miscellaneous"}, f.GetSheetList())

	rows, err := f.GetRows("tax-form")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"index", "file_name", "template", "subtype", "split", "tax_year", "wages"}, rows[0])
	assert.Equal(t, "synthetic_tax-form_0003.jpg", rows[2][1])
	assert.Equal(t, SetTrain, rows[2][4])
	assert.Equal(t, "52,000.00", rows[2][6])

	misc, err := f.GetRows("miscellaneous")
	require.NoError(t, err)
	require.Len(t, misc, 2)
	assert.Equal(t, "receipt", misc[1][3])
	assert.Equal(t, SetTest, misc[1][4])
	assert.JSONEq(t, `[{"name":"Coffee","quantity":1}]`, misc[1][6])

	t.Run("no reports", func(t *testing.T) {
		_, err := WriteLabels(dir, nil, split)
		assert.ErrorIs(t, err, ErrNoReports)
	})
}

func TestExporter_Export(t *testing.T) {
	dir := t.TempDir()
	exp, err := NewExporter(DefaultRatios(), true, zap.NewNop())
	require.NoError(t, err)

	md, err := exp.Export(dir, sampleReports(), 2*time.Second, 11)
	require.NoError(t, err)

	assert.Equal(t, uint64(11), md.Seed)
	assert.FileExists(t, filepath.Join(dir, MetadataFileName))
	assert.FileExists(t, filepath.Join(dir, LabelsFileName))

	t.Run("invalid ratios", func(t *testing.T) {
		_, err := NewExporter(Ratios{Train: 1, Validation: 1}, true, zap.NewNop())
		assert.ErrorIs(t, err, ErrInvalidRatios)
	})
}

func TestWriteSummary(t *testing.T) {
	md, err := BuildMetadata(sampleReports(), "/out", time.Second, 0, DefaultRatios())
	require.NoError(t, err)

	var buf bytes.Buffer
	WriteSummary(&buf, md)
	out := buf.String()

	assert.Contains(t, out, "DOCUMENT GENERATION SUMMARY")
	assert.Contains(t, out, "TAX-FORM: 2 documents (1 failed)")
	assert.Contains(t, out, "TOTAL: 3 documents")
	assert.Contains(t, out, "Output Directory: /out")
	assert.Contains(t, out, "Training: 2 (66.7%)")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("TAX-FORM")), bytes.Index(buf.Bytes(), []byte("MISCELLANEOUS")))
}
