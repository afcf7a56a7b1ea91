package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClass(t *testing.T) {
	tests := []struct {
		input   string
		want    DocumentClass
		wantErr bool
	}{
		{input: "tax-form", want: ClassTaxForm},
		{input: "W2", want: ClassTaxForm},
		{input: "paystub", want: ClassPayStatement},
		{input: " pay-statement ", want: ClassPayStatement},
		{input: "other", want: ClassMiscellaneous},
		{input: "miscellaneous", want: ClassMiscellaneous},
		{input: "passport", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseClass(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseClasses(t *testing.T) {
	t.Run("all expands in batch order", func(t *testing.T) {
		got, err := ParseClasses("all")
		require.NoError(t, err)
		assert.Equal(t, []DocumentClass{ClassTaxForm, ClassPayStatement, ClassMiscellaneous}, got)
	})

	t.Run("expanded slice is a copy", func(t *testing.T) {
		got, err := ParseClasses("")
		require.NoError(t, err)
		got[0] = "changed"
		assert.Equal(t, ClassTaxForm, AllClasses[0])
	})

	t.Run("single class", func(t *testing.T) {
		got, err := ParseClasses("paystub")
		require.NoError(t, err)
		assert.Equal(t, []DocumentClass{ClassPayStatement}, got)
	})
}

func TestFieldMapping(t *testing.T) {
	t.Run("preserves insertion order", func(t *testing.T) {
		m := NewFieldMapping().
			Set("zeta", "1").
			Set("alpha", 2).
			Set("mid", true)

		assert.Equal(t, []string{"zeta", "alpha", "mid"}, m.Keys())
		assert.Equal(t, 3, m.Len())
	})

	t.Run("overwrite keeps position", func(t *testing.T) {
		m := NewFieldMapping().Set("a", "1").Set("b", "2").Set("a", "3")

		assert.Equal(t, []string{"a", "b"}, m.Keys())
		assert.Equal(t, "3", m.String("a"))
	})

	t.Run("string of non-string is empty", func(t *testing.T) {
		m := NewFieldMapping().Set("n", 5)
		assert.Equal(t, "", m.String("n"))
		v, ok := m.Get("n")
		assert.True(t, ok)
		assert.Equal(t, 5, v)
	})

	t.Run("json keeps key order", func(t *testing.T) {
		m := NewFieldMapping().Set("total", "9.00").Set("subtotal", "8.00").Set("items", []map[string]any{{"qty": 1}})

		data, err := json.Marshal(m)
		require.NoError(t, err)
		assert.Equal(t, `{"total":"9.00","subtotal":"8.00","items":[{"qty":1}]}`, string(data))
	})

	t.Run("empty mapping encodes as object", func(t *testing.T) {
		data, err := json.Marshal(NewFieldMapping())
		require.NoError(t, err)
		assert.Equal(t, "{}", string(data))
	})
}

func TestTemplateHandle_IsZero(t *testing.T) {
	assert.True(t, TemplateHandle{}.IsZero())
	assert.False(t, TemplateHandle{Name: "a.html", Path: "tax-form/a.html"}.IsZero())
}

func TestBatchReport_Duration(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	r := &BatchReport{StartedAt: start}
	assert.Zero(t, r.Duration())

	r.FinishedAt = start.Add(3 * time.Second)
	assert.Equal(t, 3*time.Second, r.Duration())
}
