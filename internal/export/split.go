package export

import (
	"fmt"
	"math"
)

// Split set names
const (
	SetTrain      = "train"
	SetValidation = "validation"
	SetTest       = "test"
)

// Ratios are the fractions of a dataset assigned to each set
type Ratios struct {
	Train      float64 `mapstructure:"train" json:"train"`
	Validation float64 `mapstructure:"validation" json:"validation"`
	Test       float64 `mapstructure:"test" json:"test"`
}

// DefaultRatios returns the 80/10/10 split
func DefaultRatios() Ratios {
	return Ratios{Train: 0.8, Validation: 0.1, Test: 0.1}
}

// Validate checks the ratios sum to one within 0.001
func (r Ratios) Validate() error {
	if r.Train < 0 || r.Validation < 0 || r.Test < 0 {
		return fmt.Errorf("%w: %+v", ErrInvalidRatios, r)
	}
	if math.Abs(r.Train+r.Validation+r.Test-1.0) >= 0.001 {
		return fmt.Errorf("%w: got %.3f", ErrInvalidRatios, r.Train+r.Validation+r.Test)
	}
	return nil
}

// Split holds the number of documents in each set
type Split struct {
	Total      int `json:"total"`
	Train      int `json:"train"`
	Validation int `json:"validation"`
	Test       int `json:"test"`
}

// NewSplit truncates train and validation counts; the remainder goes to test
func NewSplit(total int, r Ratios) (Split, error) {
	if err := r.Validate(); err != nil {
		return Split{}, err
	}
	if total < 0 {
		total = 0
	}
	train := int(float64(total) * r.Train)
	val := int(float64(total) * r.Validation)
	return Split{
		Total:      total,
		Train:      train,
		Validation: val,
		Test:       total - train - val,
	}, nil
}

// Assign returns the set of the document at 0-based position i
func (s Split) Assign(i int) string {
	switch {
	case i < s.Train:
		return SetTrain
	case i < s.Train+s.Validation:
		return SetValidation
	default:
		return SetTest
	}
}
