package export

import "errors"

var (
	ErrInvalidRatios = errors.New("split ratios must be non-negative and sum to 1.0")
	ErrNoReports     = errors.New("no batch reports to export")
)
