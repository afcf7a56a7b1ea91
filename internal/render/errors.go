package render

import "errors"

var (
	ErrTemplateLoad    = errors.New("failed to load template")
	ErrTemplateExecute = errors.New("failed to execute template")
	ErrRasterize       = errors.New("failed to rasterize document")
	ErrEmptyPage       = errors.New("document has no pages")
)
