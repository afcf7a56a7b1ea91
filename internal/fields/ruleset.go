// Package fields produces internally consistent fake field values for each document class.
package fields

import (
	"fmt"
	"time"

	"github.com/garyjia/docsynth/internal/corpus"
	"github.com/garyjia/docsynth/internal/models"
	"github.com/garyjia/docsynth/internal/randsrc"
)

// Display formats shared by every routine
const (
	DateLayout     = "01/02/2006"
	DateTimeLayout = "01/02/2006 03:04 PM"
)

// Context carries the injected randomness, clock and text corpus.
// Routines never read the wall clock or a global random source.
type Context struct {
	Rand   *randsrc.Source
	Now    time.Time
	Corpus *corpus.Corpus
}

// NewContext builds a context, filling a nil corpus and a zero clock with defaults
func NewContext(src *randsrc.Source, now time.Time, c *corpus.Corpus) *Context {
	if now.IsZero() {
		now = time.Now()
	}
	if c == nil {
		c = corpus.Default()
	}
	return &Context{Rand: src, Now: now, Corpus: c}
}

// Ruleset generates the field mapping for one document class
type Ruleset interface {
	Class() models.DocumentClass
	Generate(ctx *Context, handle models.TemplateHandle) (*models.FieldMapping, error)
}

// ForClass selects the ruleset of a document class
func ForClass(class models.DocumentClass) (Ruleset, error) {
	switch class {
	case models.ClassTaxForm:
		return taxFormRules{}, nil
	case models.ClassPayStatement:
		return payStatementRules{}, nil
	case models.ClassMiscellaneous:
		return miscRules{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownClass, class)
	}
}

func checkHandle(class models.DocumentClass, handle models.TemplateHandle) error {
	if handle.IsZero() {
		return ErrTemplateResourceMissing
	}
	if handle.Class != "" && handle.Class != class {
		return fmt.Errorf("%w: %s template %s for %s", ErrClassMismatch, handle.Class, handle.Name, class)
	}
	return nil
}
