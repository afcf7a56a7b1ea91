package fields

import (
	"fmt"

	"github.com/garyjia/docsynth/internal/models"
)

type miscRoutine func(ctx *Context) (*models.FieldMapping, error)

var miscRoutines = map[models.DocumentSubtype]miscRoutine{
	models.SubtypeReceipt:        receipt,
	models.SubtypeInvoice:        invoice,
	models.SubtypeLetter:         letter,
	models.SubtypeBookPage:       bookPage,
	models.SubtypeDriversLicense: driversLicense,
	models.SubtypeMedicalNote:    medicalNote,
	models.SubtypeBankStatement:  bankStatement,
	models.SubtypeReportCard:     reportCard,
	models.SubtypeGeneric:        genericDocument,
}

type miscRules struct{}

func (miscRules) Class() models.DocumentClass {
	return models.ClassMiscellaneous
}

// Generate dispatches on the subtype the registry tagged the template with
func (m miscRules) Generate(ctx *Context, handle models.TemplateHandle) (*models.FieldMapping, error) {
	if err := checkHandle(m.Class(), handle); err != nil {
		return nil, err
	}
	return generateSubtype(ctx, handle.Subtype)
}

// generateSubtype runs the routine of one miscellaneous subtype; an empty subtype is generic
func generateSubtype(ctx *Context, subtype models.DocumentSubtype) (*models.FieldMapping, error) {
	if subtype == models.SubtypeNone {
		subtype = models.SubtypeGeneric
	}
	routine, ok := miscRoutines[subtype]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSubtype, subtype)
	}
	fm, err := routine(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s: %w", subtype, err)
	}
	return fm, nil
}

func newMiscMapping(subtype models.DocumentSubtype) *models.FieldMapping {
	return models.NewFieldMapping().Set("document_type", string(subtype))
}
