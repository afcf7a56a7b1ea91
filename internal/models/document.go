package models

import (
	"fmt"
	"strings"
)

// DocumentClass is the top-level category of a synthetic document
type DocumentClass string

// Document class constants
const (
	ClassTaxForm       DocumentClass = "tax-form"
	ClassPayStatement  DocumentClass = "pay-statement"
	ClassMiscellaneous DocumentClass = "miscellaneous"
)

// ClassAll selects every document class on the batch surface
const ClassAll = "all"

// AllClasses lists the document classes in batch order
var AllClasses = []DocumentClass{ClassTaxForm, ClassPayStatement, ClassMiscellaneous}

// ParseClass resolves a class name, accepting the legacy short names
func ParseClass(name string) (DocumentClass, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case string(ClassTaxForm), "w2", "w-2", "tax":
		return ClassTaxForm, nil
	case string(ClassPayStatement), "paystub", "pay-stub":
		return ClassPayStatement, nil
	case string(ClassMiscellaneous), "other", "misc":
		return ClassMiscellaneous, nil
	default:
		return "", fmt.Errorf("unknown document class: %q", name)
	}
}

// ParseClasses resolves a class selector, expanding "all"
func ParseClasses(selector string) ([]DocumentClass, error) {
	if strings.EqualFold(strings.TrimSpace(selector), ClassAll) || strings.TrimSpace(selector) == "" {
		out := make([]DocumentClass, len(AllClasses))
		copy(out, AllClasses)
		return out, nil
	}
	class, err := ParseClass(selector)
	if err != nil {
		return nil, err
	}
	return []DocumentClass{class}, nil
}

// DocumentSubtype is the finer classification of a miscellaneous template
type DocumentSubtype string

// Document subtype constants
const (
	SubtypeNone           DocumentSubtype = ""
	SubtypeReceipt        DocumentSubtype = "receipt"
	SubtypeInvoice        DocumentSubtype = "invoice"
	SubtypeLetter         DocumentSubtype = "letter"
	SubtypeBookPage       DocumentSubtype = "book-page"
	SubtypeDriversLicense DocumentSubtype = "drivers-license"
	SubtypeMedicalNote    DocumentSubtype = "medical-note"
	SubtypeBankStatement  DocumentSubtype = "bank-statement"
	SubtypeReportCard     DocumentSubtype = "report-card"
	SubtypeGeneric        DocumentSubtype = "generic"
)

// TemplateHandle identifies one discovered template resource
type TemplateHandle struct {
	Index   int             `json:"index"`
	Name    string          `json:"name"`
	Path    string          `json:"path"`
	Class   DocumentClass   `json:"class"`
	Subtype DocumentSubtype `json:"subtype,omitempty"`
}

// IsZero reports whether the handle was never dispatched by a registry
func (h TemplateHandle) IsZero() bool {
	return h.Name == "" && h.Path == ""
}

// GenerationRequest asks for Count documents of one class under OutputRoot
type GenerationRequest struct {
	Class      DocumentClass `json:"class"`
	Count      int           `json:"count"`
	OutputRoot string        `json:"output_root"`
}
