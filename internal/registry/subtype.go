package registry

import (
	"strings"

	"github.com/garyjia/docsynth/internal/models"
)

type subtypeRule struct {
	keyword string
	subtype models.DocumentSubtype
}

// subtypeRules is checked in order; the first keyword found in the name wins
var subtypeRules = []subtypeRule{
	{"receipt", models.SubtypeReceipt},
	{"invoice", models.SubtypeInvoice},
	{"license", models.SubtypeDriversLicense},
	{"licence", models.SubtypeDriversLicense},
	{"driver", models.SubtypeDriversLicense},
	{"medical", models.SubtypeMedicalNote},
	{"doctor", models.SubtypeMedicalNote},
	{"bank", models.SubtypeBankStatement},
	{"statement", models.SubtypeBankStatement},
	{"report", models.SubtypeReportCard},
	{"grade", models.SubtypeReportCard},
	{"book", models.SubtypeBookPage},
	{"letter", models.SubtypeLetter},
}

// ClassifySubtype tags a miscellaneous template by keywords in its file name
func ClassifySubtype(name string) models.DocumentSubtype {
	lower := strings.ToLower(name)
	for _, rule := range subtypeRules {
		if strings.Contains(lower, rule.keyword) {
			return rule.subtype
		}
	}
	return models.SubtypeGeneric
}
