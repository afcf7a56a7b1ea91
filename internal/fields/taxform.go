package fields

import (
	"github.com/shopspring/decimal"

	"github.com/garyjia/docsynth/internal/models"
)

// Wage base capping social security wages
const SocialSecurityWageBase = 160200

var (
	socialSecurityRate = decimal.RequireFromString("0.062")
	medicareRate       = decimal.RequireFromString("0.0145")
)

type taxFormRules struct{}

func (taxFormRules) Class() models.DocumentClass {
	return models.ClassTaxForm
}

func (t taxFormRules) Generate(ctx *Context, handle models.TemplateHandle) (*models.FieldMapping, error) {
	if err := checkHandle(t.Class(), handle); err != nil {
		return nil, err
	}
	r := ctx.Rand
	f := r.Faker()

	wagesInt := r.Int(30000, 150000)
	wages := decimal.NewFromInt(int64(wagesInt))
	federalRate := decimal.NewFromFloat(r.Float(0.18, 0.28))
	stateRate := decimal.NewFromFloat(r.Float(0.03, 0.08))

	federal := mulCents(wages, federalRate)
	state := mulCents(wages, stateRate)
	ssWages := decimal.NewFromInt(int64(socialSecurityWages(wagesInt)))
	ssTax := mulCents(ssWages, socialSecurityRate)
	medicare := mulCents(wages, medicareRate)

	dependentCare := decimal.Zero
	if r.Chance(0.3) {
		dependentCare = decimal.NewFromInt(int64(r.Int(0, 5000)))
	}
	nonqualified := decimal.Zero
	if r.Chance(0.2) {
		nonqualified = decimal.NewFromInt(int64(r.Int(0, 10000)))
	}

	first, last := fakeName(r)
	employeeAddr := fakeAddress(r)
	employerAddr := fakeAddress(r)

	m := models.NewFieldMapping().
		Set("tax_year", r.Int(2000, ctx.Now.Year())).
		Set("employee_ssn", r.Pattern("999-99-9999")).
		Set("employee_first_name", first).
		Set("employee_last_name", last).
		Set("employee_name", first+" "+last).
		Set("employee_address", employeeAddr.HTML()).
		Set("employer_ein", r.Pattern("99-9999999")).
		Set("employer_name", f.Company()).
		Set("employer_address", employerAddr.HTML()).
		Set("employer_state_id", r.Digits(6)).
		Set("control_number", r.Digits(5)).
		Set("wages", formatGrouped(wages)).
		Set("federal_tax_withheld", formatGrouped(federal)).
		Set("social_security_wages", formatGrouped(ssWages)).
		Set("social_security_tax", formatGrouped(ssTax)).
		Set("medicare_wages", formatGrouped(wages)).
		Set("medicare_tax", formatGrouped(medicare)).
		Set("social_security_tips", "0.00").
		Set("allocated_tips", "0.00").
		Set("dependent_care_benefits", formatGrouped(dependentCare)).
		Set("nonqualified_plans", formatGrouped(nonqualified)).
		Set("state", employerAddr.State).
		Set("state_wages", formatGrouped(wages)).
		Set("state_tax_withheld", formatGrouped(state))

	// local boxes are filled independently, as on real forms where some are blank
	localWages, localTax, locality := "", "", ""
	if r.Chance(0.5) {
		localWages = formatGrouped(wages)
	}
	if r.Chance(0.5) {
		localTax = formatGrouped(mulCents(wages, decimal.NewFromFloat(r.Float(0.01, 0.03))))
	}
	if r.Chance(0.5) {
		locality = f.City()
	}
	m.Set("local_wages", localWages).
		Set("local_tax", localTax).
		Set("locality_name", locality)

	return m, nil
}

// socialSecurityWages caps wages at the social security wage base
func socialSecurityWages(wages int) int {
	return min(wages, SocialSecurityWageBase)
}
