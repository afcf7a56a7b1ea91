package fields

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/garyjia/docsynth/internal/barcode"
	"github.com/garyjia/docsynth/internal/models"
	"github.com/garyjia/docsynth/internal/randsrc"
)

type transaction struct {
	date   time.Time
	desc   string
	credit bool
	amount decimal.Decimal
}

// bankStatement lists dated transactions with a running balance.
// closing = opening + total credits - total debits.
func bankStatement(ctx *Context) (*models.FieldMapping, error) {
	r := ctx.Rand
	f := r.Faker()

	// statement covers the previous calendar month
	firstOfMonth := time.Date(ctx.Now.Year(), ctx.Now.Month(), 1, 0, 0, 0, 0, ctx.Now.Location())
	periodStart := firstOfMonth.AddDate(0, -1, 0)
	periodEnd := firstOfMonth.AddDate(0, 0, -1)

	opening := cents(r.Float(500, 10000))
	txns := make([]transaction, r.Int(5, 15))
	for i := range txns {
		t := transaction{date: r.DateBetween(periodStart, periodEnd)}
		if r.Chance(0.3) {
			t.credit = true
			t.desc = randsrc.Pick(r, creditDescriptions)
			t.amount = cents(r.Float(100, 3000))
		} else {
			t.desc = randsrc.Pick(r, debitDescriptions)
			t.amount = cents(r.Float(5, 400))
		}
		txns[i] = t
	}
	sort.SliceStable(txns, func(i, j int) bool { return txns[i].date.Before(txns[j].date) })

	balance := opening
	credits, debits := decimal.Zero, decimal.Zero
	rows := make([]map[string]any, len(txns))
	for i, t := range txns {
		row := map[string]any{
			"date":        t.date.Format(DateLayout),
			"description": t.desc,
			"credit":      "",
			"debit":       "",
		}
		if t.credit {
			balance = balance.Add(t.amount)
			credits = credits.Add(t.amount)
			row["credit"] = formatMoney(t.amount)
		} else {
			balance = balance.Sub(t.amount)
			debits = debits.Add(t.amount)
			row["debit"] = formatMoney(t.amount)
		}
		row["balance"] = formatMoney(balance)
		rows[i] = row
	}

	holderFirst, holderLast := fakeName(r)
	m := newMiscMapping(models.SubtypeBankStatement).
		Set("bank_name", randsrc.Pick(r, bankNames)).
		Set("bank_address", fakeAddress(r).HTML()).
		Set("bank_phone", f.PhoneFormatted()).
		Set("account_holder", holderFirst+" "+holderLast).
		Set("holder_address", fakeAddress(r).HTML()).
		Set("account_number", "****"+r.Digits(4)).
		Set("routing_number", r.Digits(9)).
		Set("statement_start", periodStart.Format(DateLayout)).
		Set("statement_end", periodEnd.Format(DateLayout)).
		Set("opening_balance", formatMoney(opening)).
		Set("transactions", rows).
		Set("total_credits", formatMoney(credits)).
		Set("total_debits", formatMoney(debits)).
		Set("closing_balance", formatMoney(opening.Add(credits).Sub(debits)))

	return m, nil
}

func gradeFor(percent int) gradeBand {
	for _, b := range gradeBands {
		if percent >= b.min {
			return b
		}
	}
	return gradeBands[len(gradeBands)-1]
}

// reportCard derives each letter grade from its percentage; gpa is the mean of the listed points
func reportCard(ctx *Context) (*models.FieldMapping, error) {
	r := ctx.Rand
	f := r.Faker()

	subjects := append([]string(nil), schoolSubjects...)
	randsrc.Shuffle(r, subjects)
	subjects = subjects[:r.Int(5, 7)]

	points := decimal.Zero
	rows := make([]map[string]any, len(subjects))
	for i, subject := range subjects {
		pct := r.Int(55, 100)
		band := gradeFor(pct)
		points = points.Add(decimal.NewFromInt(band.points))
		_, teacherLast := fakeName(r)
		rows[i] = map[string]any{
			"subject":      subject,
			"teacher":      "Mx. " + teacherLast,
			"percentage":   pct,
			"grade":        band.letter,
			"grade_points": decimal.NewFromInt(band.points).StringFixed(1),
		}
	}
	gpa := points.Div(decimal.NewFromInt(int64(len(rows)))).Round(2)

	studentFirst, studentLast := fakeName(r)
	schoolCity := f.City()
	year := ctx.Now.Year()
	if r.Chance(0.5) {
		year--
	}

	m := newMiscMapping(models.SubtypeReportCard).
		Set("school_name", schoolCity+" "+randsrc.Pick(r, schoolSuffixes)).
		Set("school_address", fakeAddress(r).HTML()).
		Set("student_name", studentFirst+" "+studentLast).
		Set("student_id", r.Digits(7)).
		Set("grade_level", r.Int(6, 12)).
		Set("term", fmt.Sprintf("%s %d", randsrc.Pick(r, terms), year)).
		Set("subjects", rows).
		Set("gpa", gpa.StringFixed(2)).
		Set("days_absent", r.Int(0, 12)).
		Set("days_tardy", r.Int(0, 8))

	return m, nil
}

func driversLicense(ctx *Context) (*models.FieldMapping, error) {
	r := ctx.Rand
	f := r.Faker()

	j := randsrc.Pick(r, Jurisdictions)
	number := r.Pattern(j.Format)
	first, last := fakeName(r)
	addr := fakeAddress(r)
	addr.State = j.Code

	dob := r.DateBetween(ctx.Now.AddDate(-80, 0, 0), ctx.Now.AddDate(-18, 0, 0))
	issue := r.DateBetween(ctx.Now.AddDate(-4, 0, 0), ctx.Now)
	expiration := issue.AddDate(r.Int(4, 8), 0, 0)
	sex := randsrc.Pick(r, []string{"M", "F", "X"})
	heightInches := r.Int(58, 78)

	// AAMVA element ids
	payload := strings.Join([]string{
		"ANSI 636000090002DL00410278ZA03190008DL",
		"DAQ" + number,
		"DCS" + strings.ToUpper(last),
		"DAC" + strings.ToUpper(first),
		"DBB" + dob.Format("01022006"),
		"DBA" + expiration.Format("01022006"),
		"DAJ" + j.Code,
	}, "\n")
	code, err := barcode.DataURI(barcode.KindPDF417, payload, 360, 90)
	if err != nil {
		return nil, err
	}

	m := newMiscMapping(models.SubtypeDriversLicense).
		Set("state", j.Code).
		Set("state_name", j.Name).
		Set("license_number", number).
		Set("license_format", j.Format).
		Set("first_name", first).
		Set("last_name", last).
		Set("address", addr.HTML()).
		Set("date_of_birth", dob.Format(DateLayout)).
		Set("issue_date", issue.Format(DateLayout)).
		Set("expiration_date", expiration.Format(DateLayout)).
		Set("license_class", randsrc.Pick(r, licenseClasses)).
		Set("sex", sex).
		Set("height", fmt.Sprintf("%d'-%02d\"", heightInches/12, heightInches%12)).
		Set("weight", fmt.Sprintf("%d lb", r.Int(110, 260))).
		Set("eye_color", randsrc.Pick(r, eyeColors)).
		Set("donor", r.Chance(0.4)).
		Set("document_discriminator", r.Digits(10)).
		Set("issuer", f.City()+" DMV").
		Set("barcode", code)

	return m, nil
}
