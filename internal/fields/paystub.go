package fields

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/garyjia/docsynth/internal/models"
	"github.com/garyjia/docsynth/internal/randsrc"
)

// PayFrequency is how often an employee is paid
type PayFrequency string

// Pay frequencies
const (
	Weekly      PayFrequency = "weekly"
	BiWeekly    PayFrequency = "bi-weekly"
	SemiMonthly PayFrequency = "semi-monthly"
	Monthly     PayFrequency = "monthly"
)

// PayFrequencies lists the frequencies sampled uniformly
var PayFrequencies = []PayFrequency{Weekly, BiWeekly, SemiMonthly, Monthly}

type frequencyRule struct {
	title          string
	periodDays     int
	periodsPerYear int
	regular        [2]float64
	overtime       [2]float64
}

var frequencyRules = map[PayFrequency]frequencyRule{
	Weekly:      {"Weekly", 6, 52, [2]float64{35, 40}, [2]float64{0, 8}},
	BiWeekly:    {"Bi-Weekly", 13, 26, [2]float64{70, 80}, [2]float64{0, 16}},
	SemiMonthly: {"Semi-Monthly", 14, 24, [2]float64{75, 85}, [2]float64{0, 12}},
	Monthly:     {"Monthly", 29, 12, [2]float64{150, 170}, [2]float64{0, 20}},
}

var overtimeMultiplier = decimal.RequireFromString("1.5")

// PayBreakdown is the earnings part of a pay statement
type PayBreakdown struct {
	RegularPay   decimal.Decimal
	OvertimeRate decimal.Decimal
	OvertimePay  decimal.Decimal
	Gross        decimal.Decimal
}

// ComputePay derives earnings from an hourly rate and hours worked.
// Each pay line is rounded to the cent before gross is summed.
func ComputePay(rate, regularHours, overtimeHours decimal.Decimal) PayBreakdown {
	regular := mulCents(rate, regularHours)
	overtimeRate := rate.Mul(overtimeMultiplier)
	overtime := mulCents(overtimeRate, overtimeHours)
	return PayBreakdown{
		RegularPay:   regular,
		OvertimeRate: overtimeRate.Round(2),
		OvertimePay:  overtime,
		Gross:        regular.Add(overtime),
	}
}

// PayInputs are the sampled primitives a pay statement is derived from
type PayInputs struct {
	Frequency     PayFrequency
	PeriodEnd     time.Time
	HourlyRate    decimal.Decimal
	RegularHours  decimal.Decimal
	OvertimeHours decimal.Decimal
}

// SamplePayInputs draws frequency, period end, rate and hours
func SamplePayInputs(ctx *Context) PayInputs {
	r := ctx.Rand
	freq := randsrc.Pick(r, PayFrequencies)
	rule := frequencyRules[freq]
	return PayInputs{
		Frequency:     freq,
		PeriodEnd:     r.DateBetween(ctx.Now.AddDate(0, 0, -30), ctx.Now),
		HourlyRate:    cents(r.Float(15, 45)),
		RegularHours:  decimal.NewFromFloat(r.Float(rule.regular[0], rule.regular[1])).Round(1),
		OvertimeHours: decimal.NewFromFloat(r.Float(rule.overtime[0], rule.overtime[1])).Round(1),
	}
}

type payStatementRules struct{}

func (payStatementRules) Class() models.DocumentClass {
	return models.ClassPayStatement
}

func (p payStatementRules) Generate(ctx *Context, handle models.TemplateHandle) (*models.FieldMapping, error) {
	if err := checkHandle(p.Class(), handle); err != nil {
		return nil, err
	}
	return PayStatement(ctx, SamplePayInputs(ctx))
}

// PayStatement builds the full pay statement mapping from fixed inputs,
// sampling only deductions, identities and year-to-date projections.
func PayStatement(ctx *Context, in PayInputs) (*models.FieldMapping, error) {
	rule, ok := frequencyRules[in.Frequency]
	if !ok {
		return nil, fmt.Errorf("unknown pay frequency: %q", in.Frequency)
	}
	r := ctx.Rand
	f := r.Faker()

	pay := ComputePay(in.HourlyRate, in.RegularHours, in.OvertimeHours)
	gross := pay.Gross

	federal := mulCents(gross, decimal.NewFromFloat(r.Float(0.15, 0.25)))
	state := mulCents(gross, decimal.NewFromFloat(r.Float(0.03, 0.08)))
	socialSecurity := mulCents(gross, socialSecurityRate)
	medicare := mulCents(gross, medicareRate)

	health, healthText := decimal.Zero, ""
	if r.Chance(0.7) {
		health = cents(r.Float(50, 300))
		healthText = formatMoney(health)
	}
	retirement, retirementText := decimal.Zero, ""
	if r.Chance(0.6) {
		retirement = mulCents(gross, decimal.NewFromFloat(r.Float(0.03, 0.08)))
		retirementText = formatMoney(retirement)
	}

	totalDeductions := sumAmounts(federal, state, socialSecurity, medicare, health, retirement)
	net := gross.Sub(totalDeductions)

	periods := r.Int(1, rule.periodsPerYear)
	variance := decimal.NewFromFloat(r.Float(0.85, 1.15))
	ytd := func(amount decimal.Decimal) string {
		return formatMoney(amount.Mul(decimal.NewFromInt(int64(periods))).Mul(variance).Round(2))
	}

	end := in.PeriodEnd
	start := end.AddDate(0, 0, -rule.periodDays)
	payDate := end.AddDate(0, 0, r.Int(1, 7))
	colors := randsrc.Pick(r, colorSchemes)
	companyAddr := fakeAddress(r)

	m := models.NewFieldMapping().
		Set("company_name", f.Company()).
		Set("company_address", companyAddr.HTML()).
		Set("employee_name", f.Name()).
		Set("employee_id", r.Int(1000, 9999)).
		Set("pay_period_start", start.Format(DateLayout)).
		Set("pay_period_end", end.Format(DateLayout)).
		Set("pay_date", payDate.Format(DateLayout)).
		Set("pay_frequency", rule.title).
		Set("hourly_rate", formatMoney(in.HourlyRate)).
		Set("regular_hours", in.RegularHours.StringFixed(1)).
		Set("regular_pay", formatMoney(pay.RegularPay)).
		Set("overtime_hours", in.OvertimeHours.StringFixed(1)).
		Set("overtime_rate", formatMoney(pay.OvertimeRate)).
		Set("overtime_pay", formatMoney(pay.OvertimePay)).
		Set("gross_pay", formatMoney(gross)).
		Set("federal_tax", formatMoney(federal)).
		Set("state_tax", formatMoney(state)).
		Set("social_security", formatMoney(socialSecurity)).
		Set("medicare", formatMoney(medicare)).
		Set("health_insurance", healthText).
		Set("retirement", retirementText).
		Set("total_deductions", formatMoney(totalDeductions)).
		Set("net_pay", formatMoney(net)).
		Set("periods_elapsed", periods).
		Set("ytd_gross", ytd(gross)).
		Set("ytd_federal_tax", ytd(federal)).
		Set("ytd_net", ytd(net)).
		Set("check_number", r.Int(10000, 99999)).
		Set("primary_color", colors.Primary).
		Set("secondary_color", colors.Secondary).
		Set("accent_color", colors.Accent)

	return m, nil
}
