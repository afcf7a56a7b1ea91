package fields

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/garyjia/docsynth/internal/barcode"
	"github.com/garyjia/docsynth/internal/models"
	"github.com/garyjia/docsynth/internal/randsrc"
)

// lineItem is one row of a receipt or invoice
type lineItem struct {
	name      string
	category  string
	quantity  int64
	unitPrice decimal.Decimal
}

func (li lineItem) total() decimal.Decimal {
	return li.unitPrice.Mul(decimal.NewFromInt(li.quantity))
}

func sampleItems(r *randsrc.Source, n int) []lineItem {
	items := make([]lineItem, n)
	for i := range items {
		cat := randsrc.Pick(r, itemCategories)
		items[i] = lineItem{
			name:      randsrc.Pick(r, cat.items),
			category:  cat.name,
			quantity:  int64(r.Int(1, 5)),
			unitPrice: cents(r.Float(2.99, 99.99)),
		}
	}
	return items
}

// totals holds the derived amounts shared by receipts and invoices
type totals struct {
	subtotal decimal.Decimal
	discount decimal.Decimal
	taxRate  decimal.Decimal
	tax      decimal.Decimal
	total    decimal.Decimal
}

// computeTotals sums line totals, then applies an optional discount and tax.
// Tax is charged on the subtotal; total = subtotal - discount + tax.
func computeTotals(r *randsrc.Source, items []lineItem, taxMin, taxMax float64) totals {
	subtotal := decimal.Zero
	for _, li := range items {
		subtotal = subtotal.Add(li.total())
	}
	taxRate := decimal.NewFromFloat(r.Float(taxMin, taxMax)).Round(3)
	tax := mulCents(subtotal, taxRate)

	discount := decimal.Zero
	if r.Chance(0.3) {
		discount = mulCents(subtotal, decimal.NewFromFloat(r.Float(0.05, 0.20)))
	}
	return totals{
		subtotal: subtotal,
		discount: discount,
		taxRate:  taxRate,
		tax:      tax,
		total:    subtotal.Sub(discount).Add(tax),
	}
}

func itemRows(items []lineItem) []map[string]any {
	rows := make([]map[string]any, len(items))
	for i, li := range items {
		rows[i] = map[string]any{
			"name":        li.name,
			"category":    li.category,
			"quantity":    li.quantity,
			"unit_price":  formatMoney(li.unitPrice),
			"total_price": formatMoney(li.total()),
		}
	}
	return rows
}

func setTotals(m *models.FieldMapping, t totals) {
	m.Set("subtotal", formatMoney(t.subtotal)).
		Set("has_discount", t.discount.IsPositive()).
		Set("discount", formatMoney(t.discount)).
		Set("tax_rate", formatPercent(t.taxRate)).
		Set("tax_amount", formatMoney(t.tax)).
		Set("total", formatMoney(t.total))
}

// cashTender rounds total up to the next multiple of step
func cashTender(total decimal.Decimal, step int64) decimal.Decimal {
	s := decimal.NewFromInt(step)
	return total.Div(s).Ceil().Mul(s)
}

func receipt(ctx *Context) (*models.FieldMapping, error) {
	r := ctx.Rand
	f := r.Faker()

	receiptNumber := r.Digits(6)
	code, err := barcode.DataURI(barcode.KindCode128, receiptNumber, 240, 50)
	if err != nil {
		return nil, err
	}

	items := sampleItems(r, r.Int(1, 8))
	t := computeTotals(r, items, 0.05, 0.10)

	day := r.DateBetween(ctx.Now.AddDate(0, 0, -30), ctx.Now)
	when := day.Add(time.Duration(r.Int(7*60, 22*60)) * time.Minute)

	m := newMiscMapping(models.SubtypeReceipt).
		Set("store_name", randsrc.Pick(r, storeNames)).
		Set("store_address", fakeAddress(r).HTML()).
		Set("store_phone", f.PhoneFormatted()).
		Set("receipt_number", receiptNumber).
		Set("transaction_date", when.Format(DateTimeLayout)).
		Set("cashier_id", r.Int(100, 999)).
		Set("register_number", r.Int(1, 10)).
		Set("items", itemRows(items)).
		Set("item_count", len(items))
	setTotals(m, t)

	method := randsrc.Pick(r, paymentMethods)
	cardNumber, tendered, change := "", "", ""
	switch method {
	case "Credit Card", "Debit Card":
		cardNumber = "****-****-****-" + r.Digits(4)
	case "Cash":
		paid := cashTender(t.total, randsrc.Pick(r, tenderSteps))
		tendered = formatMoney(paid)
		change = formatMoney(paid.Sub(t.total))
	}
	m.Set("payment_method", method).
		Set("card_number", cardNumber).
		Set("amount_tendered", tendered).
		Set("change_given", change).
		Set("barcode", code)

	return m, nil
}

func invoice(ctx *Context) (*models.FieldMapping, error) {
	r := ctx.Rand
	f := r.Faker()

	items := sampleItems(r, r.Int(1, 5))
	for i := range items {
		if r.Chance(0.7) {
			items[i].name = randsrc.Pick(r, serviceNames)
			items[i].category = "Services"
			items[i].quantity = 1
			items[i].unitPrice = cents(r.Float(50, 500))
		}
	}
	t := computeTotals(r, items, 0.04, 0.09)

	clientName := f.Name()
	if r.Chance(0.5) {
		clientName = f.Company()
	}
	invoiceNumber := r.Pattern("INV-9999")
	invoiceDate := r.DateBetween(ctx.Now.AddDate(0, 0, -60), ctx.Now)
	dueDate := invoiceDate.AddDate(0, 0, r.Int(15, 45))
	company := f.Company()

	payload := fmt.Sprintf("%s|%s|%s|%s", company, invoiceNumber, formatMoney(t.total), dueDate.Format(DateLayout))
	code, err := barcode.DataURI(barcode.KindQR, payload, 120, 120)
	if err != nil {
		return nil, err
	}

	m := newMiscMapping(models.SubtypeInvoice).
		Set("company_name", company).
		Set("company_address", fakeAddress(r).HTML()).
		Set("company_phone", f.PhoneFormatted()).
		Set("company_email", f.Email()).
		Set("client_name", clientName).
		Set("client_address", fakeAddress(r).HTML()).
		Set("invoice_number", invoiceNumber).
		Set("invoice_date", invoiceDate.Format(DateLayout)).
		Set("due_date", dueDate.Format(DateLayout)).
		Set("items", itemRows(items)).
		Set("item_count", len(items))
	setTotals(m, t)
	m.Set("payment_terms", randsrc.Pick(r, paymentTerms)).
		Set("qr_code", code)

	return m, nil
}
