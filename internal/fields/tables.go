package fields

// ColorScheme is a neutral primary/secondary/accent triple
type ColorScheme struct {
	Primary   string
	Secondary string
	Accent    string
}

var colorSchemes = []ColorScheme{
	{"#2c3e50", "#ecf0f1", "#34495e"},
	{"#27ae60", "#ecf0f1", "#2ecc71"},
	{"#8e44ad", "#ecf0f1", "#9b59b6"},
	{"#e74c3c", "#ecf0f1", "#c0392b"},
	{"#f39c12", "#ecf0f1", "#d68910"},
	{"#17a2b8", "#ecf0f1", "#138496"},
	{"#495057", "#f8f9fa", "#6c757d"},
	{"#6f42c1", "#f8f9fc", "#5a32a3"},
}

var itemCategories = []struct {
	name  string
	items []string
}{
	{"Electronics", []string{"Smartphone Case", "USB Cable", "Wireless Charger", "Bluetooth Speaker", "Power Bank"}},
	{"Clothing", []string{"T-Shirt", "Jeans", "Sneakers", "Jacket", "Cap", "Sweater"}},
	{"Food & Beverage", []string{"Coffee", "Sandwich", "Snacks", "Energy Drink", "Fruit Bowl", "Muffin"}},
	{"Home & Garden", []string{"Plant Pot", "Garden Tool", "Light Bulb", "Storage Box", "Cleaning Supply"}},
	{"Books", []string{"Novel", "Cookbook", "Magazine", "Technical Manual", "Notebook"}},
	{"Sports & Outdoors", []string{"Water Bottle", "Fitness Tracker", "Yoga Mat", "Sports Gloves", "Backpack"}},
	{"Health & Beauty", []string{"Shampoo", "Moisturizer", "Vitamins", "Toothbrush", "Face Mask"}},
	{"Automotive", []string{"Car Charger", "Air Freshener", "Floor Mats", "Windshield Wiper", "Motor Oil"}},
	{"Office Supplies", []string{"Pen Set", "Notebook", "Paper Clips", "Stapler", "Folder", "Calculator"}},
	{"Toys & Games", []string{"Board Game", "Puzzle", "Action Figure", "Card Game", "Building Blocks"}},
}

var storeNames = []string{
	"QuickMart", "SuperSave", "MegaStore", "CityShop", "FreshMarket",
	"TechZone", "StyleHub", "HomeBase", "GreenLeaf", "ValuePlus",
}

var paymentMethods = []string{"Cash", "Credit Card", "Debit Card", "Mobile Payment"}

// cash tender is rounded up to one of these note sizes
var tenderSteps = []int64{5, 10, 20}

var serviceNames = []string{
	"Consulting Services", "Website Development", "Graphic Design",
	"Content Writing", "SEO Optimization", "Data Analysis",
	"Software Development", "Project Management", "Training Session",
}

var paymentTerms = []string{"Net 30", "Net 15", "Due on Receipt", "Net 45"}

var letterClosings = []string{"Sincerely,", "Kind regards,", "Best regards,", "Yours faithfully,", "Respectfully,"}

var clinicSuffixes = []string{"Family Clinic", "Medical Center", "Health Partners", "Urgent Care", "Community Health"}

var activityRestrictions = []string{
	"No restrictions",
	"Light duty only",
	"No lifting over 10 lbs",
	"Rest at home",
	"Avoid prolonged standing",
}

var bankNames = []string{
	"First Federal Bank", "Harbor Savings", "Summit Trust", "Riverside Credit Union",
	"Pioneer National Bank", "Evergreen Bank", "Keystone Financial", "Lakeshore Savings",
}

var debitDescriptions = []string{
	"POS PURCHASE GROCERY", "ATM WITHDRAWAL", "ONLINE TRANSFER OUT", "UTILITY PAYMENT",
	"CARD PURCHASE FUEL", "RESTAURANT", "PHONE BILL AUTOPAY", "INSURANCE PREMIUM",
	"RENT PAYMENT", "PHARMACY",
}

var creditDescriptions = []string{
	"PAYROLL DIRECT DEPOSIT", "ONLINE TRANSFER IN", "MOBILE CHECK DEPOSIT",
	"INTEREST PAYMENT", "REFUND",
}

var schoolSuffixes = []string{"High School", "Middle School", "Academy", "Preparatory School"}

var schoolSubjects = []string{
	"English", "Mathematics", "Biology", "Chemistry", "History", "Geography",
	"Physical Education", "Art", "Music", "Computer Science", "Spanish", "Economics",
}

var terms = []string{"Fall", "Winter", "Spring"}

// gradeBand maps a minimum percentage to a letter and grade points
type gradeBand struct {
	min    int
	letter string
	points int64
}

var gradeBands = []gradeBand{
	{90, "A", 4},
	{80, "B", 3},
	{70, "C", 2},
	{60, "D", 1},
	{0, "F", 0},
}

// Jurisdiction is a license issuer and its number format.
// In a format, A stands for a letter and 9 for a digit.
type Jurisdiction struct {
	Code   string
	Name   string
	Format string
}

// Jurisdictions lists the license issuers known to the generator
var Jurisdictions = []Jurisdiction{
	{"CA", "California", "A9999999"},
	{"NY", "New York", "999 999 999"},
	{"FL", "Florida", "A999-999-99-999-9"},
	{"IL", "Illinois", "A999-9999-9999"},
	{"WA", "Washington", "AAAAA99AA9"},
	{"TX", "Texas", "99999999"},
	{"PA", "Pennsylvania", "99 999 999"},
	{"NJ", "New Jersey", "A9999 99999 99999"},
	{"MI", "Michigan", "A 999 999 999 999"},
	{"OH", "Ohio", "AA999999"},
}

var eyeColors = []string{"BRO", "BLU", "GRN", "HAZ", "GRY"}

var licenseClasses = []string{"C", "D", "M", "CM"}
