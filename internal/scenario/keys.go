package scenario

import (
	"github.com/iwvelando/school-forecast/internal/kademe"
	"github.com/iwvelando/school-forecast/pkg/constants"
)

// Year indexes the three projected years.
type Year int

const (
	Y1 Year = iota
	Y2
	Y3
)

// Years lists Y1..Y3 in order.
var Years = []Year{Y1, Y2, Y3}

// Key returns the document key of the year ("y1", "y2", "y3").
func (y Year) Key() string {
	switch y {
	case Y1:
		return "y1"
	case Y2:
		return "y2"
	case Y3:
		return "y3"
	}
	return ""
}

// Label returns the column label of the year.
func (y Year) Label() string {
	switch y {
	case Y1:
		return "Y1"
	case Y2:
		return "Y2"
	case Y3:
		return "Y3"
	}
	return ""
}

// ParseYear maps "y1".."y3" to a Year.
func ParseYear(key string) (Year, bool) {
	for _, y := range Years {
		if y.Key() == key {
			return y, true
		}
	}
	return 0, false
}

// Tuition row key suffixes per program type.
const (
	SuffixLocal         = "Yerel"
	SuffixInternational = "Int"
)

// TuitionKey builds the tuition row key of band for a program type.
func TuitionKey(band kademe.Band, programType string) string {
	if programType == constants.ProgramInternational {
		return string(band) + SuffixInternational
	}
	return string(band) + SuffixLocal
}

// TuitionKeys lists every tuition row key, local variants first.
func TuitionKeys() []string {
	keys := make([]string, 0, 2*len(kademe.Bands))
	for _, band := range kademe.Bands {
		keys = append(keys, TuitionKey(band, constants.ProgramLocal))
	}
	for _, band := range kademe.Bands {
		keys = append(keys, TuitionKey(band, constants.ProgramInternational))
	}
	return keys
}

// ParseTuitionKey splits a tuition row key into its base band and program type.
func ParseTuitionKey(key string) (kademe.Band, string, bool) {
	for _, band := range kademe.Bands {
		switch key {
		case string(band) + SuffixLocal:
			return band, constants.ProgramLocal, true
		case string(band) + SuffixInternational:
			return band, constants.ProgramInternational, true
		}
	}
	return "", "", false
}

// Non-tuition fee rows.
var NonTuitionKeys = []string{"yemek", "uniforma", "kitapKirtasiye", "ulasimServis"}

// Dormitory fee rows.
var DormitoryKeys = []string{"yurt", "yazOkulu"}

// Other institutional income rows.
var OtherInstitutionKeys = []string{"bagisGelirleri", "kiraGelirleri", "sponsorlukGelirleri", "digerKurumGelirleri"}

// LegacyOtherIncomeKey receives a flat legacy otherIncome amount.
const LegacyOtherIncomeKey = "digerKurumGelirleri"

// ServiceExpensePairs maps each non-tuition service expense to the income row
// whose per-year student counts it reuses.
var ServiceExpensePairs = []KeyPair{
	{Expense: "yemekGideri", Income: "yemek"},
	{Expense: "uniformaGideri", Income: "uniforma"},
	{Expense: "kitapKirtasiyeGideri", Income: "kitapKirtasiye"},
	{Expense: "ulasimServisGideri", Income: "ulasimServis"},
}

// DormitoryExpensePairs maps each dormitory expense to its dormitory income row.
var DormitoryExpensePairs = []KeyPair{
	{Expense: "yurtGideri", Income: "yurt"},
	{Expense: "yazOkuluGideri", Income: "yazOkulu"},
}

// KeyPair links an expense row to an income row.
type KeyPair struct {
	Expense string
	Income  string
}

// Salary expense categories fed by the HR allocator.
const (
	TurkPersonelMaas          = "turkPersonelMaas"
	TurkDestekPersonelMaas    = "turkDestekPersonelMaas"
	YerelPersonelMaas         = "yerelPersonelMaas"
	YerelDestekPersonelMaas   = "yerelDestekPersonelMaas"
	InternationalPersonelMaas = "internationalPersonelMaas"
)

// SalaryCategories lists the HR-derived operating keys in report order.
var SalaryCategories = []string{
	TurkPersonelMaas,
	TurkDestekPersonelMaas,
	YerelPersonelMaas,
	YerelDestekPersonelMaas,
	InternationalPersonelMaas,
}

// IsHRDerived reports whether an operating key is computed from HR costs.
func IsHRDerived(key string) bool {
	for _, k := range SalaryCategories {
		if k == key {
			return true
		}
	}
	return false
}

// OperatingKeys is the fixed operating expense list, HR-derived keys first.
var OperatingKeys = append(append([]string{}, SalaryCategories...),
	"ulkeTemsilciligi",
	"genelYonetim",
	"kira",
	"emsalKira",
	"enerji",
	"temizlik",
	"guvenlik",
	"bakimOnarim",
	"egitimMateryali",
	"bilgiTeknolojileri",
	"sigorta",
	"vergiHarc",
	"pazarlama",
	"seyahat",
	"sosyalEtkinlik",
	"digerGiderler",
)

// IsOperatingKey reports whether key is a declared operating expense.
func IsOperatingKey(key string) bool {
	for _, k := range OperatingKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Role describes a staffing role and the salary category it feeds.
type Role struct {
	Key        string
	Label      string
	Category   string
	LocalStaff bool
}

// Roles lists every HR role in report order.
var Roles = []Role{
	{Key: "turkMudur", Label: "Principal (seconded)", Category: TurkPersonelMaas},
	{Key: "turkMudurYardimcisi", Label: "Vice principal (seconded)", Category: TurkPersonelMaas},
	{Key: "turkEgitimci", Label: "Teacher (seconded)", Category: TurkPersonelMaas},
	{Key: "turkDestek", Label: "Support staff (seconded)", Category: TurkDestekPersonelMaas},
	{Key: "yerelYonetici", Label: "Administrator (local)", Category: YerelPersonelMaas, LocalStaff: true},
	{Key: "yerelEgitimci", Label: "Teacher (local)", Category: YerelPersonelMaas, LocalStaff: true},
	{Key: "yerelDestek", Label: "Support staff (local)", Category: YerelDestekPersonelMaas, LocalStaff: true},
	{Key: "intEgitimci", Label: "Teacher (international)", Category: InternationalPersonelMaas},
}

// IsRole reports whether key names a declared role.
func IsRole(key string) bool {
	for _, r := range Roles {
		if r.Key == key {
			return true
		}
	}
	return false
}

// Labels holds the default English row labels used by reports.
var Labels = map[string]string{
	"okulOncesi": "Pre-primary",
	"ilkokul":    "Primary",
	"ortaokul":   "Middle school",
	"lise":       "High school",

	"yemek":          "Meals",
	"uniforma":       "Uniforms",
	"kitapKirtasiye": "Books & stationery",
	"ulasimServis":   "Transport",
	"yurt":           "Dormitory",
	"yazOkulu":       "Summer school",

	"bagisGelirleri":      "Donations",
	"kiraGelirleri":       "Rental income",
	"sponsorlukGelirleri": "Sponsorships",
	"digerKurumGelirleri": "Other institutional income",

	"yemekGideri":          "Meals",
	"uniformaGideri":       "Uniforms",
	"kitapKirtasiyeGideri": "Books & stationery",
	"ulasimServisGideri":   "Transport",
	"yurtGideri":           "Dormitory",
	"yazOkuluGideri":       "Summer school",

	TurkPersonelMaas:          "Seconded staff salaries",
	TurkDestekPersonelMaas:    "Seconded support staff salaries",
	YerelPersonelMaas:         "Local staff salaries",
	YerelDestekPersonelMaas:   "Local support staff salaries",
	InternationalPersonelMaas: "International staff salaries",
	"ulkeTemsilciligi":        "Country office",
	"genelYonetim":            "General administration",
	"kira":                    "Rent",
	"emsalKira":               "Imputed rent",
	"enerji":                  "Utilities",
	"temizlik":                "Cleaning",
	"guvenlik":                "Security",
	"bakimOnarim":             "Maintenance",
	"egitimMateryali":         "Teaching materials",
	"bilgiTeknolojileri":      "IT",
	"sigorta":                 "Insurance",
	"vergiHarc":               "Taxes & fees",
	"pazarlama":               "Marketing",
	"seyahat":                 "Travel",
	"sosyalEtkinlik":          "Social activities",
	"digerGiderler":           "Other expenses",
}

// Label returns the English label of a key, or the key itself.
func Label(key string) string {
	if l, ok := Labels[key]; ok {
		return l
	}
	if band, program, ok := ParseTuitionKey(key); ok {
		suffix := " (local)"
		if program == constants.ProgramInternational {
			suffix = " (international)"
		}
		return Labels[string(band)] + suffix
	}
	return key
}
