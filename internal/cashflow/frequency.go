package cashflow

import "strings"

// Frequency is a normalized (uppercased) recurrence tag
type Frequency string

const (
	Daily       Frequency = "DAILY"
	Weekly      Frequency = "WEEKLY"
	Biweekly    Frequency = "BIWEEKLY"
	Fortnightly Frequency = "FORTNIGHTLY"
	Monthly     Frequency = "MONTHLY"
	Yearly      Frequency = "YEARLY"
	Annual      Frequency = "ANNUAL"
	Annually    Frequency = "ANNUALLY"
)

// MonthsPerYear is the divisor used to turn annual occurrences into a monthly rate
const MonthsPerYear = 12

// ParseFrequency uppercases a stored tag. Unknown tags are kept as-is and get
// monthly semantics wherever they are interpreted.
func ParseFrequency(tag string) Frequency {
	return Frequency(strings.ToUpper(tag))
}

// AnnualFactor returns how many times a year an adjustment with this frequency
// occurs when averaging it onto a monthly basis.
func (f Frequency) AnnualFactor() int64 {
	switch f {
	case Daily:
		return 365
	case Weekly:
		return 52
	case Biweekly, Fortnightly:
		return 26
	case Yearly, Annual, Annually:
		return 1
	default:
		return 12
	}
}
