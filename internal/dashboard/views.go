package dashboard

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kiosk404/spycats/pkg/utils/json"
)

// Experience bands, in years.
const (
	midExperience    = 4
	seniorExperience = 7
)

// Filter returns the cats whose name or breed contains term, ignoring case.
// An empty term matches everything.
func Filter(cats []Cat, term string) []Cat {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]Cat, 0, len(cats))
	for _, c := range cats {
		if term == "" ||
			strings.Contains(strings.ToLower(c.Name), term) ||
			strings.Contains(strings.ToLower(c.Breed), term) {
			out = append(out, c)
		}
	}
	return out
}

// Stats summarizes a roster.
type Stats struct {
	Total             int
	Payroll           decimal.Decimal
	AverageSalary     decimal.Decimal
	AverageExperience decimal.Decimal

	// Junior agents have under 4 years, mid 4 up to 7, senior 7 or more.
	Junior int
	Mid    int
	Senior int
}

// ComputeStats derives Stats from cats. Averages of an empty roster are zero.
func ComputeStats(cats []Cat) Stats {
	s := Stats{Total: len(cats)}
	years := decimal.Zero
	for _, c := range cats {
		s.Payroll = s.Payroll.Add(decimal.NewFromFloat(c.Salary))
		years = years.Add(decimal.NewFromFloat(c.YearsOfExperience))

		switch {
		case c.YearsOfExperience < midExperience:
			s.Junior++
		case c.YearsOfExperience < seniorExperience:
			s.Mid++
		default:
			s.Senior++
		}
	}
	if s.Total > 0 {
		n := decimal.NewFromInt(int64(s.Total))
		s.AverageSalary = s.Payroll.Div(n)
		s.AverageExperience = years.Div(n)
	}
	return s
}

// FormatCurrency renders amount as US dollars with thousands separators
// and at most two decimals, dropping trailing zeros: $75,000 or $75,000.5.
func FormatCurrency(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}

	fixed := amount.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")
	frac = strings.TrimRight(frac, "0")

	var b strings.Builder
	b.WriteString(sign)
	b.WriteByte('$')
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

// FormatSalary is FormatCurrency for a single salary.
func FormatSalary(salary float64) string {
	return FormatCurrency(decimal.NewFromFloat(salary))
}

// FormatYears renders an average experience like "5.3 years".
func FormatYears(years decimal.Decimal) string {
	return years.StringFixed(1) + " years"
}

// FormatExperience renders one cat's experience: "5 years", "2.5 years".
func FormatExperience(years float64) string {
	return strconv.FormatFloat(years, 'f', -1, 64) + " years"
}

// ExperienceLevel names the band of a cat's experience.
func ExperienceLevel(years float64) string {
	switch {
	case years < midExperience:
		return "Junior"
	case years < seniorExperience:
		return "Mid"
	default:
		return "Senior"
	}
}

var csvHeader = []string{"ID", "Name", "Breed", "Years of Experience", "Salary", "Created At"}

// ExportCSV writes cats as CSV. Text columns are always quoted.
func ExportCSV(w io.Writer, cats []Cat) error {
	var b strings.Builder
	b.WriteString(strings.Join(csvHeader, ","))
	for _, c := range cats {
		created := "N/A"
		if !c.CreatedAt.IsZero() {
			created = formatTimestamp(c.CreatedAt)
		}
		b.WriteByte('\n')
		b.WriteString(strings.Join([]string{
			c.ID,
			quoteCSV(c.Name),
			quoteCSV(c.Breed),
			strconv.FormatFloat(c.YearsOfExperience, 'f', -1, 64),
			strconv.FormatFloat(c.Salary, 'f', -1, 64),
			quoteCSV(created),
		}, ","))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func quoteCSV(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// ExportJSON writes cats as an indented JSON array.
func ExportJSON(w io.Writer, cats []Cat) error {
	if cats == nil {
		cats = []Cat{}
	}
	data, err := json.MarshalIndent(cats, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Export formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Export writes cats in the given format.
func Export(w io.Writer, format string, cats []Cat) error {
	switch format {
	case FormatCSV:
		return ExportCSV(w, cats)
	case FormatJSON:
		return ExportJSON(w, cats)
	default:
		return fmt.Errorf("unsupported export format %q, must be %q or %q", format, FormatCSV, FormatJSON)
	}
}

// ExportFileName returns the download name for an export made at now,
// e.g. spy-cats-2024-01-15.csv. The date is taken in UTC.
func ExportFileName(format string, now time.Time) string {
	return fmt.Sprintf("spy-cats-%s.%s", now.UTC().Format("2006-01-02"), format)
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
