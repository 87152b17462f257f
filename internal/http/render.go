package http

import (
	"embed"
	"html/template"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

func loadTemplates() *template.Template {
	return template.Must(template.New("").Funcs(template.FuncMap{
		"usd": usd,
	}).ParseFS(templateFS, "templates/*.html"))
}

// usd formats an amount as dollars, e.g. $1,234.56.
func usd(amount decimal.Decimal) string {
	cents := amount.Shift(2).Round(0)
	if cents.BigInt().IsInt64() {
		return money.New(cents.IntPart(), money.USD).Display()
	}
	return largeUSD(amount)
}

// largeUSD formats amounts whose cents overflow int64.
func largeUSD(amount decimal.Decimal) string {
	whole, frac, _ := strings.Cut(amount.Abs().StringFixed(2), ".")

	var b strings.Builder
	if amount.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// memegenEscaper encodes text for a memegen.link image path.
var memegenEscaper = strings.NewReplacer(
	"-", "--",
	" ", "-",
	"_", "__",
	"?", "~q",
	"%", "~p",
	"#", "~h",
	"/", "~s",
	`"`, "''",
)

func escapeApology(s string) string {
	return memegenEscaper.Replace(s)
}
