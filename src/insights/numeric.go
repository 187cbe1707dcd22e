package insights

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// ParseAmount converts a stored NUMERIC/text amount. Anything unparseable is
// reported as (0, false) so callers can treat the record as zero-contribution.
func ParseAmount(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, false
	}
	f, _ := d.Float64()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

func roundTo(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}

// formatWhole renders an amount rounded to whole units with thousands separators.
func formatWhole(v float64) string {
	return printer.Sprintf("%d", int64(math.Round(v)))
}

// formatPlain renders an amount the way it was stored, without padding zeros.
func formatPlain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
