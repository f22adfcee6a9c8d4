// Package currency converts and formats USD amounts in Lebanese pounds
// using a POS configuration's exchange rate.
package currency

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/codetroops/pos-lebanon/internal/models"
)

// DefaultRate is the LBP per USD rate used when a configuration has none
const DefaultRate = models.DefaultLBPUSDRate

// ErrAmountOutOfRange is returned when an LBP amount does not fit in an int64
var ErrAmountOutOfRange = errors.New("amount out of range")

// 2^63, the first float64 that no longer fits in an int64
const int64Bound = float64(1 << 63)

var printer = message.NewPrinter(language.AmericanEnglish)

// EffectiveRate returns rate when it is positive, otherwise DefaultRate
func EffectiveRate(rate float64) float64 {
	if rate > 0 && !math.IsInf(rate, 0) {
		return rate
	}
	return DefaultRate
}

// ToLBP converts a USD amount to whole Lebanese pounds, rounding half up.
// It returns ErrAmountOutOfRange when usd is not finite or the result overflows int64.
func ToLBP(usd, rate float64) (int64, error) {
	lbp, err := roundHalfUp(usd * EffectiveRate(rate))
	if err != nil {
		return 0, fmt.Errorf("%w: %g USD at rate %g", err, usd, EffectiveRate(rate))
	}
	return lbp, nil
}

// FormatLBP converts usd and formats it with en-US thousands separators
func FormatLBP(usd, rate float64) (string, error) {
	lbp, err := ToLBP(usd, rate)
	if err != nil {
		return "", err
	}
	return printer.Sprintf("%d", lbp), nil
}

// FormatRate formats the rate as a whole number with thousands separators
func FormatRate(rate float64) string {
	r := EffectiveRate(rate)
	n, err := roundHalfUp(r)
	if err != nil {
		return printer.Sprintf("%.0f", r)
	}
	return printer.Sprintf("%d", n)
}

// FormatUSD formats a dollar amount as "$ 1,234.50"
func FormatUSD(amount float64) string {
	return printer.Sprintf("$ %.2f", amount)
}

func roundHalfUp(x float64) (int64, error) {
	f := math.Floor(x + 0.5)
	if math.IsNaN(f) || f >= int64Bound || f < -int64Bound {
		return 0, ErrAmountOutOfRange
	}
	return int64(f), nil
}

// Conversion is a USD amount together with its LBP equivalent
type Conversion struct {
	USD          float64 `json:"usd"`
	USDFormatted string  `json:"usd_formatted"`
	LBP          int64   `json:"lbp"`
	LBPFormatted string  `json:"lbp_formatted"`
	Rate         float64 `json:"rate"`
	ShowLBP      bool    `json:"display_lbp_total"`
}

// Convert converts usd with the settings of a POS configuration
func Convert(usd float64, settings models.CurrencySettings) (Conversion, error) {
	rate := EffectiveRate(settings.LBPUSDRate)
	lbp, err := ToLBP(usd, rate)
	if err != nil {
		return Conversion{}, err
	}
	return Conversion{
		USD:          usd,
		USDFormatted: FormatUSD(usd),
		LBP:          lbp,
		LBPFormatted: printer.Sprintf("%d", lbp),
		Rate:         rate,
		ShowLBP:      settings.DisplayLBPTotal,
	}, nil
}
