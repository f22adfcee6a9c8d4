// Package receipt builds WhatsApp share links for POS receipts.
package receipt

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/codetroops/pos-lebanon/internal/currency"
)

// DefaultCountryCode is prefixed to phone numbers entered without one
const DefaultCountryCode = "+961"

const shareBaseURL = "https://wa.me/"

// ErrInvalidPhone is returned when a phone number fails ValidPhone
var ErrInvalidPhone = errors.New("invalid WhatsApp phone number")

var phonePattern = regexp.MustCompile(`^\+?[() \d\s\-.]{8,18}$`)

// Line is one order line of a receipt
type Line struct {
	Name     string  `json:"name" yaml:"name"`
	Quantity float64 `json:"qty" yaml:"qty"`
	PriceUSD float64 `json:"price_usd" yaml:"price_usd"`
}

// Receipt is the part of a paid order that is shared with the customer
type Receipt struct {
	ShopName  string  `json:"shop_name" yaml:"shop_name"`
	OrderName string  `json:"order_name" yaml:"order_name"`
	Lines     []Line  `json:"lines" yaml:"lines"`
	TotalUSD  float64 `json:"total_usd" yaml:"total_usd"`
}

// ValidPhone reports whether phone looks like a dialable number
func ValidPhone(phone string) bool {
	return phone != "" && phonePattern.MatchString(phone)
}

// NormalizePhone strips everything but digits and '+', defaulting to the Lebanese country code
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r == '+' || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if !strings.HasPrefix(cleaned, "+") {
		cleaned = DefaultCountryCode + cleaned
	}
	return cleaned
}

// BuildMessage renders the receipt summary sent over WhatsApp.
// A total whose LBP equivalent overflows returns currency.ErrAmountOutOfRange.
func BuildMessage(r Receipt, rate float64) (string, error) {
	totalLBP, err := currency.FormatLBP(r.TotalUSD, rate)
	if err != nil {
		return "", fmt.Errorf("receipt total: %w", err)
	}

	shop := r.ShopName
	if shop == "" {
		shop = "POS"
	}

	lines := []string{
		fmt.Sprintf("🧾 *%s* - Receipt", shop),
		"Order: " + r.OrderName,
		"---",
	}
	for _, l := range r.Lines {
		name := l.Name
		if name == "" {
			name = "Item"
		}
		qty := l.Quantity
		if qty == 0 {
			qty = 1
		}
		lines = append(lines, fmt.Sprintf("%sx %s: %s",
			strconv.FormatFloat(qty, 'f', -1, 64), name, currency.FormatUSD(l.PriceUSD)))
	}
	lines = append(lines,
		"---",
		fmt.Sprintf("*Total: %s | %s LBP*", currency.FormatUSD(r.TotalUSD), totalLBP),
		fmt.Sprintf("Rate: 1 USD = %s LBP", currency.FormatRate(rate)),
		"\nThank you! 🙏",
	)
	return strings.Join(lines, "\n"), nil
}

// ShareURL validates phone and returns the wa.me link carrying message
func ShareURL(phone, message string) (string, error) {
	if !ValidPhone(phone) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPhone, phone)
	}
	digits := strings.Replace(NormalizePhone(phone), "+", "", 1)
	return shareBaseURL + digits + "?text=" + escapeComponent(message), nil
}

// escapeComponent percent-encodes s the way browsers encode a URI component
func escapeComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreservedComponent(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isUnreservedComponent(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
