// Package posdata projects POS configurations onto the field list loaded by terminals.
package posdata

import (
	"github.com/codetroops/pos-lebanon/internal/models"
)

// Field names understood by Load
const (
	FieldID               = "id"
	FieldName             = "name"
	FieldPaymentMethodIDs = "payment_method_ids"
	FieldLBPUSDRate       = "lbp_usd_rate"
	FieldDisplayLBPTotal  = "display_lbp_total"
)

// FieldSource lists the configuration fields shipped to a terminal
type FieldSource interface {
	Fields(cfg *models.PosConfig) []string
}

// BaseFields is the field list every terminal needs
type BaseFields struct{}

// Fields returns id, name and payment_method_ids
func (BaseFields) Fields(*models.PosConfig) []string {
	return []string{FieldID, FieldName, FieldPaymentMethodIDs}
}

type currencyFields struct {
	next FieldSource
}

// WithCurrencyFields extends src with the dual-currency fields
func WithCurrencyFields(src FieldSource) FieldSource {
	return currencyFields{next: src}
}

func (c currencyFields) Fields(cfg *models.PosConfig) []string {
	fields := append([]string(nil), c.next.Fields(cfg)...)
	return append(fields, FieldLBPUSDRate, FieldDisplayLBPTotal)
}

// Default is the field source used by the HTTP API
var Default FieldSource = WithCurrencyFields(BaseFields{})

// Load returns the values of the fields listed by src. Unknown field names are skipped.
func Load(src FieldSource, cfg *models.PosConfig) map[string]any {
	fields := src.Fields(cfg)
	data := make(map[string]any, len(fields))
	for _, f := range fields {
		switch f {
		case FieldID:
			data[f] = cfg.ID
		case FieldName:
			data[f] = cfg.Name
		case FieldPaymentMethodIDs:
			data[f] = cfg.PaymentMethodIDs()
		case FieldLBPUSDRate:
			data[f] = cfg.LBPUSDRate
		case FieldDisplayLBPTotal:
			data[f] = cfg.DisplayLBPTotal
		}
	}
	return data
}
