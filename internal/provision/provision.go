// Package provision links the LBP cash payment method to every POS configuration.
package provision

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/codetroops/pos-lebanon/internal/models"
	"github.com/codetroops/pos-lebanon/internal/storage"
)

// Store is the subset of storage the provisioner needs
type Store interface {
	storage.ConfigStore
	storage.PaymentMethodStore
}

// Report summarizes a provisioning run
type Report struct {
	MethodID   uint   `json:"payment_method_id"`
	MethodName string `json:"payment_method_name"`
	Created    bool   `json:"created"`
	Linked     []uint `json:"linked_config_ids"`
	Skipped    []uint `json:"skipped_config_ids"`
}

// Provisioner ensures the LBP cash payment method exists and is linked everywhere
type Provisioner struct {
	store  Store
	logger logrus.FieldLogger
	name   string
}

// New creates a provisioner. An empty name uses models.DefaultLBPPaymentMethodName.
func New(store Store, logger logrus.FieldLogger, name string) *Provisioner {
	if name == "" {
		name = models.DefaultLBPPaymentMethodName
	}
	return &Provisioner{
		store:  store,
		logger: logger,
		name:   name,
	}
}

// Run finds or creates the payment method and links it to each configuration that lacks it.
// Running it again links nothing.
func (p *Provisioner) Run(ctx context.Context) (Report, error) {
	report := Report{Linked: []uint{}, Skipped: []uint{}}

	method, err := p.store.FindPaymentMethodByName(ctx, p.name)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		method = models.NewLBPPaymentMethod(p.name)
		if err := p.store.CreatePaymentMethod(ctx, method); err != nil {
			return report, fmt.Errorf("failed to create payment method %q: %w", p.name, err)
		}
		report.Created = true
		p.logger.WithFields(logrus.Fields{
			"payment_method_id": method.ID,
			"name":              method.Name,
		}).Info("Created LBP payment method")
	case err != nil:
		return report, fmt.Errorf("failed to look up payment method %q: %w", p.name, err)
	}
	report.MethodID = method.ID
	report.MethodName = method.Name

	configs, err := p.store.ListPosConfigs(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to list POS configs: %w", err)
	}

	for _, cfg := range configs {
		linked, err := p.store.LinkedPaymentMethodIDs(ctx, cfg.ID)
		if err != nil {
			return report, fmt.Errorf("failed to read payment methods of config %d: %w", cfg.ID, err)
		}
		if slices.Contains(linked, method.ID) {
			report.Skipped = append(report.Skipped, cfg.ID)
			continue
		}
		if err := p.store.LinkPaymentMethod(ctx, cfg.ID, method.ID); err != nil {
			return report, fmt.Errorf("failed to link payment method to config %d: %w", cfg.ID, err)
		}
		report.Linked = append(report.Linked, cfg.ID)
	}

	p.logger.WithFields(logrus.Fields{
		"payment_method_id": method.ID,
		"created":           report.Created,
		"linked":            len(report.Linked),
		"skipped":           len(report.Skipped),
	}).Info("Provisioned LBP payment method")

	return report, nil
}
