// Package fixtures seeds users, employees and POS configurations from a YAML file.
package fixtures

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/codetroops/pos-lebanon/internal/auth"
	"github.com/codetroops/pos-lebanon/internal/models"
	"github.com/codetroops/pos-lebanon/internal/storage"
)

// UserFixture is a user entry in the fixtures file
type UserFixture struct {
	Login    string `yaml:"login"`
	Name     string `yaml:"name"`
	Password string `yaml:"password"` // plaintext, or an existing "$pbkdf2-sha512$..." hash
	Active   *bool  `yaml:"active"`
	Employee string `yaml:"employee"` // name of a linked employee, if any
}

// ConfigFixture is a POS configuration entry in the fixtures file
type ConfigFixture struct {
	Name            string   `yaml:"name"`
	LBPUSDRate      *float64 `yaml:"lbp_usd_rate"`
	DisplayLBPTotal *bool    `yaml:"display_lbp_total"`
}

// File is the structure of a fixtures YAML file
type File struct {
	Users      []UserFixture   `yaml:"users"`
	Employees  []string        `yaml:"employees"` // employees without a user
	PosConfigs []ConfigFixture `yaml:"pos_configs"`
}

// Summary counts the records created by Apply
type Summary struct {
	Users      int
	Employees  int
	PosConfigs int
}

// Parse decodes fixtures YAML
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures (invalid YAML syntax): %w", err)
	}
	return &f, nil
}

// LoadFile reads and decodes a fixtures file
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures file: %w", err)
	}
	return Parse(data)
}

// Apply inserts every fixture into store. Plaintext passwords are hashed with crypt.
func Apply(ctx context.Context, f *File, store storage.Store, crypt *auth.CryptContext, logger logrus.FieldLogger) (Summary, error) {
	var summary Summary

	for _, uf := range f.Users {
		if err := models.ValidateLogin(uf.Login); err != nil {
			return summary, err
		}
		name := uf.Name
		if name == "" {
			name = uf.Login
		}

		hash := uf.Password
		if hash != "" && !strings.HasPrefix(hash, "$") {
			var err error
			hash, err = crypt.Hash(uf.Password)
			if err != nil {
				return summary, fmt.Errorf("failed to hash password for %q: %w", uf.Login, err)
			}
		}

		user := models.NewUser(uf.Login, name, hash)
		if uf.Active != nil {
			user.Active = *uf.Active
		}
		if err := store.CreateUser(ctx, user); err != nil {
			return summary, fmt.Errorf("failed to create user %q: %w", uf.Login, err)
		}
		summary.Users++

		if uf.Employee != "" {
			if err := store.CreateEmployee(ctx, models.NewEmployee(uf.Employee, &user.ID)); err != nil {
				return summary, fmt.Errorf("failed to create employee %q: %w", uf.Employee, err)
			}
			summary.Employees++
		}
	}

	for _, name := range f.Employees {
		if err := store.CreateEmployee(ctx, models.NewEmployee(name, nil)); err != nil {
			return summary, fmt.Errorf("failed to create employee %q: %w", name, err)
		}
		summary.Employees++
	}

	for _, cf := range f.PosConfigs {
		cfg := models.NewPosConfig(cf.Name)
		if cf.LBPUSDRate != nil {
			cfg.LBPUSDRate = *cf.LBPUSDRate
		}
		if cf.DisplayLBPTotal != nil {
			cfg.DisplayLBPTotal = *cf.DisplayLBPTotal
		}
		if err := models.ValidatePosConfig(cfg); err != nil {
			return summary, err
		}
		if err := store.CreatePosConfig(ctx, cfg); err != nil {
			return summary, fmt.Errorf("failed to create POS config %q: %w", cf.Name, err)
		}
		summary.PosConfigs++
	}

	logger.WithFields(logrus.Fields{
		"users":       summary.Users,
		"employees":   summary.Employees,
		"pos_configs": summary.PosConfigs,
	}).Info("Fixtures applied")

	return summary, nil
}
