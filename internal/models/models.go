package models

// DefaultLBPUSDRate is the exchange rate assigned to new POS configurations (1 USD = 89,500 LBP)
const DefaultLBPUSDRate = 89500.0

// DefaultLBPPaymentMethodName is the name of the cash payment method linked to every POS configuration
const DefaultLBPPaymentMethodName = "Cash (LBP)"

// User represents an account in the identity store
type User struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Login    string  `gorm:"uniqueIndex;not null" json:"login"`
	Name     string  `gorm:"not null" json:"name"`
	Password *string `gorm:"column:password" json:"-"` // pbkdf2-sha512 hash, NULL when unset
	Active   bool    `gorm:"not null" json:"active"`
}

// TableName keeps the identity store table name stable across backends
func (User) TableName() string {
	return "res_users"
}

// Employee represents an HR record that may be linked to a user
type Employee struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"not null" json:"name"`
	UserID *uint  `gorm:"index" json:"user_id,omitempty"`
	Active bool   `gorm:"not null" json:"active"`
}

// TableName keeps the HR store table name stable across backends
func (Employee) TableName() string {
	return "hr_employee"
}

// PaymentMethod represents a POS payment method
type PaymentMethod struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	IsCashCount bool   `gorm:"not null" json:"is_cash_count"`
}

// TableName keeps the payment method table name stable across backends
func (PaymentMethod) TableName() string {
	return "pos_payment_method"
}

// PosConfig represents a point-of-sale configuration with its dual-currency settings
type PosConfig struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	Name            string          `gorm:"not null" json:"name"`
	LBPUSDRate      float64         `gorm:"column:lbp_usd_rate;type:decimal(16,2);not null" json:"lbp_usd_rate"`
	DisplayLBPTotal bool            `gorm:"column:display_lbp_total;not null" json:"display_lbp_total"`
	PaymentMethods  []PaymentMethod `gorm:"many2many:pos_config_pos_payment_method_rel;joinForeignKey:PosConfigID;joinReferences:PosPaymentMethodID" json:"payment_methods,omitempty"`
}

// TableName keeps the POS configuration table name stable across backends
func (PosConfig) TableName() string {
	return "pos_config"
}

// PaymentMethodIDs returns the ids of the linked payment methods
func (c *PosConfig) PaymentMethodIDs() []uint {
	ids := make([]uint, 0, len(c.PaymentMethods))
	for _, m := range c.PaymentMethods {
		ids = append(ids, m.ID)
	}
	return ids
}

// CurrencySettings is the editable dual-currency part of a POS configuration
type CurrencySettings struct {
	LBPUSDRate      float64 `json:"lbp_usd_rate"`
	DisplayLBPTotal bool    `json:"display_lbp_total"`
}

// NewUser creates an active user. An empty passwordHash leaves the password unset.
func NewUser(login, name, passwordHash string) *User {
	u := &User{
		Login:  login,
		Name:   name,
		Active: true,
	}
	if passwordHash != "" {
		u.Password = &passwordHash
	}
	return u
}

// NewEmployee creates an active employee, optionally linked to a user
func NewEmployee(name string, userID *uint) *Employee {
	return &Employee{
		Name:   name,
		UserID: userID,
		Active: true,
	}
}

// NewPosConfig creates a POS configuration with the default dual-currency settings
func NewPosConfig(name string) *PosConfig {
	return &PosConfig{
		Name:            name,
		LBPUSDRate:      DefaultLBPUSDRate,
		DisplayLBPTotal: true,
	}
}

// NewLBPPaymentMethod creates the cash-equivalent LBP payment method
func NewLBPPaymentMethod(name string) *PaymentMethod {
	if name == "" {
		name = DefaultLBPPaymentMethodName
	}
	return &PaymentMethod{
		Name:        name,
		IsCashCount: true,
	}
}
