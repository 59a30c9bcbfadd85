package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Category selects which equipment type a product wraps. Stored as a smallint.
type Category int

const (
	CategoryLaptop Category = iota
	CategoryMouse
	CategoryKeyboard
	CategoryServer
	CategoryDesktopPc
	CategoryAccessory
)

var categoryNames = map[Category]string{
	CategoryLaptop:    "laptop",
	CategoryMouse:     "mouse",
	CategoryKeyboard:  "keyboard",
	CategoryServer:    "server",
	CategoryDesktopPc: "desktop_pc",
	CategoryAccessory: "accessory",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("category(%d)", int(c))
}

func ParseCategory(s string) (Category, error) {
	for c, name := range categoryNames {
		if name == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", s)
}

func (c Category) MarshalJSON() ([]byte, error) { return json.Marshal(c.String()) }

func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseCategory(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Status tracks a product through its operational life. Stored as a smallint.
// Sold is terminal: it is set only by recording a sale and cannot be edited away.
type Status int

const (
	StatusAvailable Status = iota
	StatusAllocated
	StatusInService
	StatusRetired
	StatusSold
)

var statusNames = map[Status]string{
	StatusAvailable: "available",
	StatusAllocated: "allocated",
	StatusInService: "in_service",
	StatusRetired:   "retired",
	StatusSold:      "sold",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("status(%d)", int(s))
}

func ParseStatus(s string) (Status, error) {
	for st, name := range statusNames {
		if name == s {
			return st, nil
		}
	}
	return 0, fmt.Errorf("unknown status %q", s)
}

func (s Status) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Condition describes physical state. Stored as a smallint.
type Condition int

const (
	ConditionNew Condition = iota
	ConditionUsed
	ConditionRefurbished
)

var conditionNames = map[Condition]string{
	ConditionNew:         "new",
	ConditionUsed:        "used",
	ConditionRefurbished: "refurbished",
}

func (c Condition) String() string {
	if name, ok := conditionNames[c]; ok {
		return name
	}
	return fmt.Sprintf("condition(%d)", int(c))
}

func ParseCondition(s string) (Condition, error) {
	for c, name := range conditionNames {
		if name == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown condition %q", s)
}

func (c Condition) MarshalJSON() ([]byte, error) { return json.Marshal(c.String()) }

func (c *Condition) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseCondition(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Product is the canonical inventory unit. It owns exactly one equipment
// record whose concrete type matches Category.
type Product struct {
	ID              int        `json:"id"`
	Name            string     `json:"name"`
	Category        Category   `json:"category"`
	SKU             string     `json:"sku"`
	SerialNumber    string     `json:"serial_number"`
	Vendor          string     `json:"vendor,omitempty"`
	Brand           string     `json:"brand,omitempty"`
	Model           string     `json:"model,omitempty"`
	ModelNumber     string     `json:"model_number,omitempty"`
	Location        string     `json:"location,omitempty"`
	Status          Status     `json:"status"`
	Condition       Condition  `json:"condition"`
	PurchaseDate    *time.Time `json:"purchase_date,omitempty"`
	PurchasePrice   *float64   `json:"purchase_price,omitempty"`
	LastServiceDate *time.Time `json:"last_service_date,omitempty"`
	NextServiceDue  *time.Time `json:"next_service_due,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	AllocatedToID   *int       `json:"allocated_to_id,omitempty"`
	Equipment       Equipment  `json:"-"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// DisplayName mirrors how products are labelled throughout the app.
func (p Product) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	if p.SKU != "" {
		return p.SKU
	}
	return p.SerialNumber
}
