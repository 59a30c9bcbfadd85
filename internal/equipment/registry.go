// Package equipment maps a product category to the handler that knows how to
// build, validate, and project that category's specification record.
package equipment

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ditservices/asset-tracker/internal/models"
)

var ErrUnknownCategory = errors.New("unknown equipment category")

type FieldError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

type requiredField struct {
	name  string
	blank func(models.Equipment) bool
}

// Handler knows one category's schema: construction, the permitted input
// fields (enforced by strict JSON decoding against the concrete type), the
// required subset, and the compacted output projection.
type Handler struct {
	category models.Category
	build    func() models.Equipment
	required []requiredField
}

func (h *Handler) Category() models.Category { return h.category }

func (h *Handler) New() models.Equipment { return h.build() }

// Decode builds a fresh equipment record from raw specification JSON.
// Fields outside the category's schema are rejected.
func (h *Handler) Decode(raw json.RawMessage) (models.Equipment, error) {
	eq := h.build()
	if len(raw) == 0 {
		return eq, nil
	}
	if err := h.Apply(eq, raw); err != nil {
		return nil, err
	}
	return eq, nil
}

// Apply merges raw specification JSON into an existing record. Absent fields
// keep their current values.
func (h *Handler) Apply(eq models.Equipment, raw json.RawMessage) error {
	if eq.EquipmentCategory() != h.category {
		return fmt.Errorf("equipment is %s, handler is %s", eq.EquipmentCategory(), h.category)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(eq); err != nil {
		return fmt.Errorf("invalid %s specifications: %w", h.category, err)
	}
	return nil
}

// Validate checks the category's required fields.
func (h *Handler) Validate(eq models.Equipment) []FieldError {
	var errs []FieldError
	for _, f := range h.required {
		if f.blank(eq) {
			errs = append(errs, FieldError{Field: f.name, Description: f.name + " is required"})
		}
	}
	return errs
}

// Project flattens the record into a key-value map with zero-valued fields
// omitted, ready for API serialization.
func (h *Handler) Project(eq models.Equipment) map[string]any {
	out := map[string]any{}
	data, err := json.Marshal(eq)
	if err != nil {
		return out
	}
	_ = json.Unmarshal(data, &out)
	return out
}

var registry = map[models.Category]*Handler{
	models.CategoryLaptop: {
		category: models.CategoryLaptop,
		build:    func() models.Equipment { return &models.Laptop{} },
		required: []requiredField{
			{"cpu", func(e models.Equipment) bool { return e.(*models.Laptop).CPU == "" }},
			{"ram_size", func(e models.Equipment) bool { return e.(*models.Laptop).RAMSize == "" }},
			{"storage_capacity", func(e models.Equipment) bool { return e.(*models.Laptop).StorageCapacity == "" }},
		},
	},
	models.CategoryMouse: {
		category: models.CategoryMouse,
		build:    func() models.Equipment { return &models.Mouse{} },
		required: []requiredField{
			{"connectivity", func(e models.Equipment) bool { return e.(*models.Mouse).Connectivity == "" }},
			{"dpi", func(e models.Equipment) bool { return e.(*models.Mouse).DPI == 0 }},
		},
	},
	models.CategoryKeyboard: {
		category: models.CategoryKeyboard,
		build:    func() models.Equipment { return &models.Keyboard{} },
		required: []requiredField{
			{"layout", func(e models.Equipment) bool { return e.(*models.Keyboard).Layout == "" }},
			{"connectivity", func(e models.Equipment) bool { return e.(*models.Keyboard).Connectivity == "" }},
		},
	},
	models.CategoryServer: {
		category: models.CategoryServer,
		build:    func() models.Equipment { return &models.Server{} },
		required: []requiredField{
			{"cpu_model", func(e models.Equipment) bool { return e.(*models.Server).CPUModel == "" }},
			{"ram_size", func(e models.Equipment) bool { return e.(*models.Server).RAMSize == "" }},
			{"storage_capacity", func(e models.Equipment) bool { return e.(*models.Server).StorageCapacity == "" }},
		},
	},
	models.CategoryDesktopPc: {
		category: models.CategoryDesktopPc,
		build:    func() models.Equipment { return &models.DesktopPc{} },
		required: []requiredField{
			{"cpu", func(e models.Equipment) bool { return e.(*models.DesktopPc).CPU == "" }},
			{"ram_size", func(e models.Equipment) bool { return e.(*models.DesktopPc).RAMSize == "" }},
			{"storage_capacity", func(e models.Equipment) bool { return e.(*models.DesktopPc).StorageCapacity == "" }},
		},
	},
	models.CategoryAccessory: {
		category: models.CategoryAccessory,
		build:    func() models.Equipment { return &models.Accessory{} },
	},
}

// Lookup returns the handler for a category.
func Lookup(category models.Category) (*Handler, error) {
	h, ok := registry[category]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	return h, nil
}

// LookupName resolves a category tag string to its handler.
func LookupName(name string) (*Handler, error) {
	category, err := models.ParseCategory(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
	}
	return Lookup(category)
}
