package equipment

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/ditservices/asset-tracker/internal/models"
)

func TestLookupName_AllCategories(t *testing.T) {
	for _, name := range []string{"laptop", "mouse", "keyboard", "server", "desktop_pc", "accessory"} {
		h, err := LookupName(name)
		if err != nil {
			t.Fatalf("LookupName(%q): %v", name, err)
		}
		if h.Category().String() != name {
			t.Errorf("handler for %q reports category %q", name, h.Category())
		}
		if h.New().EquipmentCategory() != h.Category() {
			t.Errorf("New() for %q builds mismatched equipment", name)
		}
	}
}

func TestLookupName_Unknown(t *testing.T) {
	_, err := LookupName("laptop; DROP TABLE products")
	if !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestDecode_RejectsUnknownFields(t *testing.T) {
	h, _ := Lookup(models.CategoryMouse)
	_, err := h.Decode(json.RawMessage(`{"connectivity":"usb","dpi":1600,"cpu":"i7"}`))
	if err == nil {
		t.Fatal("expected decode error for field outside the mouse schema")
	}
}

func TestValidate_RequiredFields(t *testing.T) {
	tests := []struct {
		category models.Category
		raw      string
		missing  []string
	}{
		{models.CategoryLaptop, `{"cpu":"i5"}`, []string{"ram_size", "storage_capacity"}},
		{models.CategoryLaptop, `{"cpu":"i5","ram_size":"16GB","storage_capacity":"512GB"}`, nil},
		{models.CategoryMouse, `{"color":"black"}`, []string{"connectivity", "dpi"}},
		{models.CategoryKeyboard, `{"layout":"ISO"}`, []string{"connectivity"}},
		{models.CategoryServer, `{"cpu_model":"EPYC 7543"}`, []string{"ram_size", "storage_capacity"}},
		{models.CategoryDesktopPc, `{"cpu":"Ryzen 7","ram_size":"32GB","storage_capacity":"1TB"}`, nil},
		{models.CategoryAccessory, `{}`, nil},
	}

	for _, tt := range tests {
		h, err := Lookup(tt.category)
		if err != nil {
			t.Fatalf("Lookup(%s): %v", tt.category, err)
		}
		eq, err := h.Decode(json.RawMessage(tt.raw))
		if err != nil {
			t.Fatalf("Decode(%s): %v", tt.category, err)
		}
		errs := h.Validate(eq)
		if len(errs) != len(tt.missing) {
			t.Fatalf("%s: expected %d validation errors, got %v", tt.category, len(tt.missing), errs)
		}
		for i, field := range tt.missing {
			if errs[i].Field != field {
				t.Errorf("%s: expected error on %q, got %q", tt.category, field, errs[i].Field)
			}
		}
	}
}

func TestProject_OmitsEmptyFields(t *testing.T) {
	h, _ := Lookup(models.CategoryLaptop)
	eq, err := h.Decode(json.RawMessage(`{"cpu":"i5","ram_size":"16GB","storage_capacity":"512GB"}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	specs := h.Project(eq)
	if len(specs) != 3 {
		t.Fatalf("expected 3 populated fields, got %d: %v", len(specs), specs)
	}
	if specs["cpu"] != "i5" {
		t.Errorf("expected cpu 'i5', got %v", specs["cpu"])
	}
	if _, present := specs["gpu"]; present {
		t.Error("empty gpu field should be omitted from projection")
	}
}

func TestApply_MergesIntoExisting(t *testing.T) {
	h, _ := Lookup(models.CategoryServer)
	eq, _ := h.Decode(json.RawMessage(`{"cpu_model":"Xeon Silver","ram_size":"64GB","storage_capacity":"4TB"}`))

	if err := h.Apply(eq, json.RawMessage(`{"ram_size":"128GB"}`)); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	srv := eq.(*models.Server)
	if srv.RAMSize != "128GB" {
		t.Errorf("expected ram_size updated to 128GB, got %q", srv.RAMSize)
	}
	if srv.CPUModel != "Xeon Silver" {
		t.Errorf("untouched field changed: %q", srv.CPUModel)
	}
}
