package models

// Equipment is the type-specific specification payload owned by exactly one
// product. Concrete types carry a fixed attribute schema each.
type Equipment interface {
	EquipmentCategory() Category
	EquipmentID() int
	SetEquipmentID(id int)
}

type Laptop struct {
	ID                int    `json:"-"`
	CPU               string `json:"cpu,omitempty"`
	CPUGeneration     string `json:"cpu_generation,omitempty"`
	GPU               string `json:"gpu,omitempty"`
	RAMSize           string `json:"ram_size,omitempty"`
	RAMType           string `json:"ram_type,omitempty"`
	StorageCapacity   string `json:"storage_capacity,omitempty"`
	StorageType       string `json:"storage_type,omitempty"`
	ScreenSize        string `json:"screen_size,omitempty"`
	ScreenResolution  string `json:"screen_resolution,omitempty"`
	DisplayType       string `json:"display_type,omitempty"`
	KeyboardType      string `json:"keyboard_type,omitempty"`
	KeyboardBacklight bool   `json:"keyboard_backlight,omitempty"`
	BatteryCapacity   string `json:"battery_capacity,omitempty"`
	Webcam            bool   `json:"webcam,omitempty"`
	Microphone        bool   `json:"microphone,omitempty"`
	WifiType          string `json:"wifi_type,omitempty"`
	BluetoothVersion  string `json:"bluetooth_version,omitempty"`
	Ports             string `json:"ports,omitempty"`
	Weight            string `json:"weight,omitempty"`
	OperatingSystem   string `json:"operating_system,omitempty"`
	LicenseKey        string `json:"license_key,omitempty"`
}

func (l *Laptop) EquipmentCategory() Category { return CategoryLaptop }
func (l *Laptop) EquipmentID() int            { return l.ID }
func (l *Laptop) SetEquipmentID(id int)       { l.ID = id }

type Mouse struct {
	ID           int    `json:"-"`
	Connectivity string `json:"connectivity,omitempty"`
	DPI          int    `json:"dpi,omitempty"`
	Buttons      int    `json:"buttons,omitempty"`
	Color        string `json:"color,omitempty"`
	Rechargeable bool   `json:"rechargeable,omitempty"`
}

func (m *Mouse) EquipmentCategory() Category { return CategoryMouse }
func (m *Mouse) EquipmentID() int            { return m.ID }
func (m *Mouse) SetEquipmentID(id int)       { m.ID = id }

type Keyboard struct {
	ID           int    `json:"-"`
	Layout       string `json:"layout,omitempty"`
	SwitchType   string `json:"switch_type,omitempty"`
	Backlit      bool   `json:"backlit,omitempty"`
	Connectivity string `json:"connectivity,omitempty"`
	Wireless     bool   `json:"wireless,omitempty"`
}

func (k *Keyboard) EquipmentCategory() Category { return CategoryKeyboard }
func (k *Keyboard) EquipmentID() int            { return k.ID }
func (k *Keyboard) SetEquipmentID(id int)       { k.ID = id }

type Server struct {
	ID              int    `json:"-"`
	CPUModel        string `json:"cpu_model,omitempty"`
	CPUCount        int    `json:"cpu_count,omitempty"`
	RAMSize         string `json:"ram_size,omitempty"`
	StorageCapacity string `json:"storage_capacity,omitempty"`
	StorageType     string `json:"storage_type,omitempty"`
	RAIDLevel       string `json:"raid_level,omitempty"`
	OperatingSystem string `json:"operating_system,omitempty"`
	RackUnits       string `json:"rack_units,omitempty"`
}

func (s *Server) EquipmentCategory() Category { return CategoryServer }
func (s *Server) EquipmentID() int            { return s.ID }
func (s *Server) SetEquipmentID(id int)       { s.ID = id }

type DesktopPc struct {
	ID              int    `json:"-"`
	CPU             string `json:"cpu,omitempty"`
	RAMSize         string `json:"ram_size,omitempty"`
	StorageCapacity string `json:"storage_capacity,omitempty"`
	StorageType     string `json:"storage_type,omitempty"`
	GPU             string `json:"gpu,omitempty"`
	FormFactor      string `json:"form_factor,omitempty"`
}

func (d *DesktopPc) EquipmentCategory() Category { return CategoryDesktopPc }
func (d *DesktopPc) EquipmentID() int            { return d.ID }
func (d *DesktopPc) SetEquipmentID(id int)       { d.ID = id }

// Accessory covers catch-all items with no fixed hardware schema.
type Accessory struct {
	ID            int    `json:"-"`
	AccessoryType string `json:"accessory_type,omitempty"`
	Color         string `json:"color,omitempty"`
}

func (a *Accessory) EquipmentCategory() Category { return CategoryAccessory }
func (a *Accessory) EquipmentID() int            { return a.ID }
func (a *Accessory) SetEquipmentID(id int)       { a.ID = id }
