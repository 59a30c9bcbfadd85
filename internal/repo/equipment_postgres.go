package repo

import (
	"context"
	"fmt"

	"github.com/ditservices/asset-tracker/internal/models"
)

func equipmentTable(category models.Category) string {
	switch category {
	case models.CategoryLaptop:
		return "laptops"
	case models.CategoryMouse:
		return "mice"
	case models.CategoryKeyboard:
		return "keyboards"
	case models.CategoryServer:
		return "servers"
	case models.CategoryDesktopPc:
		return "desktop_pcs"
	case models.CategoryAccessory:
		return "accessories"
	}
	return ""
}

func insertEquipment(ctx context.Context, q dbtx, eq models.Equipment) error {
	var (
		query string
		args  []any
	)

	switch e := eq.(type) {
	case *models.Laptop:
		query = `INSERT INTO laptops (cpu, cpu_generation, gpu, ram_size, ram_type,
			storage_capacity, storage_type, screen_size, screen_resolution, display_type,
			keyboard_type, keyboard_backlight, battery_capacity, webcam, microphone,
			wifi_type, bluetooth_version, ports, weight, operating_system, license_key)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)
			RETURNING id`
		args = []any{e.CPU, e.CPUGeneration, e.GPU, e.RAMSize, e.RAMType,
			e.StorageCapacity, e.StorageType, e.ScreenSize, e.ScreenResolution, e.DisplayType,
			e.KeyboardType, e.KeyboardBacklight, e.BatteryCapacity, e.Webcam, e.Microphone,
			e.WifiType, e.BluetoothVersion, e.Ports, e.Weight, e.OperatingSystem, e.LicenseKey}
	case *models.Mouse:
		query = `INSERT INTO mice (connectivity, dpi, buttons, color, rechargeable)
			VALUES ($1,$2,$3,$4,$5) RETURNING id`
		args = []any{e.Connectivity, e.DPI, e.Buttons, e.Color, e.Rechargeable}
	case *models.Keyboard:
		query = `INSERT INTO keyboards (layout, switch_type, backlit, connectivity, wireless)
			VALUES ($1,$2,$3,$4,$5) RETURNING id`
		args = []any{e.Layout, e.SwitchType, e.Backlit, e.Connectivity, e.Wireless}
	case *models.Server:
		query = `INSERT INTO servers (cpu_model, cpu_count, ram_size, storage_capacity,
			storage_type, raid_level, operating_system, rack_units)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8) RETURNING id`
		args = []any{e.CPUModel, e.CPUCount, e.RAMSize, e.StorageCapacity,
			e.StorageType, e.RAIDLevel, e.OperatingSystem, e.RackUnits}
	case *models.DesktopPc:
		query = `INSERT INTO desktop_pcs (cpu, ram_size, storage_capacity, storage_type, gpu, form_factor)
			VALUES ($1,$2,$3,$4,$5,$6) RETURNING id`
		args = []any{e.CPU, e.RAMSize, e.StorageCapacity, e.StorageType, e.GPU, e.FormFactor}
	case *models.Accessory:
		query = `INSERT INTO accessories (accessory_type, color) VALUES ($1,$2) RETURNING id`
		args = []any{e.AccessoryType, e.Color}
	default:
		return fmt.Errorf("unsupported equipment type %T", eq)
	}

	var id int
	if err := q.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return err
	}
	eq.SetEquipmentID(id)
	return nil
}

func updateEquipment(ctx context.Context, q dbtx, eq models.Equipment) error {
	var (
		query string
		args  []any
	)

	switch e := eq.(type) {
	case *models.Laptop:
		query = `UPDATE laptops SET cpu=$1, cpu_generation=$2, gpu=$3, ram_size=$4, ram_type=$5,
			storage_capacity=$6, storage_type=$7, screen_size=$8, screen_resolution=$9, display_type=$10,
			keyboard_type=$11, keyboard_backlight=$12, battery_capacity=$13, webcam=$14, microphone=$15,
			wifi_type=$16, bluetooth_version=$17, ports=$18, weight=$19, operating_system=$20, license_key=$21
			WHERE id=$22`
		args = []any{e.CPU, e.CPUGeneration, e.GPU, e.RAMSize, e.RAMType,
			e.StorageCapacity, e.StorageType, e.ScreenSize, e.ScreenResolution, e.DisplayType,
			e.KeyboardType, e.KeyboardBacklight, e.BatteryCapacity, e.Webcam, e.Microphone,
			e.WifiType, e.BluetoothVersion, e.Ports, e.Weight, e.OperatingSystem, e.LicenseKey, e.ID}
	case *models.Mouse:
		query = `UPDATE mice SET connectivity=$1, dpi=$2, buttons=$3, color=$4, rechargeable=$5 WHERE id=$6`
		args = []any{e.Connectivity, e.DPI, e.Buttons, e.Color, e.Rechargeable, e.ID}
	case *models.Keyboard:
		query = `UPDATE keyboards SET layout=$1, switch_type=$2, backlit=$3, connectivity=$4, wireless=$5 WHERE id=$6`
		args = []any{e.Layout, e.SwitchType, e.Backlit, e.Connectivity, e.Wireless, e.ID}
	case *models.Server:
		query = `UPDATE servers SET cpu_model=$1, cpu_count=$2, ram_size=$3, storage_capacity=$4,
			storage_type=$5, raid_level=$6, operating_system=$7, rack_units=$8 WHERE id=$9`
		args = []any{e.CPUModel, e.CPUCount, e.RAMSize, e.StorageCapacity,
			e.StorageType, e.RAIDLevel, e.OperatingSystem, e.RackUnits, e.ID}
	case *models.DesktopPc:
		query = `UPDATE desktop_pcs SET cpu=$1, ram_size=$2, storage_capacity=$3, storage_type=$4,
			gpu=$5, form_factor=$6 WHERE id=$7`
		args = []any{e.CPU, e.RAMSize, e.StorageCapacity, e.StorageType, e.GPU, e.FormFactor, e.ID}
	case *models.Accessory:
		query = `UPDATE accessories SET accessory_type=$1, color=$2 WHERE id=$3`
		args = []any{e.AccessoryType, e.Color, e.ID}
	default:
		return fmt.Errorf("unsupported equipment type %T", eq)
	}

	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return fmt.Errorf("equipment row %d not found for %T", eq.EquipmentID(), eq)
	}
	return nil
}

func getEquipment(ctx context.Context, q dbtx, category models.Category, id int) (models.Equipment, error) {
	switch category {
	case models.CategoryLaptop:
		e := &models.Laptop{}
		err := q.QueryRowContext(ctx, `SELECT id, cpu, cpu_generation, gpu, ram_size, ram_type,
			storage_capacity, storage_type, screen_size, screen_resolution, display_type,
			keyboard_type, keyboard_backlight, battery_capacity, webcam, microphone,
			wifi_type, bluetooth_version, ports, weight, operating_system, license_key
			FROM laptops WHERE id=$1`, id).
			Scan(&e.ID, &e.CPU, &e.CPUGeneration, &e.GPU, &e.RAMSize, &e.RAMType,
				&e.StorageCapacity, &e.StorageType, &e.ScreenSize, &e.ScreenResolution, &e.DisplayType,
				&e.KeyboardType, &e.KeyboardBacklight, &e.BatteryCapacity, &e.Webcam, &e.Microphone,
				&e.WifiType, &e.BluetoothVersion, &e.Ports, &e.Weight, &e.OperatingSystem, &e.LicenseKey)
		return e, err
	case models.CategoryMouse:
		e := &models.Mouse{}
		err := q.QueryRowContext(ctx, `SELECT id, connectivity, dpi, buttons, color, rechargeable
			FROM mice WHERE id=$1`, id).
			Scan(&e.ID, &e.Connectivity, &e.DPI, &e.Buttons, &e.Color, &e.Rechargeable)
		return e, err
	case models.CategoryKeyboard:
		e := &models.Keyboard{}
		err := q.QueryRowContext(ctx, `SELECT id, layout, switch_type, backlit, connectivity, wireless
			FROM keyboards WHERE id=$1`, id).
			Scan(&e.ID, &e.Layout, &e.SwitchType, &e.Backlit, &e.Connectivity, &e.Wireless)
		return e, err
	case models.CategoryServer:
		e := &models.Server{}
		err := q.QueryRowContext(ctx, `SELECT id, cpu_model, cpu_count, ram_size, storage_capacity,
			storage_type, raid_level, operating_system, rack_units FROM servers WHERE id=$1`, id).
			Scan(&e.ID, &e.CPUModel, &e.CPUCount, &e.RAMSize, &e.StorageCapacity,
				&e.StorageType, &e.RAIDLevel, &e.OperatingSystem, &e.RackUnits)
		return e, err
	case models.CategoryDesktopPc:
		e := &models.DesktopPc{}
		err := q.QueryRowContext(ctx, `SELECT id, cpu, ram_size, storage_capacity, storage_type,
			gpu, form_factor FROM desktop_pcs WHERE id=$1`, id).
			Scan(&e.ID, &e.CPU, &e.RAMSize, &e.StorageCapacity, &e.StorageType, &e.GPU, &e.FormFactor)
		return e, err
	case models.CategoryAccessory:
		e := &models.Accessory{}
		err := q.QueryRowContext(ctx, `SELECT id, accessory_type, color FROM accessories WHERE id=$1`, id).
			Scan(&e.ID, &e.AccessoryType, &e.Color)
		return e, err
	}
	return nil, fmt.Errorf("unsupported category %s", category)
}

func deleteEquipment(ctx context.Context, q dbtx, category models.Category, id int) error {
	table := equipmentTable(category)
	if table == "" {
		return fmt.Errorf("unsupported category %s", category)
	}
	_, err := q.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id=$1", table), id)
	return err
}
