//go:build windows

package cmd

import (
	"golang.org/x/sys/windows/registry"
)

const driverServiceKey = `SYSTEM\CurrentControlSet\Services\ViGEmBus`

type driverInfo struct {
	ImagePath string
	StartMode string
}

// driverStatus reads the bus driver's service registration from the registry.
func driverStatus() (*driverInfo, error) {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, driverServiceKey, registry.QUERY_VALUE)
	if err != nil {
		return nil, err
	}
	defer key.Close()

	info := &driverInfo{StartMode: "unknown"}
	if path, _, err := key.GetStringValue("ImagePath"); err == nil {
		info.ImagePath = path
	}
	if start, _, err := key.GetIntegerValue("Start"); err == nil {
		switch start {
		case 0:
			info.StartMode = "boot"
		case 1:
			info.StartMode = "system"
		case 2:
			info.StartMode = "auto"
		case 3:
			info.StartMode = "demand"
		case 4:
			info.StartMode = "disabled"
		}
	}
	return info, nil
}
