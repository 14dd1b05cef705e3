//go:build !windows

package cmd

import "errors"

type driverInfo struct {
	ImagePath string
	StartMode string
}

func driverStatus() (*driverInfo, error) {
	return nil, errors.New("driver service inspection requires windows")
}
