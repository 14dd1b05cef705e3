package cmd

import (
	"log/slog"
)

// Status reports whether the bus driver is installed and reachable.
type Status struct {
	Bus `embed:""`
}

func (s *Status) Run(logger *slog.Logger) error {
	if info, err := driverStatus(); err != nil {
		logger.Warn("driver service not found", "error", err)
	} else {
		logger.Info("driver service installed",
			"image", info.ImagePath, "start", info.StartMode)
	}

	client, err := s.connect(logger)
	if err != nil {
		logger.Error("bus unreachable", "error", err)
		return err
	}
	defer client.Close()

	logger.Info("bus reachable", "protocol", client.Version())
	return nil
}
