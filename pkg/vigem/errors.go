package vigem

import "errors"

var (
	// ErrDriverUnavailable means no bus device node could be opened: the
	// driver is not installed or not running. Not retryable without
	// operator intervention.
	ErrDriverUnavailable = errors.New("vigem: bus driver unavailable")

	// ErrDriverRejected means the driver declined an operation, e.g. due to
	// resource limits. The caller may retry or change parameters.
	ErrDriverRejected = errors.New("vigem: rejected by driver")

	// ErrNoFreeSlot means the driver has no room for another target.
	ErrNoFreeSlot = errors.New("vigem: no free slot")

	// ErrReadyTimeout means a readiness wait exceeded its bound. The target
	// stays in PluggedIn and the wait may be retried.
	ErrReadyTimeout = errors.New("vigem: timed out waiting for device ready")

	// ErrNotPluggedIn means the operation needs a plugged-in target.
	ErrNotPluggedIn = errors.New("vigem: target not plugged in")

	// ErrAlreadyPluggedIn is returned by Plugin on a target that already
	// holds a driver-side device.
	ErrAlreadyPluggedIn = errors.New("vigem: target already plugged in")

	// ErrAlreadyUnplugged is returned for any operation on an unplugged
	// target.
	ErrAlreadyUnplugged = errors.New("vigem: target already unplugged")

	// ErrTargetNotReady means an update was submitted before the target
	// reached the Ready state.
	ErrTargetNotReady = errors.New("vigem: target not ready")

	// ErrConnectionLost means the channel to the driver failed after
	// connect. Fatal for the client and every target created from it.
	ErrConnectionLost = errors.New("vigem: connection to bus driver lost")

	// ErrListenerActive is returned when a second feedback listener is
	// started on the same target.
	ErrListenerActive = errors.New("vigem: feedback listener already active")
)
