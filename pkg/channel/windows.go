//go:build windows

package channel

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Device interface class GUID published by the bus driver.
var busInterfaceGUID = windows.GUID{
	Data1: 0x96E42B22, Data2: 0xF5E9, Data3: 0x42F8,
	Data4: [8]byte{0xB0, 0x43, 0xED, 0x0F, 0x93, 0x2F, 0x01, 0x4F},
}

var (
	cfgmgr32                        = windows.NewLazySystemDLL("cfgmgr32.dll")
	procGetDeviceInterfaceListSizeW = cfgmgr32.NewProc("CM_Get_Device_Interface_List_SizeW")
	procGetDeviceInterfaceListW     = cfgmgr32.NewProc("CM_Get_Device_Interface_ListW")
)

const cmGetDeviceInterfaceListPresent = 0

// DiscoverPaths lists the device interface paths of all present bus instances.
// An empty list means the driver is not installed or not running.
func DiscoverPaths() ([]string, error) {
	var size uint32
	ret, _, _ := procGetDeviceInterfaceListSizeW.Call(
		uintptr(unsafe.Pointer(&size)),
		uintptr(unsafe.Pointer(&busInterfaceGUID)),
		0,
		cmGetDeviceInterfaceListPresent)
	if ret != 0 {
		return nil, fmt.Errorf("%w: CM_Get_Device_Interface_List_Size: CR 0x%x", ErrNotFound, ret)
	}
	if size <= 1 {
		return nil, ErrNotFound
	}
	buf := make([]uint16, size)
	ret, _, _ = procGetDeviceInterfaceListW.Call(
		uintptr(unsafe.Pointer(&busInterfaceGUID)),
		0,
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(size),
		cmGetDeviceInterfaceListPresent)
	if ret != 0 {
		return nil, fmt.Errorf("%w: CM_Get_Device_Interface_List: CR 0x%x", ErrNotFound, ret)
	}

	// REG_MULTI_SZ: NUL separated paths with a trailing empty string.
	var paths []string
	start := 0
	for i, c := range buf {
		if c != 0 {
			continue
		}
		if i > start {
			paths = append(paths, windows.UTF16ToString(buf[start:i]))
		}
		start = i + 1
	}
	if len(paths) == 0 {
		return nil, ErrNotFound
	}
	return paths, nil
}

// Open opens the bus device node at path for overlapped control I/O.
func Open(path string) (Conn, error) {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, err
	}
	h, err := windows.CreateFile(p,
		windows.GENERIC_READ|windows.GENERIC_WRITE,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE,
		nil,
		windows.OPEN_EXISTING,
		windows.FILE_ATTRIBUTE_NORMAL|windows.FILE_FLAG_NO_BUFFERING|windows.FILE_FLAG_WRITE_THROUGH|windows.FILE_FLAG_OVERLAPPED,
		0)
	if err != nil {
		if errors.Is(err, windows.ERROR_FILE_NOT_FOUND) || errors.Is(err, windows.ERROR_PATH_NOT_FOUND) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("channel: open %s: %w", path, err)
	}
	return &deviceConn{handle: h}, nil
}

type deviceConn struct {
	handle windows.Handle
	closed atomic.Bool
}

func (c *deviceConn) Control(code uint32, in, out []byte) error {
	if c.closed.Load() {
		return ErrClosed
	}
	event, err := windows.CreateEvent(nil, 0, 0, nil)
	if err != nil {
		return fmt.Errorf("channel: create event: %w", err)
	}
	defer windows.CloseHandle(event)

	ov := windows.Overlapped{HEvent: event}
	var transferred uint32
	err = windows.DeviceIoControl(c.handle, code,
		bufPtr(in), uint32(len(in)),
		bufPtr(out), uint32(len(out)),
		&transferred, &ov)
	if err != nil && !errors.Is(err, windows.ERROR_IO_PENDING) {
		return mapWinError(err)
	}
	if err := windows.GetOverlappedResult(c.handle, &ov, &transferred, true); err != nil {
		return mapWinError(err)
	}
	return nil
}

func (c *deviceConn) Await(ctx context.Context, code uint32, buf []byte) ([]byte, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	event, err := windows.CreateEvent(nil, 0, 0, nil)
	if err != nil {
		return nil, fmt.Errorf("channel: create event: %w", err)
	}
	defer windows.CloseHandle(event)

	ov := windows.Overlapped{HEvent: event}
	var transferred uint32
	err = windows.DeviceIoControl(c.handle, code,
		bufPtr(buf), uint32(len(buf)),
		bufPtr(buf), uint32(len(buf)),
		&transferred, &ov)
	if err != nil && !errors.Is(err, windows.ERROR_IO_PENDING) {
		return nil, mapWinError(err)
	}

	done := make(chan error, 1)
	go func() {
		done <- windows.GetOverlappedResult(c.handle, &ov, &transferred, true)
	}()

	select {
	case err := <-done:
		if err != nil {
			return nil, mapWinError(err)
		}
		return buf, nil
	case <-ctx.Done():
		// Abort the pending request, then reap the waiter so ov and buf
		// stay referenced until the kernel is done with them.
		_ = windows.CancelIoEx(c.handle, &ov)
		<-done
		return nil, ctx.Err()
	}
}

func (c *deviceConn) Close() error {
	if c.closed.Swap(true) {
		return nil
	}
	// Abort anything still pending against this handle.
	_ = windows.CancelIoEx(c.handle, nil)
	return windows.CloseHandle(c.handle)
}

func bufPtr(b []byte) *byte {
	if len(b) == 0 {
		return nil
	}
	return &b[0]
}

func mapWinError(err error) error {
	switch {
	case errors.Is(err, windows.ERROR_DEV_NOT_EXIST):
		return ErrNotReady
	case errors.Is(err, windows.ERROR_OPERATION_ABORTED),
		errors.Is(err, windows.ERROR_INVALID_HANDLE),
		errors.Is(err, windows.ERROR_BAD_COMMAND):
		return fmt.Errorf("%w: %v", ErrReset, err)
	case errors.Is(err, windows.ERROR_INVALID_PARAMETER),
		errors.Is(err, windows.ERROR_ACCESS_DENIED),
		errors.Is(err, windows.ERROR_NO_SYSTEM_RESOURCES),
		errors.Is(err, windows.ERROR_INVALID_DEVICE_OBJECT_PARAMETER):
		return fmt.Errorf("%w: %v", ErrRejected, err)
	default:
		return fmt.Errorf("%w: %v", ErrReset, err)
	}
}
