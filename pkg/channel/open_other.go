//go:build !windows

package channel

// Open fails on platforms without the bus driver. The rest of the module
// stays buildable everywhere so the protocol layer can be tested against a
// fake Conn.
func Open(path string) (Conn, error) {
	return nil, ErrUnsupported
}

// DiscoverPaths fails on platforms without the bus driver.
func DiscoverPaths() ([]string, error) {
	return nil, ErrUnsupported
}
