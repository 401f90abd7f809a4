//go:build windows

package tds

import (
	"syscall"
)

// loadSharedLibrary loads db-lib on Windows
func loadSharedLibrary(libPath string) (uintptr, error) {
	handle, err := syscall.LoadLibrary(libPath)
	if err != nil {
		return 0, err
	}
	return uintptr(handle), nil
}
