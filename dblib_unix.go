//go:build !windows

package tds

import (
	"github.com/ebitengine/purego"
)

// loadSharedLibrary loads db-lib on Unix-like systems
func loadSharedLibrary(libPath string) (uintptr, error) {
	return purego.Dlopen(libPath, purego.RTLD_NOW|purego.RTLD_GLOBAL)
}
