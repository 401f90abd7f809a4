package tds

import (
	"fmt"
	"os"
	"runtime"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
)

var (
	sybdbLib uintptr
	loadOnce sync.Once
	loadErr  error
)

// db-lib function pointers - populated by purego
var (
	dbinit         func() RETCODE
	dbversion      func() string
	dberrhandle    func(handler uintptr) uintptr
	dbmsghandle    func(handler uintptr) uintptr
	dblogin        func() uintptr
	dbloginfree    func(login uintptr)
	dbsetlname     func(login uintptr, value *byte, which int32) RETCODE
	dbsetlogintime func(seconds int32) RETCODE
	tdsdbopen      func(login uintptr, server *byte, msdblib int32) uintptr
	dbuse          func(dbproc uintptr, name *byte) RETCODE
	dbclose        func(dbproc uintptr)
	dbcmd          func(dbproc uintptr, cmd *byte) RETCODE
	dbsqlexec      func(dbproc uintptr) RETCODE
	dbresults      func(dbproc uintptr) RETCODE
	dbnumcols      func(dbproc uintptr) int32
	dbcolname      func(dbproc uintptr, column int32) string
	dbcoltype      func(dbproc uintptr, column int32) int32
	dbnextrow      func(dbproc uintptr) STATUS
	dbdata         func(dbproc uintptr, column int32) *byte
	dbdatlen       func(dbproc uintptr, column int32) DBINT
	dbconvert      func(dbproc uintptr, srctype int32, src *byte, srclen DBINT, desttype int32, dest *byte, destlen DBINT) DBINT
	dbanydatecrack func(dbproc uintptr, di *DBDATEREC2, datatype int32, data *byte) RETCODE
	dbcount        func(dbproc uintptr) DBINT
	dbcancel       func(dbproc uintptr) RETCODE
)

// getLibraryPath returns the platform-specific db-lib path.
// The GOTDS_LIBRARY_PATH environment variable can override the default path.
func getLibraryPath() string {
	if path := os.Getenv("GOTDS_LIBRARY_PATH"); path != "" {
		return path
	}

	switch runtime.GOOS {
	case "windows":
		return "sybdb.dll"
	case "darwin":
		paths := []string{
			"/opt/homebrew/lib/libsybdb.5.dylib", // Apple Silicon Homebrew
			"/usr/local/lib/libsybdb.5.dylib",    // Intel Homebrew
			"/opt/homebrew/lib/libsybdb.dylib",
			"/usr/local/lib/libsybdb.dylib",
		}
		for _, p := range paths {
			if _, err := os.Stat(p); err == nil {
				return p
			}
		}
		return "libsybdb.5.dylib"
	default:
		return "libsybdb.so.5"
	}
}

// loadDBLib loads FreeTDS db-lib and registers every function this package
// calls. If loading fails, set GOTDS_LIBRARY_PATH to the library location.
func loadDBLib() error {
	loadOnce.Do(func() {
		libPath := getLibraryPath()

		sybdbLib, loadErr = loadSharedLibrary(libPath)
		if loadErr != nil {
			loadErr = fmt.Errorf("failed to load db-lib %q: %w (set GOTDS_LIBRARY_PATH to override)", libPath, loadErr)
			return
		}

		purego.RegisterLibFunc(&dbinit, sybdbLib, "dbinit")
		purego.RegisterLibFunc(&dbversion, sybdbLib, "dbversion")
		purego.RegisterLibFunc(&dberrhandle, sybdbLib, "dberrhandle")
		purego.RegisterLibFunc(&dbmsghandle, sybdbLib, "dbmsghandle")

		// Login and session
		purego.RegisterLibFunc(&dblogin, sybdbLib, "dblogin")
		purego.RegisterLibFunc(&dbloginfree, sybdbLib, "dbloginfree")
		purego.RegisterLibFunc(&dbsetlname, sybdbLib, "dbsetlname")
		purego.RegisterLibFunc(&dbsetlogintime, sybdbLib, "dbsetlogintime")
		purego.RegisterLibFunc(&tdsdbopen, sybdbLib, "tdsdbopen")
		purego.RegisterLibFunc(&dbuse, sybdbLib, "dbuse")
		purego.RegisterLibFunc(&dbclose, sybdbLib, "dbclose")

		// Commands and results
		purego.RegisterLibFunc(&dbcmd, sybdbLib, "dbcmd")
		purego.RegisterLibFunc(&dbsqlexec, sybdbLib, "dbsqlexec")
		purego.RegisterLibFunc(&dbresults, sybdbLib, "dbresults")
		purego.RegisterLibFunc(&dbnumcols, sybdbLib, "dbnumcols")
		purego.RegisterLibFunc(&dbcolname, sybdbLib, "dbcolname")
		purego.RegisterLibFunc(&dbcoltype, sybdbLib, "dbcoltype")
		purego.RegisterLibFunc(&dbnextrow, sybdbLib, "dbnextrow")
		purego.RegisterLibFunc(&dbdata, sybdbLib, "dbdata")
		purego.RegisterLibFunc(&dbdatlen, sybdbLib, "dbdatlen")
		purego.RegisterLibFunc(&dbconvert, sybdbLib, "dbconvert")
		purego.RegisterLibFunc(&dbanydatecrack, sybdbLib, "dbanydatecrack")
		purego.RegisterLibFunc(&dbcount, sybdbLib, "dbcount")
		purego.RegisterLibFunc(&dbcancel, sybdbLib, "dbcancel")
	})
	return loadErr
}

// LibraryVersion returns the db-lib version string, or "Unknown Version" if
// the library cannot be loaded.
func LibraryVersion() string {
	if err := loadDBLib(); err != nil {
		return "Unknown Version"
	}
	if v := dbversion(); v != "" {
		return v
	}
	return "Unknown Version"
}

// cString returns s as a NUL-terminated byte slice
func cString(s string) []byte {
	return append([]byte(s), 0)
}

// goString copies a NUL-terminated C string
func goString(p *byte) string {
	if p == nil {
		return ""
	}
	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return string(unsafe.Slice(p, n))
}

// goBytes views n bytes at p. The result aliases native memory and is only
// valid until the next db-lib call on the same connection.
func goBytes(p *byte, n int) []byte {
	if p == nil || n <= 0 {
		return nil
	}
	return unsafe.Slice(p, n)
}
