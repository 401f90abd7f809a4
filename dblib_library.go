package tds

import (
	"sync"

	"github.com/ebitengine/purego"
)

// Application name reported to the server at login
const appName = "gotds"

var (
	diagMu   sync.Mutex
	lastDiag *diagnostic

	handlerOnce sync.Once
	dbinitOnce  sync.Once
	dbinitRet   RETCODE
)

func setDiag(d diagnostic) {
	diagMu.Lock()
	lastDiag = &d
	diagMu.Unlock()
}

func clearDiag() {
	diagMu.Lock()
	lastDiag = nil
	diagMu.Unlock()
}

// errHandler receives db-lib errors. The C signature is
// int (DBPROCESS*, int severity, int dberr, int oserr, char*, char*).
func errHandler(dbproc, severity, dberr, oserr uintptr, dberrstr, oserrstr *byte) uintptr {
	d := diagnostic{
		Severity: int(int32(severity)),
		Number:   int(int32(dberr)),
		Message:  goString(dberrstr),
	}
	if int32(oserr) != 0 {
		d.OSError = goString(oserrstr)
	}
	setDiag(d)
	logger().Debug("db-lib error", "severity", d.Severity, "number", d.Number, "message", d.Message)
	return INT_CANCEL
}

// msgHandler receives server messages. The C signature is
// int (DBPROCESS*, DBINT msgno, int state, int severity, char *msg,
// char *srvname, char *procname, int line).
func msgHandler(dbproc, msgno, state, severity uintptr, msgtext, srvname, procname *byte, line uintptr) uintptr {
	sev := int(int32(severity))
	msg := goString(msgtext)
	// Severity 10 and below are informational, e.g. "Changed database context".
	if sev <= 10 {
		logger().Debug("server message", "number", int(int32(msgno)), "message", msg)
		return 0
	}
	setDiag(diagnostic{Severity: sev, Number: int(int32(msgno)), Message: msg})
	return 0
}

// dbLibrary implements Library on top of FreeTDS db-lib
type dbLibrary struct {
	cells sync.Pool
}

// DBLib returns the Library backed by the system's FreeTDS db-lib. The
// shared library is loaded on first Init.
func DBLib() Library {
	return &dbLibrary{
		cells: sync.Pool{New: func() any {
			b := make([]byte, 0, 64)
			return &b
		}},
	}
}

func (l *dbLibrary) Init() int {
	if err := loadDBLib(); err != nil {
		setDiag(diagnostic{Message: err.Error()})
		return 1
	}
	dbinitOnce.Do(func() {
		dbinitRet = dbinit()
	})
	if !IsSuccess(dbinitRet) {
		return 1
	}
	handlerOnce.Do(func() {
		dberrhandle(purego.NewCallback(errHandler))
		dbmsghandle(purego.NewCallback(msgHandler))
	})
	return 0
}

func (l *dbLibrary) Connect(server, username, password, database string, timeoutSeconds int) Handle {
	clearDiag()
	if timeoutSeconds > 0 {
		dbsetlogintime(int32(timeoutSeconds))
	}

	login := dblogin()
	if login == 0 {
		return 0
	}
	defer dbloginfree(login)

	user, pwd, app := cString(username), cString(password), cString(appName)
	dbsetlname(login, &user[0], DBSETUSER)
	dbsetlname(login, &pwd[0], DBSETPWD)
	dbsetlname(login, &app[0], DBSETAPP)

	srv := cString(server)
	// msdblib=1 selects Microsoft semantics, including 1-based months
	dbproc := tdsdbopen(login, &srv[0], 1)
	if dbproc == 0 {
		return 0
	}

	if database != "" {
		db := cString(database)
		if !IsSuccess(dbuse(dbproc, &db[0])) {
			dbclose(dbproc)
			return 0
		}
	}
	return Handle(dbproc)
}

func (l *dbLibrary) ExecuteQuery(h Handle, query string) int {
	if h == 0 {
		return 1
	}
	clearDiag()
	q := cString(query)
	if !IsSuccess(dbcmd(uintptr(h), &q[0])) {
		return 1
	}
	if !IsSuccess(dbsqlexec(uintptr(h))) {
		return 1
	}
	return 0
}

// FetchRows reads every result set of the executed batch. Rows from later
// result sets are appended; the header is taken from the first result set
// that has columns.
func (l *dbLibrary) FetchRows(h Handle) (*RowBuffer, bool) {
	if h == 0 {
		return nil, false
	}
	proc := uintptr(h)
	buf := &RowBuffer{}

	for {
		ret := dbresults(proc)
		if ret == NO_MORE_RESULTS {
			break
		}
		if !IsSuccess(ret) {
			dbcancel(proc)
			l.ReleaseRows(buf)
			return nil, false
		}

		ncols := int(dbnumcols(proc))
		if ncols == 0 {
			continue
		}
		names := make([]string, ncols)
		types := make([]ColumnType, ncols)
		for i := 0; i < ncols; i++ {
			names[i] = dbcolname(proc, int32(i+1))
			types[i] = ColumnType(dbcoltype(proc, int32(i+1)))
		}
		if len(buf.Columns) == 0 {
			buf.Columns = names
		}

		for {
			status := dbnextrow(proc)
			if status == NO_MORE_ROWS {
				break
			}
			if status != REG_ROW {
				// compute rows and buffer states carry nothing we report
				if status == STATUS(FAIL) {
					dbcancel(proc)
					l.ReleaseRows(buf)
					return nil, false
				}
				continue
			}
			row := RowData{Cells: make([]Cell, ncols)}
			for i := 0; i < ncols; i++ {
				row.Cells[i] = l.readCell(proc, i+1, names[i], types[i])
			}
			buf.Rows = append(buf.Rows, row)
		}
	}
	return buf, true
}

// readCell copies one column of the current row into a pooled buffer,
// rendered as Decode expects.
func (l *dbLibrary) readCell(proc uintptr, col int, name string, t ColumnType) Cell {
	ptr := dbdata(proc, int32(col))
	if ptr == nil {
		return Cell{Name: name, Type: t, Null: true}
	}
	n := int(dbdatlen(proc, int32(col)))
	return l.buildCell(name, t, goBytes(ptr, n), func(ct ColumnType) ([]byte, bool) {
		if renderKindOf(ct) == renderConvert {
			return convertToChar(proc, ct, ptr, n)
		}
		var rec DBDATEREC2
		if !IsSuccess(dbanydatecrack(proc, &rec, int32(ct), ptr)) {
			return nil, false
		}
		return formatDateRec(ct, rec), true
	})
}

// buildCell resolves a nullable type from the data length and renders raw
// for that resolved type, which the cell carries. native renders the kinds
// that need a db-lib call (dbconvert and dbanydatecrack).
func (l *dbLibrary) buildCell(name string, t ColumnType, raw []byte, native func(ColumnType) ([]byte, bool)) Cell {
	ct := concreteType(t, len(raw))

	var out []byte
	ok := true
	switch renderKindOf(ct) {
	case renderInt:
		out, ok = formatInt(ct, raw)
	case renderFloat:
		out, ok = formatFloat(raw)
	case renderBit:
		out, ok = formatBit(raw)
	case renderConvert, renderDate:
		out, ok = native(ct)
	default:
		out = raw
	}
	if !ok {
		// leave the cell empty so Decode reports null for it
		out = nil
	}

	bp := l.cells.Get().(*[]byte)
	return Cell{Name: name, Type: ct, Data: append((*bp)[:0], out...)}
}

// convertToChar uses dbconvert to render money, exact numerics and
// uniqueidentifier values as text.
func convertToChar(proc uintptr, t ColumnType, src *byte, n int) ([]byte, bool) {
	dest := make([]byte, 128)
	// destlen -1 asks for a NUL-terminated result
	written := dbconvert(proc, int32(t), src, DBINT(n), int32(SYBCHAR), &dest[0], -1)
	if written < 0 {
		return nil, false
	}
	return []byte(cstring(dest)), true
}

func (l *dbLibrary) ReleaseRows(buf *RowBuffer) {
	if buf == nil {
		return
	}
	for _, row := range buf.Rows {
		for i := range row.Cells {
			if d := row.Cells[i].Data; d != nil {
				d = d[:0]
				l.cells.Put(&d)
				row.Cells[i].Data = nil
			}
		}
	}
	buf.Rows = nil
}

func (l *dbLibrary) AffectedRowCount(h Handle) int {
	if h == 0 {
		return 0
	}
	return int(dbcount(uintptr(h)))
}

// Close closes one connection. dbexit is never called here since it would
// close every connection in the process.
func (l *dbLibrary) Close(h Handle) {
	if h != 0 {
		dbclose(uintptr(h))
	}
}

func (l *dbLibrary) LastErrorMessage() (string, bool) {
	diagMu.Lock()
	defer diagMu.Unlock()
	if lastDiag == nil {
		return "", false
	}
	return lastDiag.text(), true
}

func (l *dbLibrary) Version() string {
	return LibraryVersion()
}
