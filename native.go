package tds

// Handle is an opaque reference to a native connection. The zero Handle is
// never a live connection.
type Handle uintptr

// Library is the native TDS client the connection layer drives. The default
// implementation binds FreeTDS db-lib; tests substitute their own.
//
// Calls that take a Handle are not safe for concurrent use on the same
// handle. Conn serializes them.
type Library interface {
	// Init prepares the library; a non-zero result means failure.
	Init() int
	// Connect opens a session and selects database. It returns 0 on failure.
	Connect(server, username, password, database string, timeoutSeconds int) Handle
	// ExecuteQuery sends query and waits for the server; non-zero means failure.
	ExecuteQuery(h Handle, query string) int
	// FetchRows drains the pending results of the last executed query.
	FetchRows(h Handle) (*RowBuffer, bool)
	// ReleaseRows returns a buffer obtained from FetchRows.
	ReleaseRows(buf *RowBuffer)
	// AffectedRowCount reports the rows affected by the last statement.
	AffectedRowCount(h Handle) int
	Close(h Handle)
	// LastErrorMessage returns the most recent diagnostic, if any.
	LastErrorMessage() (string, bool)
	Version() string
}

// RowBuffer holds the rows fetched for one query. Columns lists the result
// header in order; it may be empty when the library reports names per cell
// only.
type RowBuffer struct {
	Columns []string
	Rows    []RowData
}

// RowData is one fetched row
type RowData struct {
	Cells []Cell
}

// Cell is one column of a fetched row. Data is the textual rendering of the
// value, or the raw bytes for binary columns. Null marks SQL NULL.
type Cell struct {
	Name string
	Type ColumnType
	Data []byte
	Null bool
}

// Len returns the number of rows in the buffer
func (b *RowBuffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Rows)
}
