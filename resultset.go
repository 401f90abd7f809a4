package tds

import "maps"

// Row maps column names to decoded values
type Row map[string]Value

// Get returns the value of column name. A missing column yields a null
// Value and false.
func (r Row) Get(name string) (Value, bool) {
	v, ok := r[name]
	return v, ok
}

// Map returns the row with every value converted by Value.Any
func (r Row) Map() map[string]any {
	m := make(map[string]any, len(r))
	for k, v := range r {
		m[k] = v.Any()
	}
	return m
}

// Clone returns a shallow copy of the row
func (r Row) Clone() Row {
	return maps.Clone(r)
}

// ResultSet is the immutable outcome of a bulk query
type ResultSet struct {
	columns      []string
	rows         []Row
	affectedRows int
}

// NewResultSet builds a result set. Duplicate column names are dropped,
// keeping the first occurrence.
func NewResultSet(columns []string, rows []Row, affectedRows int) *ResultSet {
	return &ResultSet{
		columns:      uniqueColumns(columns),
		rows:         rows,
		affectedRows: affectedRows,
	}
}

func uniqueColumns(columns []string) []string {
	seen := make(map[string]struct{}, len(columns))
	out := make([]string, 0, len(columns))
	for _, c := range columns {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// Columns returns the column names in result order
func (rs *ResultSet) Columns() []string {
	return append([]string(nil), rs.columns...)
}

// Len returns the number of rows
func (rs *ResultSet) Len() int {
	return len(rs.rows)
}

// AffectedRows returns the count reported by the server for the statement.
// It is not necessarily the number of rows returned.
func (rs *ResultSet) AffectedRows() int {
	return rs.affectedRows
}

// Row returns a copy of row i
func (rs *ResultSet) Row(i int) (Row, bool) {
	if i < 0 || i >= len(rs.rows) {
		return nil, false
	}
	return rs.rows[i].Clone(), true
}

// Rows returns copies of all rows in order
func (rs *ResultSet) Rows() []Row {
	out := make([]Row, len(rs.rows))
	for i, r := range rs.rows {
		out[i] = r.Clone()
	}
	return out
}

// Value returns the value at row i, column name
func (rs *ResultSet) Value(i int, column string) (Value, bool) {
	if i < 0 || i >= len(rs.rows) {
		return Value{}, false
	}
	v, ok := rs.rows[i][column]
	return v, ok
}

// ValueAt returns the value at row i, column index j
func (rs *ResultSet) ValueAt(i, j int) (Value, bool) {
	if j < 0 || j >= len(rs.columns) {
		return Value{}, false
	}
	return rs.Value(i, rs.columns[j])
}

// ColumnValues returns every row's value for column, in row order. Rows
// without the column contribute a null.
func (rs *ResultSet) ColumnValues(column string) []Value {
	out := make([]Value, len(rs.rows))
	for i, r := range rs.rows {
		out[i] = r[column]
	}
	return out
}
