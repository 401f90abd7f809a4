package tds

// decodeRow converts one fetched row. Cells marked null by the library
// become null values without consulting the decoder. When a name repeats,
// the last cell wins.
func decodeRow(data RowData) Row {
	row := make(Row, len(data.Cells))
	for _, c := range data.Cells {
		if c.Null {
			row[c.Name] = Null()
			continue
		}
		row[c.Name] = Decode(c.Type, c.Data)
	}
	return row
}

// headerOf returns the column header for buf. The first row's cell names are
// used when the library did not supply one.
func headerOf(buf *RowBuffer) []string {
	if buf == nil {
		return nil
	}
	if len(buf.Columns) > 0 {
		return buf.Columns
	}
	if len(buf.Rows) == 0 {
		return nil
	}
	cells := buf.Rows[0].Cells
	names := make([]string, len(cells))
	for i, c := range cells {
		names[i] = c.Name
	}
	return names
}

// toResultSet decodes every row of buf
func toResultSet(buf *RowBuffer, affected int) *ResultSet {
	rows := make([]Row, 0, buf.Len())
	if buf != nil {
		for _, r := range buf.Rows {
			rows = append(rows, decodeRow(r))
		}
	}
	return NewResultSet(headerOf(buf), rows, affected)
}
