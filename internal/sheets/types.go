package sheets

// SpreadsheetInfo summarizes a spreadsheet and its sheets
type SpreadsheetInfo struct {
	ID     string      `json:"id"`
	Title  string      `json:"title"`
	URL    string      `json:"url,omitempty"`
	Sheets []SheetInfo `json:"sheets,omitempty"`
}

// SheetInfo summarizes one sheet within a spreadsheet
type SheetInfo struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Index       int64  `json:"index"`
	RowCount    int64  `json:"row_count,omitempty"`
	ColumnCount int64  `json:"column_count,omitempty"`
}

// RangeValues holds the values read from one range
type RangeValues struct {
	Range  string  `json:"range"`
	Values [][]any `json:"values"`
}

// UpdateResult reports the extent of a write operation
type UpdateResult struct {
	UpdatedRange   string `json:"updated_range,omitempty"`
	UpdatedRows    int64  `json:"updated_rows,omitempty"`
	UpdatedColumns int64  `json:"updated_columns,omitempty"`
	UpdatedCells   int64  `json:"updated_cells,omitempty"`
}
