package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sheets "google.golang.org/api/sheets/v4"
)

func TestColumnLetter(t *testing.T) {
	tests := []struct {
		col  int64
		want string
	}{
		{1, "A"},
		{2, "B"},
		{26, "Z"},
		{27, "AA"},
		{28, "AB"},
		{52, "AZ"},
		{53, "BA"},
		{702, "ZZ"},
		{703, "AAA"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, columnLetter(tt.col))
	}
}

func TestCellRef(t *testing.T) {
	ref, err := cellRef("Sheet1", 3, 2)
	require.NoError(t, err)
	assert.Equal(t, "Sheet1!B3", ref)

	ref, err = cellRef("", 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "A1", ref)

	_, err = cellRef("Sheet1", 0, 1)
	assert.Error(t, err)

	_, err = cellRef("Sheet1", 1, 0)
	assert.Error(t, err)
}

func TestToSpreadsheetInfo(t *testing.T) {
	ss := &sheets.Spreadsheet{
		SpreadsheetId:  "ss1",
		SpreadsheetUrl: "https://docs.google.com/spreadsheets/d/ss1",
		Properties:     &sheets.SpreadsheetProperties{Title: "Budget"},
		Sheets: []*sheets.Sheet{
			{Properties: &sheets.SheetProperties{
				SheetId: 0,
				Title:   "Sheet1",
				GridProperties: &sheets.GridProperties{
					RowCount:    1000,
					ColumnCount: 26,
				},
			}},
			{Properties: &sheets.SheetProperties{SheetId: 42, Title: "Q4", Index: 1}},
		},
	}

	info := toSpreadsheetInfo(ss)
	assert.Equal(t, "ss1", info.ID)
	assert.Equal(t, "Budget", info.Title)
	require.Len(t, info.Sheets, 2)
	assert.Equal(t, int64(1000), info.Sheets[0].RowCount)
	assert.Equal(t, "Q4", info.Sheets[1].Title)
	assert.Equal(t, int64(42), info.Sheets[1].ID)
}
