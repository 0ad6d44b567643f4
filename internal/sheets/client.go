package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"github.com/mfell/workspace-agent/internal/google"
)

// Client wraps the Google Sheets service
type Client struct {
	svc     *sheets.Service
	account string // The account this client is associated with
}

// Account returns the account name this client is associated with
func (c *Client) Account() string {
	return c.account
}

// HasTokenForAccount checks if a valid OAuth token exists for the specified account
func HasTokenForAccount(account string) bool {
	return google.HasTokenForAccount(account)
}

// NewClientForAccount creates a new Sheets client with OAuth2 authentication for a specific account
func NewClientForAccount(ctx context.Context, account string) (*Client, error) {
	client, err := google.GetHTTPClientForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token found for account %s: %w", account, err)
	}

	svc, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Sheets service: %w", err)
	}

	return &Client{
		svc:     svc,
		account: account,
	}, nil
}

// NewClient creates a new Sheets client for the default account
func NewClient(ctx context.Context) (*Client, error) {
	return NewClientForAccount(ctx, "default")
}

// CreateSpreadsheet creates a new spreadsheet with the given title
func (c *Client) CreateSpreadsheet(title string) (*SpreadsheetInfo, error) {
	if title == "" {
		title = "Untitled Spreadsheet"
	}

	created, err := c.svc.Spreadsheets.Create(&sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: title},
	}).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create spreadsheet: %w", err)
	}

	return toSpreadsheetInfo(created), nil
}

// GetSpreadsheetInfo retrieves a spreadsheet's title and sheet inventory
func (c *Client) GetSpreadsheetInfo(spreadsheetID string) (*SpreadsheetInfo, error) {
	ss, err := c.svc.Spreadsheets.Get(spreadsheetID).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get spreadsheet %s: %w", spreadsheetID, err)
	}

	return toSpreadsheetInfo(ss), nil
}

// ReadRange reads the values of a range in A1 notation
func (c *Client) ReadRange(spreadsheetID, rangeName string) (*RangeValues, error) {
	if rangeName == "" {
		return nil, fmt.Errorf("range is required")
	}

	resp, err := c.svc.Spreadsheets.Values.Get(spreadsheetID, rangeName).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read range %s: %w", rangeName, err)
	}

	return &RangeValues{Range: resp.Range, Values: resp.Values}, nil
}

// WriteRange overwrites the values of a range
func (c *Client) WriteRange(spreadsheetID, rangeName string, values [][]any) (*UpdateResult, error) {
	if rangeName == "" {
		return nil, fmt.Errorf("range is required")
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("values are required")
	}

	resp, err := c.svc.Spreadsheets.Values.Update(spreadsheetID, rangeName, &sheets.ValueRange{
		Values: values,
	}).ValueInputOption("RAW").Do()
	if err != nil {
		return nil, fmt.Errorf("failed to write range %s: %w", rangeName, err)
	}

	return &UpdateResult{
		UpdatedRange:   resp.UpdatedRange,
		UpdatedRows:    resp.UpdatedRows,
		UpdatedColumns: resp.UpdatedColumns,
		UpdatedCells:   resp.UpdatedCells,
	}, nil
}

// AppendRow appends rows after the last row of data in the given range
func (c *Client) AppendRow(spreadsheetID, rangeName string, values [][]any) (*UpdateResult, error) {
	if rangeName == "" {
		return nil, fmt.Errorf("range is required")
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("values are required")
	}

	resp, err := c.svc.Spreadsheets.Values.Append(spreadsheetID, rangeName, &sheets.ValueRange{
		Values: values,
	}).ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Do()
	if err != nil {
		return nil, fmt.Errorf("failed to append to range %s: %w", rangeName, err)
	}

	result := &UpdateResult{}
	if resp.Updates != nil {
		result.UpdatedRange = resp.Updates.UpdatedRange
		result.UpdatedRows = resp.Updates.UpdatedRows
		result.UpdatedColumns = resp.Updates.UpdatedColumns
		result.UpdatedCells = resp.Updates.UpdatedCells
	}
	return result, nil
}

// ClearRange clears the values of a range, keeping formatting intact
func (c *Client) ClearRange(spreadsheetID, rangeName string) error {
	if rangeName == "" {
		return fmt.Errorf("range is required")
	}

	_, err := c.svc.Spreadsheets.Values.Clear(spreadsheetID, rangeName, &sheets.ClearValuesRequest{}).Do()
	if err != nil {
		return fmt.Errorf("failed to clear range %s: %w", rangeName, err)
	}
	return nil
}

// UpdateCell writes a single cell addressed by 1-based row and column
func (c *Client) UpdateCell(spreadsheetID, sheetName string, row, col int64, value any) (*UpdateResult, error) {
	cell, err := cellRef(sheetName, row, col)
	if err != nil {
		return nil, err
	}
	return c.WriteRange(spreadsheetID, cell, [][]any{{value}})
}

// GetCell reads a single cell addressed by 1-based row and column.
// An empty cell returns nil.
func (c *Client) GetCell(spreadsheetID, sheetName string, row, col int64) (any, error) {
	cell, err := cellRef(sheetName, row, col)
	if err != nil {
		return nil, err
	}

	values, err := c.ReadRange(spreadsheetID, cell)
	if err != nil {
		return nil, err
	}

	if len(values.Values) == 0 || len(values.Values[0]) == 0 {
		return nil, nil
	}
	return values.Values[0][0], nil
}

// AddSheet adds a new sheet with the given title to a spreadsheet
func (c *Client) AddSheet(spreadsheetID, title string) (*SheetInfo, error) {
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}

	resp, err := c.svc.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: title},
			}},
		},
	}).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to add sheet %q: %w", title, err)
	}

	for _, reply := range resp.Replies {
		if reply.AddSheet != nil && reply.AddSheet.Properties != nil {
			props := reply.AddSheet.Properties
			return &SheetInfo{
				ID:    props.SheetId,
				Title: props.Title,
				Index: props.Index,
			}, nil
		}
	}

	return &SheetInfo{Title: title}, nil
}

// DeleteSheet removes a sheet from a spreadsheet by its numeric sheet ID
func (c *Client) DeleteSheet(spreadsheetID string, sheetID int64) error {
	_, err := c.svc.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{DeleteSheet: &sheets.DeleteSheetRequest{SheetId: sheetID}},
		},
	}).Do()
	if err != nil {
		return fmt.Errorf("failed to delete sheet %d: %w", sheetID, err)
	}
	return nil
}

// BatchRead reads multiple ranges in one call
func (c *Client) BatchRead(spreadsheetID string, ranges []string) ([]RangeValues, error) {
	if len(ranges) == 0 {
		return nil, fmt.Errorf("at least one range is required")
	}

	resp, err := c.svc.Spreadsheets.Values.BatchGet(spreadsheetID).Ranges(ranges...).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to batch read: %w", err)
	}

	results := make([]RangeValues, 0, len(resp.ValueRanges))
	for _, vr := range resp.ValueRanges {
		results = append(results, RangeValues{Range: vr.Range, Values: vr.Values})
	}
	return results, nil
}

// BatchWrite writes multiple ranges in one call
func (c *Client) BatchWrite(spreadsheetID string, data map[string][][]any) (*UpdateResult, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("data is required")
	}

	var valueRanges []*sheets.ValueRange
	for rangeName, values := range data {
		valueRanges = append(valueRanges, &sheets.ValueRange{
			Range:  rangeName,
			Values: values,
		})
	}

	resp, err := c.svc.Spreadsheets.Values.BatchUpdate(spreadsheetID, &sheets.BatchUpdateValuesRequest{
		ValueInputOption: "RAW",
		Data:             valueRanges,
	}).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to batch write: %w", err)
	}

	return &UpdateResult{
		UpdatedRows:  resp.TotalUpdatedRows,
		UpdatedCells: resp.TotalUpdatedCells,
	}, nil
}

// cellRef builds an A1 reference for a 1-based row and column
func cellRef(sheetName string, row, col int64) (string, error) {
	if row < 1 || col < 1 {
		return "", fmt.Errorf("row and column must be 1-based, got row %d col %d", row, col)
	}

	ref := fmt.Sprintf("%s%d", columnLetter(col), row)
	if sheetName != "" {
		ref = fmt.Sprintf("%s!%s", sheetName, ref)
	}
	return ref, nil
}

// columnLetter converts a 1-based column index to its A1 letter form
// (1 -> A, 26 -> Z, 27 -> AA)
func columnLetter(col int64) string {
	var letters []byte
	for col > 0 {
		col--
		letters = append([]byte{byte('A' + col%26)}, letters...)
		col /= 26
	}
	return string(letters)
}

// toSpreadsheetInfo converts a Sheets API spreadsheet to a SpreadsheetInfo
func toSpreadsheetInfo(ss *sheets.Spreadsheet) *SpreadsheetInfo {
	info := &SpreadsheetInfo{
		ID:  ss.SpreadsheetId,
		URL: ss.SpreadsheetUrl,
	}
	if ss.Properties != nil {
		info.Title = ss.Properties.Title
	}

	for _, sheet := range ss.Sheets {
		if sheet.Properties == nil {
			continue
		}
		si := SheetInfo{
			ID:    sheet.Properties.SheetId,
			Title: sheet.Properties.Title,
			Index: sheet.Properties.Index,
		}
		if grid := sheet.Properties.GridProperties; grid != nil {
			si.RowCount = grid.RowCount
			si.ColumnCount = grid.ColumnCount
		}
		info.Sheets = append(info.Sheets, si)
	}

	return info
}
