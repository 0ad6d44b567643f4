package sheets_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mfell/workspace-agent/internal/agent"
	"github.com/mfell/workspace-agent/internal/server"
	"github.com/mfell/workspace-agent/internal/sheets"
	"github.com/mfell/workspace-agent/internal/tools/args"
	"github.com/mfell/workspace-agent/internal/tools/common"
)

const serviceName = "sheets"

func client(sc *server.Context, account string) (*sheets.Client, error) {
	if !sheets.HasTokenForAccount(account) {
		return nil, common.AuthRequiredError(account)
	}
	c, err := sc.SheetsClientForAccount(account)
	if err != nil {
		return nil, server.ErrNoClient(serviceName, account, err)
	}
	return c, nil
}

// RegisterSheetsTools registers the Google Sheets tools. Cell and sheet
// mutation tools are skipped in read-only mode.
func RegisterSheetsTools(reg *agent.Registry, sc *server.Context, readOnly bool) {
	register := func(desc agent.ToolDescriptor, operation string, handler agent.ToolFunc) {
		reg.MustRegister(desc, common.Instrumented(desc.Name, serviceName, operation, sc, handler))
	}

	register(
		agent.NewTool("sheets_get_info", "Read a spreadsheet's title and the sheets it contains").
			WithString("account", "Account name (default: 'default')", false).
			WithString("spreadsheetId", "The ID of the spreadsheet", true),
		"get",
		func(ctx context.Context, a map[string]any) (string, error) {
			spreadsheetID, err := args.String(a, "spreadsheetId")
			if err != nil {
				return "", err
			}
			c, err := client(sc, args.Account(a))
			if err != nil {
				return "", err
			}
			info, err := c.GetSpreadsheetInfo(spreadsheetID)
			if err != nil {
				return "", err
			}
			return common.JSONResult(info)
		})

	register(
		agent.NewTool("sheets_read_range", "Read cell values from a range in A1 notation").
			WithString("account", "Account name (default: 'default')", false).
			WithString("spreadsheetId", "The ID of the spreadsheet", true).
			WithString("range", "Range in A1 notation (e.g. 'Sheet1!A1:C10')", true),
		"get",
		func(ctx context.Context, a map[string]any) (string, error) {
			spreadsheetID, err := args.String(a, "spreadsheetId")
			if err != nil {
				return "", err
			}
			rangeName, err := args.String(a, "range")
			if err != nil {
				return "", err
			}
			c, err := client(sc, args.Account(a))
			if err != nil {
				return "", err
			}
			values, err := c.ReadRange(spreadsheetID, rangeName)
			if err != nil {
				return "", err
			}
			return common.JSONResult(values)
		})

	register(
		agent.NewTool("sheets_get_cell", "Read a single cell by row and column number").
			WithString("account", "Account name (default: 'default')", false).
			WithString("spreadsheetId", "The ID of the spreadsheet", true).
			WithString("sheetName", "Name of the sheet within the spreadsheet", true).
			WithInteger("row", "Row number, 1-based", true).
			WithInteger("column", "Column number, 1-based (1 = A)", true),
		"get",
		func(ctx context.Context, a map[string]any) (string, error) {
			return handleGetCell(sc, a)
		})

	register(
		agent.NewTool("sheets_batch_read", "Read several ranges in one call").
			WithString("account", "Account name (default: 'default')", false).
			WithString("spreadsheetId", "The ID of the spreadsheet", true).
			WithStringArray("ranges", "Ranges in A1 notation", true),
		"get",
		func(ctx context.Context, a map[string]any) (string, error) {
			spreadsheetID, err := args.String(a, "spreadsheetId")
			if err != nil {
				return "", err
			}
			ranges, err := args.StringOrList(a, "ranges")
			if err != nil {
				return "", err
			}
			c, err := client(sc, args.Account(a))
			if err != nil {
				return "", err
			}
			values, err := c.BatchRead(spreadsheetID, ranges)
			if err != nil {
				return "", err
			}
			return common.JSONResult(values)
		})

	if readOnly {
		return
	}

	register(
		agent.NewTool("sheets_create_spreadsheet", "Create a new spreadsheet").
			WithString("account", "Account name (default: 'default')", false).
			WithString("title", "Title for the new spreadsheet", false),
		"create",
		func(ctx context.Context, a map[string]any) (string, error) {
			c, err := client(sc, args.Account(a))
			if err != nil {
				return "", err
			}
			info, err := c.CreateSpreadsheet(args.OptionalString(a, "title", ""))
			if err != nil {
				return "", err
			}
			return common.JSONResult(info)
		})

	register(
		agent.NewTool("sheets_write_range", "Write a block of cell values starting at a range in A1 notation").
			WithString("account", "Account name (default: 'default')", false).
			WithString("spreadsheetId", "The ID of the spreadsheet", true).
			WithString("range", "Target range in A1 notation (e.g. 'Sheet1!A1')", true).
			WithStringTable("values", "Rows of cell values to write", true),
		"update",
		func(ctx context.Context, a map[string]any) (string, error) {
			return handleWrite(sc, a, false)
		})

	register(
		agent.NewTool("sheets_append_row", "Append rows after the existing data in a range").
			WithString("account", "Account name (default: 'default')", false).
			WithString("spreadsheetId", "The ID of the spreadsheet", true).
			WithString("range", "Table range in A1 notation (e.g. 'Sheet1!A:C')", true).
			WithStringTable("values", "Rows of cell values to append", true),
		"update",
		func(ctx context.Context, a map[string]any) (string, error) {
			return handleWrite(sc, a, true)
		})

	register(
		agent.NewTool("sheets_update_cell", "Write a single cell by row and column number").
			WithString("account", "Account name (default: 'default')", false).
			WithString("spreadsheetId", "The ID of the spreadsheet", true).
			WithString("sheetName", "Name of the sheet within the spreadsheet", true).
			WithInteger("row", "Row number, 1-based", true).
			WithInteger("column", "Column number, 1-based (1 = A)", true).
			WithString("value", "Value to write", true),
		"update",
		func(ctx context.Context, a map[string]any) (string, error) {
			return handleUpdateCell(sc, a)
		})

	register(
		agent.NewTool("sheets_clear_range", "Clear all values in a range").
			WithString("account", "Account name (default: 'default')", false).
			WithString("spreadsheetId", "The ID of the spreadsheet", true).
			WithString("range", "Range in A1 notation to clear", true),
		"update",
		func(ctx context.Context, a map[string]any) (string, error) {
			spreadsheetID, err := args.String(a, "spreadsheetId")
			if err != nil {
				return "", err
			}
			rangeName, err := args.String(a, "range")
			if err != nil {
				return "", err
			}
			c, err := client(sc, args.Account(a))
			if err != nil {
				return "", err
			}
			if err := c.ClearRange(spreadsheetID, rangeName); err != nil {
				return "", err
			}
			return fmt.Sprintf("Cleared range %s in spreadsheet %s", rangeName, spreadsheetID), nil
		})

	register(
		agent.NewTool("sheets_add_sheet", "Add a sheet to a spreadsheet").
			WithString("account", "Account name (default: 'default')", false).
			WithString("spreadsheetId", "The ID of the spreadsheet", true).
			WithString("title", "Title for the new sheet", true),
		"update",
		func(ctx context.Context, a map[string]any) (string, error) {
			spreadsheetID, err := args.String(a, "spreadsheetId")
			if err != nil {
				return "", err
			}
			title, err := args.String(a, "title")
			if err != nil {
				return "", err
			}
			c, err := client(sc, args.Account(a))
			if err != nil {
				return "", err
			}
			sheet, err := c.AddSheet(spreadsheetID, title)
			if err != nil {
				return "", err
			}
			return common.JSONResult(sheet)
		})

	register(
		agent.NewTool("sheets_delete_sheet", "Delete a sheet from a spreadsheet").
			WithString("account", "Account name (default: 'default')", false).
			WithString("spreadsheetId", "The ID of the spreadsheet", true).
			WithInteger("sheetId", "Numeric sheet ID, from sheets_get_info", true),
		"delete",
		func(ctx context.Context, a map[string]any) (string, error) {
			spreadsheetID, err := args.String(a, "spreadsheetId")
			if err != nil {
				return "", err
			}
			sheetID, err := args.RequiredInt64(a, "sheetId")
			if err != nil {
				return "", err
			}
			c, err := client(sc, args.Account(a))
			if err != nil {
				return "", err
			}
			if err := c.DeleteSheet(spreadsheetID, sheetID); err != nil {
				return "", err
			}
			return fmt.Sprintf("Sheet %d deleted from spreadsheet %s", sheetID, spreadsheetID), nil
		})

	register(
		agent.NewTool("sheets_batch_write", "Write several ranges in one call").
			WithString("account", "Account name (default: 'default')", false).
			WithString("spreadsheetId", "The ID of the spreadsheet", true).
			WithString("data", "JSON object mapping A1 ranges to rows of cell values", true),
		"update",
		func(ctx context.Context, a map[string]any) (string, error) {
			return handleBatchWrite(sc, a)
		})
}

func handleGetCell(sc *server.Context, a map[string]any) (string, error) {
	spreadsheetID, err := args.String(a, "spreadsheetId")
	if err != nil {
		return "", err
	}
	sheetName, err := args.String(a, "sheetName")
	if err != nil {
		return "", err
	}
	row, err := args.RequiredInt64(a, "row")
	if err != nil {
		return "", err
	}
	col, err := args.RequiredInt64(a, "column")
	if err != nil {
		return "", err
	}

	c, err := client(sc, args.Account(a))
	if err != nil {
		return "", err
	}

	value, err := c.GetCell(spreadsheetID, sheetName, row, col)
	if err != nil {
		return "", err
	}
	return common.JSONResult(map[string]any{"value": value})
}

func handleWrite(sc *server.Context, a map[string]any, appendRows bool) (string, error) {
	spreadsheetID, err := args.String(a, "spreadsheetId")
	if err != nil {
		return "", err
	}
	rangeName, err := args.String(a, "range")
	if err != nil {
		return "", err
	}
	values, err := args.Table(a, "values")
	if err != nil {
		return "", err
	}

	c, err := client(sc, args.Account(a))
	if err != nil {
		return "", err
	}

	var result *sheets.UpdateResult
	if appendRows {
		result, err = c.AppendRow(spreadsheetID, rangeName, values)
	} else {
		result, err = c.WriteRange(spreadsheetID, rangeName, values)
	}
	if err != nil {
		return "", err
	}
	return common.JSONResult(result)
}

func handleUpdateCell(sc *server.Context, a map[string]any) (string, error) {
	spreadsheetID, err := args.String(a, "spreadsheetId")
	if err != nil {
		return "", err
	}
	sheetName, err := args.String(a, "sheetName")
	if err != nil {
		return "", err
	}
	row, err := args.RequiredInt64(a, "row")
	if err != nil {
		return "", err
	}
	col, err := args.RequiredInt64(a, "column")
	if err != nil {
		return "", err
	}
	value, ok := a["value"]
	if !ok {
		return "", fmt.Errorf("value is required")
	}

	c, err := client(sc, args.Account(a))
	if err != nil {
		return "", err
	}

	result, err := c.UpdateCell(spreadsheetID, sheetName, row, col, value)
	if err != nil {
		return "", err
	}
	return common.JSONResult(result)
}

func handleBatchWrite(sc *server.Context, a map[string]any) (string, error) {
	spreadsheetID, err := args.String(a, "spreadsheetId")
	if err != nil {
		return "", err
	}

	// The data parameter is an object keyed by range, which JSON schema for
	// tool parameters cannot express as a typed property; it arrives either
	// as a decoded object or as a JSON string.
	data, err := decodeBatchData(a["data"])
	if err != nil {
		return "", err
	}

	c, err := client(sc, args.Account(a))
	if err != nil {
		return "", err
	}

	result, err := c.BatchWrite(spreadsheetID, data)
	if err != nil {
		return "", err
	}
	return common.JSONResult(result)
}

func decodeBatchData(raw any) (map[string][][]any, error) {
	obj, err := toObject(raw)
	if err != nil {
		return nil, err
	}

	data := make(map[string][][]any, len(obj))
	for rangeName, rows := range obj {
		rowList, ok := rows.([]any)
		if !ok {
			return nil, fmt.Errorf("data[%q] must be an array of rows", rangeName)
		}
		table := make([][]any, 0, len(rowList))
		for i, row := range rowList {
			cells, ok := row.([]any)
			if !ok {
				return nil, fmt.Errorf("data[%q][%d] must be an array of cell values", rangeName, i)
			}
			table = append(table, cells)
		}
		data[rangeName] = table
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("data cannot be empty")
	}
	return data, nil
}

func toObject(raw any) (map[string]any, error) {
	switch v := raw.(type) {
	case map[string]any:
		return v, nil
	case string:
		var obj map[string]any
		if err := json.Unmarshal([]byte(v), &obj); err != nil {
			return nil, fmt.Errorf("data must be a JSON object: %w", err)
		}
		return obj, nil
	case nil:
		return nil, fmt.Errorf("data is required")
	}
	return nil, fmt.Errorf("data must be a JSON object mapping ranges to rows")
}
