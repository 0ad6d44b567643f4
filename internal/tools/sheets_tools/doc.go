// Package sheets_tools exposes Google Sheets operations as model-callable
// tools: spreadsheet creation, range and cell reads and writes, sheet
// management, and batched access.
package sheets_tools
