// Package sheets provides a client for reading and writing Google Sheets.
//
// Ranges use A1 notation ("Sheet1!A1:C10"). Values are written RAW, so cell
// content is stored exactly as provided without formula interpretation.
package sheets
