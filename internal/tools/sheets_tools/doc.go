// Package sheets_tools provides the Google Sheets tools.
package sheets_tools
