// Package sheets wraps the Google Sheets v4 API and translates A1 notation
// into the zero-based, half-open grid ranges used by formatting requests.
package sheets
