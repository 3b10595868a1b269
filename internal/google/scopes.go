package google

import (
	docs "google.golang.org/api/docs/v1"
	drive "google.golang.org/api/drive/v3"
	sheets "google.golang.org/api/sheets/v4"
)

// Scopes are requested when minting a refresh token. Full Drive access is
// needed for moves, copies and exports of files the server did not create.
var Scopes = []string{
	drive.DriveScope,
	docs.DocumentsScope,
	sheets.SpreadsheetsScope,
}
