package sheets

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"github.com/teemow/gworkspace-mcp/internal/color"
)

// ValueInputOption makes Sheets parse input the way the UI does, so numbers,
// dates and formulas typed as strings keep their meaning.
const ValueInputOption = "USER_ENTERED"

// DefaultSheetTitle names the first sheet of a new spreadsheet.
const DefaultSheetTitle = "Sheet1"

// HorizontalAlignments accepted by CellFormat.
var HorizontalAlignments = []string{"LEFT", "CENTER", "RIGHT"}

// SpreadsheetRef identifies a spreadsheet in tool results.
type SpreadsheetRef struct {
	SpreadsheetID string `json:"spreadsheetId"`
	Title         string `json:"title"`
	SheetTitle    string `json:"sheetTitle"`
	URL           string `json:"url"`
}

// UpdateResult summarises a write.
type UpdateResult struct {
	UpdatedRange   string `json:"updatedRange,omitempty"`
	UpdatedRows    int64  `json:"updatedRows"`
	UpdatedColumns int64  `json:"updatedColumns"`
	UpdatedCells   int64  `json:"updatedCells"`
}

// CellFormat is a partial cell format. Nil or empty fields are left untouched.
type CellFormat struct {
	BackgroundColor     string
	ForegroundColor     string
	Bold                *bool
	Italic              *bool
	FontSize            *int64
	HorizontalAlignment string
	NumberFormat        *NumberFormat
}

// NumberFormat is a Sheets number format such as {NUMBER, "#,##0.00"}.
type NumberFormat struct {
	Type    string
	Pattern string
}

// IsEmpty reports whether no format field is set.
func (f CellFormat) IsEmpty() bool {
	return f.BackgroundColor == "" && f.ForegroundColor == "" && f.Bold == nil && f.Italic == nil &&
		f.FontSize == nil && f.HorizontalAlignment == "" && f.NumberFormat == nil
}

// Client wraps the Google Sheets API service.
type Client struct {
	service *sheets.Service
}

// NewClient creates a Sheets client that sends requests through httpClient.
func NewClient(ctx context.Context, httpClient *http.Client, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Sheets service: %w", err)
	}
	return &Client{service: svc}, nil
}

// SpreadsheetURL returns the editor URL of a spreadsheet.
func SpreadsheetURL(spreadsheetID string) string {
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/edit", spreadsheetID)
}

// CreateSpreadsheet creates a spreadsheet whose first sheet is named
// sheetTitle and, when values is non-empty, writes them from A1.
func (c *Client) CreateSpreadsheet(ctx context.Context, title, sheetTitle string, values [][]string) (*SpreadsheetRef, error) {
	ss, err := c.service.Spreadsheets.Create(&sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: title},
		Sheets: []*sheets.Sheet{
			{Properties: &sheets.SheetProperties{Title: sheetTitle}},
		},
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create spreadsheet %q: %w", title, err)
	}

	if len(values) > 0 {
		_, err := c.service.Spreadsheets.Values.Update(ss.SpreadsheetId, QuoteSheetName(sheetTitle)+"!A1", &sheets.ValueRange{
			Values: toRows(values),
		}).ValueInputOption(ValueInputOption).Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("failed to write initial data to %s: %w", ss.SpreadsheetId, err)
		}
	}

	ref := &SpreadsheetRef{
		SpreadsheetID: ss.SpreadsheetId,
		SheetTitle:    sheetTitle,
		URL:           ss.SpreadsheetUrl,
	}
	if ss.Properties != nil {
		ref.Title = ss.Properties.Title
	}
	if ref.URL == "" {
		ref.URL = SpreadsheetURL(ss.SpreadsheetId)
	}
	return ref, nil
}

// UpdateValues overwrites the cells of an A1 range.
func (c *Client) UpdateValues(ctx context.Context, spreadsheetID, rng string, values [][]string) (*UpdateResult, error) {
	resp, err := c.service.Spreadsheets.Values.BatchUpdate(spreadsheetID, &sheets.BatchUpdateValuesRequest{
		ValueInputOption: ValueInputOption,
		Data: []*sheets.ValueRange{
			{Range: rng, Values: toRows(values)},
		},
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to update values in %s: %w", spreadsheetID, err)
	}

	res := &UpdateResult{
		UpdatedRows:    resp.TotalUpdatedRows,
		UpdatedColumns: resp.TotalUpdatedColumns,
		UpdatedCells:   resp.TotalUpdatedCells,
	}
	if len(resp.Responses) > 0 && resp.Responses[0] != nil {
		res.UpdatedRange = resp.Responses[0].UpdatedRange
	}
	return res, nil
}

// AppendRows inserts rows after the table found in rng.
func (c *Client) AppendRows(ctx context.Context, spreadsheetID, rng string, values [][]string) (*UpdateResult, error) {
	resp, err := c.service.Spreadsheets.Values.Append(spreadsheetID, rng, &sheets.ValueRange{
		Values: toRows(values),
	}).
		ValueInputOption(ValueInputOption).
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to append rows to %s: %w", spreadsheetID, err)
	}

	res := &UpdateResult{}
	if u := resp.Updates; u != nil {
		res.UpdatedRange = u.UpdatedRange
		res.UpdatedRows = u.UpdatedRows
		res.UpdatedColumns = u.UpdatedColumns
		res.UpdatedCells = u.UpdatedCells
	}
	return res, nil
}

// FormatCells applies a partial format to every cell of an A1 range. A range
// without a sheet prefix targets the first sheet.
func (c *Client) FormatCells(ctx context.Context, spreadsheetID, rng string, format CellFormat) error {
	grid, err := ParseA1Range(rng)
	if err != nil {
		return err
	}
	cell, fields, err := cellFormat(format)
	if err != nil {
		return err
	}

	sheetID, err := c.sheetID(ctx, spreadsheetID, grid.SheetName)
	if err != nil {
		return err
	}

	_, err = c.service.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          sheetID,
					StartRowIndex:    grid.StartRow,
					EndRowIndex:      grid.EndRow,
					StartColumnIndex: grid.StartColumn,
					EndColumnIndex:   grid.EndColumn,
					ForceSendFields:  []string{"SheetId", "StartRowIndex", "EndRowIndex", "StartColumnIndex", "EndColumnIndex"},
				},
				Cell:   &sheets.CellData{UserEnteredFormat: cell},
				Fields: fields,
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to format cells in %s: %w", spreadsheetID, err)
	}
	return nil
}

func (c *Client) sheetID(ctx context.Context, spreadsheetID, name string) (int64, error) {
	ss, err := c.service.Spreadsheets.Get(spreadsheetID).
		Context(ctx).
		Fields("sheets.properties(sheetId,title)").
		Do()
	if err != nil {
		return 0, fmt.Errorf("failed to get spreadsheet %s: %w", spreadsheetID, err)
	}

	for _, sh := range ss.Sheets {
		if sh.Properties == nil {
			continue
		}
		if name == "" || sh.Properties.Title == name {
			return sh.Properties.SheetId, nil
		}
	}
	if name == "" {
		return 0, fmt.Errorf("spreadsheet %s has no sheets", spreadsheetID)
	}
	return 0, fmt.Errorf("sheet %q not found in spreadsheet %s", name, spreadsheetID)
}

// cellFormat converts a CellFormat to the API format and its field mask.
func cellFormat(f CellFormat) (*sheets.CellFormat, string, error) {
	out := &sheets.CellFormat{}
	var fields []string
	text := func() *sheets.TextFormat {
		if out.TextFormat == nil {
			out.TextFormat = &sheets.TextFormat{}
		}
		return out.TextFormat
	}

	if f.BackgroundColor != "" {
		c, err := sheetsColor(f.BackgroundColor)
		if err != nil {
			return nil, "", err
		}
		out.BackgroundColor = c
		fields = append(fields, "userEnteredFormat.backgroundColor")
	}
	if f.ForegroundColor != "" {
		c, err := sheetsColor(f.ForegroundColor)
		if err != nil {
			return nil, "", err
		}
		text().ForegroundColor = c
		fields = append(fields, "userEnteredFormat.textFormat.foregroundColor")
	}
	if f.Bold != nil {
		text().Bold = *f.Bold
		text().ForceSendFields = append(text().ForceSendFields, "Bold")
		fields = append(fields, "userEnteredFormat.textFormat.bold")
	}
	if f.Italic != nil {
		text().Italic = *f.Italic
		text().ForceSendFields = append(text().ForceSendFields, "Italic")
		fields = append(fields, "userEnteredFormat.textFormat.italic")
	}
	if f.FontSize != nil {
		text().FontSize = *f.FontSize
		fields = append(fields, "userEnteredFormat.textFormat.fontSize")
	}
	if f.HorizontalAlignment != "" {
		out.HorizontalAlignment = f.HorizontalAlignment
		fields = append(fields, "userEnteredFormat.horizontalAlignment")
	}
	if f.NumberFormat != nil {
		out.NumberFormat = &sheets.NumberFormat{
			Type:    f.NumberFormat.Type,
			Pattern: f.NumberFormat.Pattern,
		}
		fields = append(fields, "userEnteredFormat.numberFormat")
	}

	if len(fields) == 0 {
		return nil, "", fmt.Errorf("no cell format fields to update")
	}
	return out, strings.Join(fields, ","), nil
}

func sheetsColor(hex string) (*sheets.Color, error) {
	rgb, err := color.ParseHex(hex)
	if err != nil {
		return nil, err
	}
	return &sheets.Color{
		Red:             rgb.Red,
		Green:           rgb.Green,
		Blue:            rgb.Blue,
		ForceSendFields: []string{"Red", "Green", "Blue"},
	}, nil
}

func toRows(values [][]string) [][]interface{} {
	rows := make([][]interface{}, len(values))
	for i, row := range values {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		rows[i] = cells
	}
	return rows
}
