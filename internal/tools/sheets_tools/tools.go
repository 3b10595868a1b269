package sheets_tools

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/gworkspace-mcp/internal/color"
	"github.com/teemow/gworkspace-mcp/internal/instrumentation"
	"github.com/teemow/gworkspace-mcp/internal/sheets"
	"github.com/teemow/gworkspace-mcp/internal/tools"
	"github.com/teemow/gworkspace-mcp/internal/tools/args"
)

// API is the part of *sheets.Client the tools use.
type API interface {
	CreateSpreadsheet(ctx context.Context, title, sheetTitle string, values [][]string) (*sheets.SpreadsheetRef, error)
	UpdateValues(ctx context.Context, spreadsheetID, rng string, values [][]string) (*sheets.UpdateResult, error)
	AppendRows(ctx context.Context, spreadsheetID, rng string, values [][]string) (*sheets.UpdateResult, error)
	FormatCells(ctx context.Context, spreadsheetID, rng string, format sheets.CellFormat) error
}

// NumberFormatTypes are the number format types Sheets accepts.
var NumberFormatTypes = []string{"TEXT", "NUMBER", "PERCENT", "CURRENCY", "DATE", "TIME", "DATE_TIME", "SCIENTIFIC"}

type handlers struct {
	api API
}

// Tools returns the Sheets catalogue.
func Tools(api API) []tools.Tool {
	h := &handlers{api: api}
	return []tools.Tool{
		{
			Definition: createSpreadsheetTool(),
			Service:    instrumentation.ServiceSheets,
			Operation:  instrumentation.OperationCreate,
			Action:     "creating spreadsheet",
			Handler:    tools.Bind(parseCreateSpreadsheet, h.createSpreadsheet),
		},
		{
			Definition: valuesTool("sheets_update_values", "Overwrite the cells of a range with the given values"),
			Service:    instrumentation.ServiceSheets,
			Operation:  instrumentation.OperationUpdate,
			Action:     "updating values",
			Handler:    tools.Bind(parseValues, h.updateValues),
		},
		{
			Definition: valuesTool("sheets_append_rows", "Append rows after the last row of the table found in the range"),
			Service:    instrumentation.ServiceSheets,
			Operation:  instrumentation.OperationUpdate,
			Action:     "appending rows",
			Handler:    tools.Bind(parseValues, h.appendRows),
		},
		{
			Definition: formatCellsTool(),
			Service:    instrumentation.ServiceSheets,
			Operation:  instrumentation.OperationUpdate,
			Action:     "formatting cells",
			Handler:    tools.Bind(parseFormatCells, h.formatCells),
		},
	}
}

func createSpreadsheetTool() mcp.Tool {
	return mcp.NewTool("sheets_create_spreadsheet",
		mcp.WithDescription("Create a spreadsheet, optionally filled with initial data starting at A1"),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Title of the spreadsheet"),
		),
		mcp.WithString("sheetTitle",
			mcp.Description("Name of the first sheet (default: Sheet1)"),
			mcp.DefaultString(sheets.DefaultSheetTitle),
		),
		mcp.WithArray("data",
			mcp.Description("Rows of cell values, e.g. [[\"Name\",\"Total\"],[\"Alice\",\"42\"]]"),
		),
	)
}

func valuesTool(name, description string) mcp.Tool {
	return mcp.NewTool(name,
		mcp.WithDescription(description+". Values are interpreted as if typed into the UI, so formulas and numbers keep their meaning."),
		mcp.WithString("spreadsheetId",
			mcp.Required(),
			mcp.Description("ID of the spreadsheet"),
		),
		mcp.WithString("range",
			mcp.Required(),
			mcp.Description("Range in A1 notation, e.g. Sheet1!A1:C3"),
		),
		mcp.WithArray("values",
			mcp.Required(),
			mcp.Description("Rows of cell values"),
		),
	)
}

func formatCellsTool() mcp.Tool {
	return mcp.NewTool("sheets_format_cells",
		mcp.WithDescription("Format every cell of a range. Only the given format fields change."),
		mcp.WithString("spreadsheetId",
			mcp.Required(),
			mcp.Description("ID of the spreadsheet"),
		),
		mcp.WithString("range",
			mcp.Required(),
			mcp.Description("Range in A1 notation with both corners, e.g. Sheet1!A1:C1. Without a sheet name the first sheet is used."),
		),
		mcp.WithObject("format",
			mcp.Required(),
			mcp.Description("Format fields: backgroundColor and foregroundColor (#RRGGBB), bold, italic, fontSize, horizontalAlignment (LEFT, CENTER, RIGHT), numberFormat {type, pattern}"),
			mcp.Properties(map[string]any{
				"backgroundColor":     map[string]any{"type": "string"},
				"foregroundColor":     map[string]any{"type": "string"},
				"bold":                map[string]any{"type": "boolean"},
				"italic":              map[string]any{"type": "boolean"},
				"fontSize":            map[string]any{"type": "number"},
				"horizontalAlignment": map[string]any{"type": "string", "enum": sheets.HorizontalAlignments},
				"numberFormat": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"type":    map[string]any{"type": "string", "enum": NumberFormatTypes},
						"pattern": map[string]any{"type": "string"},
					},
				},
			}),
		),
	)
}

type createSpreadsheetRequest struct {
	Title      string
	SheetTitle string
	Data       [][]string
}

func parseCreateSpreadsheet(a args.Args) (createSpreadsheetRequest, error) {
	var req createSpreadsheetRequest
	var err error
	if req.Title, err = a.String("title"); err != nil {
		return req, err
	}
	if req.SheetTitle, err = a.OptionalString("sheetTitle", sheets.DefaultSheetTitle); err != nil {
		return req, err
	}
	if req.Data, err = a.OptionalGrid("data"); err != nil {
		return req, err
	}
	return req, nil
}

func (h *handlers) createSpreadsheet(ctx context.Context, req createSpreadsheetRequest) (any, error) {
	return h.api.CreateSpreadsheet(ctx, req.Title, req.SheetTitle, req.Data)
}

type valuesRequest struct {
	SpreadsheetID string
	Range         string
	Values        [][]string
}

func parseValues(a args.Args) (valuesRequest, error) {
	var req valuesRequest
	var err error
	if req.SpreadsheetID, err = a.String("spreadsheetId"); err != nil {
		return req, err
	}
	if req.Range, err = a.String("range"); err != nil {
		return req, err
	}
	if req.Values, err = a.Grid("values"); err != nil {
		return req, err
	}
	return req, nil
}

type valuesResult struct {
	SpreadsheetID string `json:"spreadsheetId"`
	*sheets.UpdateResult
}

func (h *handlers) updateValues(ctx context.Context, req valuesRequest) (any, error) {
	res, err := h.api.UpdateValues(ctx, req.SpreadsheetID, req.Range, req.Values)
	if err != nil {
		return nil, err
	}
	return valuesResult{SpreadsheetID: req.SpreadsheetID, UpdateResult: res}, nil
}

func (h *handlers) appendRows(ctx context.Context, req valuesRequest) (any, error) {
	res, err := h.api.AppendRows(ctx, req.SpreadsheetID, req.Range, req.Values)
	if err != nil {
		return nil, err
	}
	return valuesResult{SpreadsheetID: req.SpreadsheetID, UpdateResult: res}, nil
}

type formatCellsRequest struct {
	SpreadsheetID string
	Range         string
	Format        sheets.CellFormat
}

func parseFormatCells(a args.Args) (formatCellsRequest, error) {
	var req formatCellsRequest
	var err error
	if req.SpreadsheetID, err = a.String("spreadsheetId"); err != nil {
		return req, err
	}
	if req.Range, err = a.String("range"); err != nil {
		return req, err
	}
	if _, err = sheets.ParseA1Range(req.Range); err != nil {
		return req, err
	}

	obj, err := a.Object("format")
	if err != nil {
		return req, err
	}
	if req.Format, err = parseCellFormat(obj); err != nil {
		return req, err
	}
	return req, nil
}

func parseCellFormat(a args.Args) (sheets.CellFormat, error) {
	var f sheets.CellFormat
	var err error

	if f.BackgroundColor, err = hexColor(a, "backgroundColor"); err != nil {
		return f, err
	}
	if f.ForegroundColor, err = hexColor(a, "foregroundColor"); err != nil {
		return f, err
	}
	if f.Bold, err = a.OptionalBoolPtr("bold"); err != nil {
		return f, qualify("format.", err)
	}
	if f.Italic, err = a.OptionalBoolPtr("italic"); err != nil {
		return f, qualify("format.", err)
	}
	if f.FontSize, err = a.OptionalIntPtr("fontSize"); err != nil {
		return f, qualify("format.", err)
	}
	if f.FontSize != nil && *f.FontSize < 1 {
		return f, &args.ValidationError{Field: "format.fontSize", Expected: "positive integer"}
	}
	if f.HorizontalAlignment, err = a.OptionalEnum("horizontalAlignment", "", sheets.HorizontalAlignments); err != nil {
		return f, qualify("format.", err)
	}

	nf, err := a.OptionalObject("numberFormat")
	if err != nil {
		return f, qualify("format.", err)
	}
	if nf != nil {
		typ, err := nf.Enum("type", NumberFormatTypes)
		if err != nil {
			return f, qualify("format.numberFormat.", err)
		}
		pattern, err := nf.OptionalString("pattern", "")
		if err != nil {
			return f, qualify("format.numberFormat.", err)
		}
		f.NumberFormat = &sheets.NumberFormat{Type: typ, Pattern: pattern}
	}

	if f.IsEmpty() {
		return f, &args.ValidationError{Field: "format", Expected: "at least one format field"}
	}
	return f, nil
}

func hexColor(a args.Args, field string) (string, error) {
	s, err := a.OptionalString(field, "")
	if err != nil {
		return "", qualify("format.", err)
	}
	if s == "" {
		return "", nil
	}
	if _, err := color.ParseHex(s); err != nil {
		return "", &args.ValidationError{Field: "format." + field, Expected: "hex color #RRGGBB"}
	}
	return s, nil
}

// qualify names a field of a nested object by its full path.
func qualify(prefix string, err error) error {
	var verr *args.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	return &args.ValidationError{Field: prefix + verr.Field, Expected: verr.Expected}
}

type formatCellsResult struct {
	SpreadsheetID string   `json:"spreadsheetId"`
	Range         string   `json:"range"`
	Updated       []string `json:"updated"`
}

func (h *handlers) formatCells(ctx context.Context, req formatCellsRequest) (any, error) {
	if err := h.api.FormatCells(ctx, req.SpreadsheetID, req.Range, req.Format); err != nil {
		return nil, err
	}
	return formatCellsResult{
		SpreadsheetID: req.SpreadsheetID,
		Range:         req.Range,
		Updated:       formatFields(req.Format),
	}, nil
}

func formatFields(f sheets.CellFormat) []string {
	var out []string
	add := func(set bool, name string) {
		if set {
			out = append(out, name)
		}
	}
	add(f.BackgroundColor != "", "backgroundColor")
	add(f.ForegroundColor != "", "foregroundColor")
	add(f.Bold != nil, "bold")
	add(f.Italic != nil, "italic")
	add(f.FontSize != nil, "fontSize")
	add(f.HorizontalAlignment != "", "horizontalAlignment")
	add(f.NumberFormat != nil, "numberFormat")
	return out
}
