package logbook

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const spreadsheetMimeType = "application/vnd.google-apps.spreadsheet"

// SheetsStore is a Store over the first tab of a Google spreadsheet that is
// looked up by file name.
type SheetsStore struct {
	sheets *sheets.Service
	drive  *drive.Service
	name   string
	logger *slog.Logger
}

// NewSheetsStore authenticates with a service-account JSON key.
func NewSheetsStore(ctx context.Context, name string, credentialsJSON []byte, logger *slog.Logger) (*SheetsStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	hc, err := serviceAccountClient(ctx, credentialsJSON, logger)
	if err != nil {
		return nil, err
	}
	return NewSheetsStoreWithOptions(ctx, name, logger, option.WithHTTPClient(hc))
}

// NewSheetsStoreWithOptions builds the store from raw client options; both
// the Drive and the Sheets service receive the same options.
func NewSheetsStoreWithOptions(ctx context.Context, name string, logger *slog.Logger, opts ...option.ClientOption) (*SheetsStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	sheetsService, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets client: %w", err)
	}
	driveService, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create drive client: %w", err)
	}
	return &SheetsStore{
		sheets: sheetsService,
		drive:  driveService,
		name:   name,
		logger: logger,
	}, nil
}

func serviceAccountClient(ctx context.Context, credentialsJSON []byte, logger *slog.Logger) (*http.Client, error) {
	jwtCfg, err := google.JWTConfigFromJSON(credentialsJSON, sheets.SpreadsheetsScope, drive.DriveReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("parse service account: %w", err)
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = 0
	rc.Logger = logger
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	// oauth2 wraps the transport found in the context
	ctx = context.WithValue(ctx, oauth2.HTTPClient, rc.StandardClient())
	return jwtCfg.Client(ctx), nil
}

func (s *SheetsStore) Rows(ctx context.Context) ([][]string, error) {
	id, title, err := s.resolve(ctx)
	if err != nil {
		return nil, err
	}
	vr, err := s.sheets.Spreadsheets.Values.Get(id, a1Sheet(title)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get values: %w", err)
	}
	rows := make([][]string, 0, len(vr.Values))
	for _, r := range vr.Values {
		row := make([]string, len(r))
		for i, cell := range r {
			row[i] = fmt.Sprint(cell)
		}
		rows = append(rows, row)
	}
	s.logger.Debug("sheet read", "spreadsheet", s.name, "sheet", title, "rows", len(rows))
	return rows, nil
}

func (s *SheetsStore) Append(ctx context.Context, row []string) error {
	id, title, err := s.resolve(ctx)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(row))
	for i, v := range row {
		cells[i] = v
	}
	vr := &sheets.ValueRange{Values: [][]interface{}{cells}}
	res, err := s.sheets.Spreadsheets.Values.Append(id, a1Sheet(title), vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append values: %w", err)
	}
	if res.Updates != nil {
		s.logger.Debug("sheet append", "spreadsheet", s.name, "range", res.Updates.UpdatedRange)
	}
	return nil
}

// resolve finds the spreadsheet id by name and the title of its first sheet.
func (s *SheetsStore) resolve(ctx context.Context) (string, string, error) {
	q := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false", escapeQuery(s.name), spreadsheetMimeType)
	files, err := s.drive.Files.List().
		Q(q).
		Fields("files(id, name)").
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return "", "", fmt.Errorf("search spreadsheet: %w", err)
	}
	if len(files.Files) == 0 {
		return "", "", fmt.Errorf("%w: %q", ErrSpreadsheetNotFound, s.name)
	}
	if len(files.Files) > 1 {
		s.logger.Warn("several spreadsheets share a name, using the first", "spreadsheet", s.name, "count", len(files.Files))
	}
	id := files.Files[0].Id

	meta, err := s.sheets.Spreadsheets.Get(id).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return "", "", fmt.Errorf("get spreadsheet: %w", err)
	}
	if len(meta.Sheets) == 0 || meta.Sheets[0].Properties == nil {
		return "", "", fmt.Errorf("spreadsheet %q has no sheets", s.name)
	}
	return id, meta.Sheets[0].Properties.Title, nil
}

func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}

// a1Sheet is an A1 range covering a whole sheet.
func a1Sheet(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}
