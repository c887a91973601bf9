// Google Sheets driver. Thin wrapper over the Sheets v4 values API; every
// remote failure is wrapped as domain.ErrSheetUnavailable so the service
// layer's retry classifier stays a plain errors.Is check.
package driver

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"tvp-scraper/config"
	"tvp-scraper/domain"
)

type SheetsDriver struct {
	service       *sheets.Service
	spreadsheetID string
	worksheet     string
}

// NewSheetsDriver authenticates with the service-account key file from
// config and returns a driver bound to the configured spreadsheet and
// worksheet.
func NewSheetsDriver(ctx context.Context, cfg *config.Config) (*SheetsDriver, error) {
	key, err := os.ReadFile(cfg.Sheet.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	jwtConfig, err := google.JWTConfigFromJSON(key, sheets.SpreadsheetsScope, sheets.DriveScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account key: %w", err)
	}

	service, err := sheets.NewService(ctx, option.WithHTTPClient(jwtConfig.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &SheetsDriver{
		service:       service,
		spreadsheetID: cfg.Sheet.SpreadsheetID,
		worksheet:     cfg.Sheet.WorksheetName,
	}, nil
}

// qualify prefixes a range with the worksheet name.
func (d *SheetsDriver) qualify(rng string) string {
	return fmt.Sprintf("%s!%s", d.worksheet, rng)
}

// ColumnValues returns the values of one column from startRow down. Cells
// the API omits come back as empty strings so row positions are preserved.
func (d *SheetsDriver) ColumnValues(ctx context.Context, column string, startRow int) ([]string, error) {
	rng := d.qualify(fmt.Sprintf("%s%d:%s", column, startRow, column))

	resp, err := d.service.Spreadsheets.Values.Get(d.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %v", domain.ErrSheetUnavailable, rng, err)
	}

	values := make([]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		if len(row) == 0 {
			values = append(values, "")
			continue
		}
		values = append(values, fmt.Sprint(row[0]))
	}

	return values, nil
}

// ClearRange clears all values in the given range.
func (d *SheetsDriver) ClearRange(ctx context.Context, rng string) error {
	req := &sheets.BatchClearValuesRequest{Ranges: []string{d.qualify(rng)}}

	_, err := d.service.Spreadsheets.Values.BatchClear(d.spreadsheetID, req).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: clear %s: %v", domain.ErrSheetUnavailable, rng, err)
	}

	return nil
}

// UpdateRows writes rows starting at startRow as one batched update, one
// value range per row.
func (d *SheetsDriver) UpdateRows(ctx context.Context, startRow int, rows [][]string) error {
	data := make([]*sheets.ValueRange, 0, len(rows))
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}

		rowIndex := startRow + i
		data = append(data, &sheets.ValueRange{
			Range:  d.qualify(fmt.Sprintf("%s%d:%s%d", domain.FirstColumn, rowIndex, domain.LastColumn, rowIndex)),
			Values: [][]interface{}{cells},
		})
	}

	req := &sheets.BatchUpdateValuesRequest{
		ValueInputOption: "RAW",
		Data:             data,
	}

	_, err := d.service.Spreadsheets.Values.BatchUpdate(d.spreadsheetID, req).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: batch update %d rows: %v", domain.ErrSheetUnavailable, len(rows), err)
	}

	return nil
}

// ReadRange returns the values currently in the given range.
func (d *SheetsDriver) ReadRange(ctx context.Context, rng string) ([][]string, error) {
	resp, err := d.service.Spreadsheets.Values.Get(d.spreadsheetID, d.qualify(rng)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %v", domain.ErrSheetUnavailable, rng, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, 0, len(row))
		for _, v := range row {
			cells = append(cells, fmt.Sprint(v))
		}
		rows = append(rows, cells)
	}

	return rows, nil
}
