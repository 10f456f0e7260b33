package catalog

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/distmalvinas/remito-service/internal/config"
)

// Source delivers the configured catalog range as a grid of string cells.
type Source interface {
	Values(ctx context.Context) ([][]string, error)
}

type sheetsSource struct {
	svc           *sheets.Service
	spreadsheetID string
	readRange     string
}

// NewSheetsSource builds a read-only Google Sheets client. The credential is
// resolved once at startup: a full service-account JSON file first, then the
// split email/key pair. The client is reused for the process lifetime, but
// every Values call hits the remote API again.
func NewSheetsSource(ctx context.Context, cfg config.SheetsConfig) (Source, error) {
	var opts []option.ClientOption

	switch {
	case cfg.CredentialsPath != "":
		b, err := os.ReadFile(cfg.CredentialsPath)
		if err != nil {
			return nil, fmt.Errorf("catalog: failed to read credentials file: %w", err)
		}
		opts = append(opts,
			option.WithCredentialsJSON(b),
			option.WithScopes(sheets.SpreadsheetsReadonlyScope),
		)
	case cfg.ClientEmail != "" && cfg.PrivateKey != "":
		jwtCfg := &jwt.Config{
			Email:      cfg.ClientEmail,
			PrivateKey: []byte(cfg.PrivateKey),
			Scopes:     []string{sheets.SpreadsheetsReadonlyScope},
			TokenURL:   google.JWTTokenURL,
		}
		opts = append(opts, option.WithTokenSource(jwtCfg.TokenSource(ctx)))
	default:
		return nil, config.ErrMissingCredentials
	}

	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("catalog: failed to build sheets client: %w", err)
	}

	return &sheetsSource{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		readRange:     cfg.Range,
	}, nil
}

func (s *sheetsSource) Values(ctx context.Context) ([][]string, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("catalog: failed to read range %q: %w", s.readRange, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, fmt.Sprint(cell))
		}
		rows = append(rows, cells)
	}
	return rows, nil
}
