package catalog

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

type Service interface {
	Fetch(ctx context.Context) ([]Entry, error)
}

type service struct {
	source Source
}

func NewService(source Source) Service {
	return &service{source: source}
}

// Fetch reads the configured range and normalizes it into catalog entries.
// Row 0 is the header row; columns are mapped by header name, lower-cased and
// trimmed, so column order in the sheet does not matter.
func (s *service) Fetch(ctx context.Context) ([]Entry, error) {
	rows, err := s.source.Values(ctx)
	if err != nil {
		log.Error().Err(err).Msg("catalog: failed to fetch rows from source")
		return nil, fmt.Errorf("catalog: failed to fetch rows: %w", err)
	}

	if len(rows) == 0 {
		return []Entry{}, nil
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}

	entries := make([]Entry, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(map[string]string, len(headers))
		for i, key := range headers {
			if i < len(row) {
				rec[key] = row[i]
			} else {
				rec[key] = ""
			}
		}

		categoria := rec["categoria"]
		if categoria == "" {
			categoria = rec["categoría"]
		}

		entries = append(entries, Entry{
			ID:        rec["id"],
			Producto:  rec["producto"],
			Precio:    parsePrecio(rec["precio"]),
			Categoria: categoria,
		})
	}

	return entries, nil
}

// parsePrecio coerces unparseable cells (empty, text, stray symbols) to 0
// instead of failing the whole fetch.
func parsePrecio(cell string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return 0
	}
	return v
}
