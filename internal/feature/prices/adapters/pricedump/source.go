// Package pricedump reads price dump documents from a file or an HTTP endpoint.
package pricedump

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/go-resty/resty/v2"

	"skinfolio_backend/internal/feature/prices/adapters/pricedump/dto"
	"skinfolio_backend/internal/feature/prices/domain/entity"
)

// maxDumpSize bounds the size of a downloaded dump.
const maxDumpSize = 64 << 20

// FileSource reads a dump from the local filesystem.
type FileSource struct {
	path string
}

// NewFileSource creates a FileSource.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Load reads and decodes the dump.
func (s *FileSource) Load(ctx context.Context) (*entity.Dump, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open price dump: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("failed to close price dump", "path", s.path, "error", err)
		}
	}()
	return Decode(f)
}

// HTTPSource downloads a dump with GET. Transport errors are retried twice.
type HTTPSource struct {
	url    string
	client *resty.Client
}

// NewHTTPSource creates an HTTPSource on top of client.
func NewHTTPSource(url string, client *http.Client) *HTTPSource {
	rc := resty.NewWithClient(client).
		SetRetryCount(2).
		SetHeader("Accept", "application/json")
	return &HTTPSource{url: url, client: rc}
}

// Load downloads and decodes the dump.
func (s *HTTPSource) Load(ctx context.Context) (*entity.Dump, error) {
	res, err := s.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(s.url)
	if err != nil {
		return nil, err
	}
	body := res.RawBody()
	defer func() {
		if err := body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode() >= 400 {
		return nil, fmt.Errorf("price dump http %d", res.StatusCode())
	}
	return Decode(io.LimitReader(body, maxDumpSize))
}

// IsURL reports whether location should be read with an HTTPSource.
func IsURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// Decode parses a dump document.
func Decode(r io.Reader) (*entity.Dump, error) {
	var body dto.Dump
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode price dump: %w", err)
	}

	d := &entity.Dump{
		UsdToEurExchangeRate: body.UsdToEur,
		SteamUpdatedUTC:      body.SteamUpdatedUTC,
		Buff163UpdatedUTC:    body.Buff163UpdatedUTC,
		Prices:               make([]entity.Price, 0, len(body.Prices)),
	}
	for _, p := range body.Prices {
		d.Prices = append(d.Prices, entity.Price{
			ItemID:               p.ItemID,
			SteamPriceCentsUsd:   p.Steam,
			Buff163PriceCentsUsd: p.Buff163,
		})
	}
	return d, nil
}
