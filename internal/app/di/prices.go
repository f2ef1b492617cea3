package di

import (
	"time"

	"skinfolio_backend/internal/feature/prices/adapters/pricedump"
	"skinfolio_backend/internal/feature/prices/usecase"
	infrahttp "skinfolio_backend/internal/platform/http"
)

// NewDumpSource returns an HTTP source for URLs and a file source otherwise.
func NewDumpSource(location string, timeout time.Duration) usecase.DumpSource {
	if pricedump.IsURL(location) {
		return pricedump.NewHTTPSource(location, infrahttp.NewHTTPClient(timeout))
	}
	return pricedump.NewFileSource(location)
}
