package backend

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"mediareport/internal/config"
	"mediareport/internal/logger"
	"mediareport/internal/report"
)

// Loader fetches a report and its modules from the backend.
type Loader struct {
	client Client
	logger *logger.Logger
}

// NewLoader creates a loader backed by an HTTP client for cfg.
func NewLoader(cfg config.BackendConfig, log *logger.Logger) *Loader {
	return NewLoaderWithClient(NewHTTPClient(cfg, log), log)
}

// NewLoaderWithClient creates a loader with a custom client (useful for testing).
func NewLoaderWithClient(client Client, log *logger.Logger) *Loader {
	if log == nil {
		log = logger.Discard()
	}

	return &Loader{
		client: client,
		logger: log,
	}
}

// Authenticate logs in with email and password.
func (l *Loader) Authenticate(ctx context.Context, email, password string) error {
	return l.client.Login(ctx, email, password)
}

// Load fetches the report record and its module map concurrently.
// A backend without a modules endpoint for the report falls back to the embedded modules.
func (l *Loader) Load(ctx context.Context, id string) (*report.Source, error) {
	if id == "" {
		return nil, ErrReportIDRequired
	}

	var (
		wg                   sync.WaitGroup
		reportData, modsData []byte
		reportErr, modsErr   error
	)

	wg.Add(2)

	go func() {
		defer wg.Done()
		reportData, reportErr = l.client.FetchReport(ctx, id)
	}()

	go func() {
		defer wg.Done()
		modsData, modsErr = l.client.FetchModules(ctx, id)
	}()

	wg.Wait()

	if reportErr != nil {
		return nil, fmt.Errorf("failed to fetch report %s: %w", id, reportErr)
	}

	if modsErr != nil {
		if !errors.Is(modsErr, ErrNotFound) {
			return nil, fmt.Errorf("failed to fetch modules for %s: %w", id, modsErr)
		}

		l.logger.Debug("no modules endpoint, using embedded modules", "report", id)
		modsData = nil
	}

	src, err := report.Decode(reportData, modsData)
	if err != nil {
		return nil, fmt.Errorf("failed to decode report %s: %w", id, err)
	}

	l.logger.Info("loaded report",
		"report", id,
		"media_types", len(src.Modules),
	)

	return src, nil
}
