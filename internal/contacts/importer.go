package contacts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/tartampluch/go-contacts/internal/config"
)

// ImportConfig selects where an import reads vCards from.
type ImportConfig struct {
	Mode      string // config.SourceModeLocal or config.SourceModeWeb
	LocalPath string // Path to the .vcf file
	WebURL    string // CardDAV or WebDAV URL
	WebUser   string // HTTP Basic Auth Username
	WebPass   string // HTTP Basic Auth Password
}

// Importer reads contacts from a local file or a remote address book.
type Importer struct {
	Fetcher VCardFetcher
}

// Run opens the configured source and decodes it into candidates.
// Candidates are not validated; Store.Import does that.
func (im *Importer) Run(ctx context.Context, cfg ImportConfig) ([]Candidate, error) {
	start := time.Now()
	log := slog.With(
		config.LogKeyComponent, config.CompImporter,
		config.LogKeyMode, cfg.Mode,
	)
	log.InfoContext(ctx, config.MsgImportStarted)

	reader, err := im.open(ctx, cfg)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s: %w", config.ErrImportFailed, err)
	}
	defer func() { _ = reader.Close() }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	candidates, err := DecodeVCards(ctx, reader)
	if err != nil {
		return nil, err
	}

	log.Info(config.MsgImportDone,
		config.LogKeyCount, len(candidates),
		config.LogKeyDuration, time.Since(start).Milliseconds())
	return candidates, nil
}

func (im *Importer) open(ctx context.Context, cfg ImportConfig) (io.ReadCloser, error) {
	switch cfg.Mode {
	case config.SourceModeLocal:
		if cfg.LocalPath == "" {
			return nil, errors.New(config.ErrLocalPathEmpty)
		}
		return os.Open(cfg.LocalPath)
	case config.SourceModeWeb:
		if cfg.WebURL == "" {
			return nil, errors.New(config.ErrWebURLEmpty)
		}
		if im.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return im.Fetcher.Fetch(ctx, cfg.WebURL, cfg.WebUser, cfg.WebPass)
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrModeUnsupport, cfg.Mode)
	}
}
