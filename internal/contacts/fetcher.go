package contacts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"

	"github.com/tartampluch/go-contacts/internal/config"
)

var (
	// ErrResponseTooLarge is returned while reading a body that outgrows
	// HTTPFetcher.MaxBytes. Nothing is silently truncated.
	ErrResponseTooLarge = errors.New(config.ErrTooLarge)

	// ErrNotVCard is returned when the server answers with an HTML page,
	// typically a login or captive portal instead of the address book.
	ErrNotVCard = errors.New(config.ErrNotVCard)
)

// VCardFetcher retrieves a remote address book as a vCard stream.
type VCardFetcher interface {
	Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error)
}

// HTTPFetcher downloads address books over HTTP or HTTPS.
type HTTPFetcher struct {
	Client *http.Client
	// MaxBytes caps the body size. Zero or negative disables the cap.
	MaxBytes int64
}

// NewHTTPFetcher creates a fetcher with the configured timeout and size cap.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		Client:   &http.Client{Timeout: config.HTTPTimeout},
		MaxBytes: config.MaxHTTPResponseSize,
	}
}

// Fetch asks rawURL for vCard content, with basic auth when credentials are
// set. The returned body fails with ErrResponseTooLarge once it passes
// MaxBytes.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL, user, pass string) (io.ReadCloser, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}
	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return nil, fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme)
	}

	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompFetcher),
		slog.String(config.LogKeyURL, redactURL(u)),
	)
	log.DebugContext(ctx, config.MsgFetchStart)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrRequestBuild, err)
	}
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)
	req.Header.Set(config.HeaderAccept, config.AcceptVCard)
	if user != "" || pass != "" {
		req.SetBasicAuth(user, pass)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrNetwork, err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		log.Warn(config.MsgFetchStatus, slog.Int(config.LogKeyStatus, resp.StatusCode))
		return nil, fmt.Errorf("%s: %s", config.ErrHTTPStatus, resp.Status)
	}

	if err := checkMediaType(log, resp.Header.Get(config.HeaderContentType)); err != nil {
		_ = resp.Body.Close()
		return nil, err
	}

	if f.MaxBytes > 0 && resp.ContentLength > f.MaxBytes {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: %d > %d bytes", ErrResponseTooLarge, resp.ContentLength, f.MaxBytes)
	}

	log.Info(config.MsgFetchBody, slog.Int64(config.LogKeyLength, resp.ContentLength))

	if f.MaxBytes <= 0 {
		return resp.Body, nil
	}
	return &cappedBody{body: resp.Body, limit: f.MaxBytes, remaining: f.MaxBytes}, nil
}

// redactURL drops credentials and the query, which may carry tokens.
func redactURL(u *url.URL) string {
	return u.Scheme + "://" + u.Host + u.Path
}

// checkMediaType rejects HTML and logs any other non-vCard type. Many
// servers label .vcf files text/plain or application/octet-stream, so those
// still go through to the decoder.
func checkMediaType(log *slog.Logger, header string) error {
	if header == "" {
		return nil
	}
	media, _, err := mime.ParseMediaType(header)
	if err != nil {
		log.Warn(config.MsgFetchMime, slog.String(config.LogKeyMime, header))
		return nil
	}
	switch media {
	case config.MediaVCard, config.MediaXVCard, config.MediaDirectory:
		return nil
	case config.MediaHTML:
		return fmt.Errorf("%w: %s", ErrNotVCard, media)
	default:
		log.Warn(config.MsgFetchMime, slog.String(config.LogKeyMime, media))
		return nil
	}
}

// cappedBody passes reads through until limit bytes have been delivered and
// fails with ErrResponseTooLarge as soon as the server sends more.
type cappedBody struct {
	body      io.ReadCloser
	limit     int64
	remaining int64
	exceeded  bool
}

func (c *cappedBody) Read(p []byte) (int, error) {
	if c.exceeded {
		return 0, fmt.Errorf("%w: %d bytes", ErrResponseTooLarge, c.limit)
	}
	// One byte past the limit is enough to tell "exactly full" from "too big".
	if int64(len(p)) > c.remaining+1 {
		p = p[:c.remaining+1]
	}
	n, err := c.body.Read(p)
	if int64(n) > c.remaining {
		n = int(c.remaining)
		c.remaining = 0
		c.exceeded = true
		return n, fmt.Errorf("%w: %d bytes", ErrResponseTooLarge, c.limit)
	}
	c.remaining -= int64(n)
	return n, err
}

func (c *cappedBody) Close() error {
	return c.body.Close()
}
