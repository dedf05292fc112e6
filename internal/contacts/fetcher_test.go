package contacts_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-contacts/internal/config"
	"github.com/tartampluch/go-contacts/internal/contacts"
)

const sampleCard = "BEGIN:VCARD\r\nVERSION:3.0\r\nFN:Asha Rao\r\nTEL:+91 98765 43210\r\nEMAIL:asha@example.in\r\nEND:VCARD\r\n"

// vcardServer answers every request with body under the given content type.
func vcardServer(t *testing.T, contentType, body string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if contentType != "" {
			w.Header().Set(config.HeaderContentType, contentType)
		}
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(ts.Close)
	return ts
}

// streamServer flushes after the first byte so the body goes out chunked,
// without a Content-Length the fetcher could check up front.
func streamServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(config.HeaderContentType, config.MediaVCard)
		_, _ = io.WriteString(w, body[:1])
		w.(http.Flusher).Flush()
		_, _ = io.WriteString(w, body[1:])
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTPFetcher_Fetch_RequestHeaders(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok, "Basic auth header should be present")
		assert.Equal(t, "asha", user)
		assert.Equal(t, "s3cret", pass)
		assert.Equal(t, config.UserAgent, r.Header.Get(config.HeaderUserAgent))
		assert.Equal(t, config.AcceptVCard, r.Header.Get(config.HeaderAccept))

		w.Header().Set(config.HeaderContentType, config.MimeTextVCard)
		_, _ = io.WriteString(w, sampleCard)
	}))
	defer ts.Close()

	rc, err := contacts.NewHTTPFetcher().Fetch(context.Background(), ts.URL, "asha", "s3cret")
	require.NoError(t, err)
	defer func() { _ = rc.Close() }()

	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, sampleCard, string(body))
}

func TestHTTPFetcher_Fetch_NoAuthWhenEmpty(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _, ok := r.BasicAuth()
		assert.False(t, ok)
	}))
	defer ts.Close()

	rc, err := contacts.NewHTTPFetcher().Fetch(context.Background(), ts.URL, "", "")
	require.NoError(t, err)
	_ = rc.Close()
}

func TestHTTPFetcher_Fetch_ContentTypes(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		wantErr     error
	}{
		{"vCard", "text/vcard; charset=utf-8", nil},
		{"LegacyVCard", "text/x-vcard", nil},
		{"Directory", "text/directory", nil},
		{"PlainText", "text/plain", nil},
		{"OctetStream", "application/octet-stream", nil},
		{"Unparsable", ";;;", nil},
		{"Sniffed", "", nil},
		{"LoginPage", "text/html; charset=utf-8", contacts.ErrNotVCard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := vcardServer(t, tt.contentType, sampleCard)

			rc, err := contacts.NewHTTPFetcher().Fetch(context.Background(), ts.URL, "", "")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, rc)
				return
			}
			require.NoError(t, err)
			defer func() { _ = rc.Close() }()
			body, err := io.ReadAll(rc)
			require.NoError(t, err)
			assert.Equal(t, sampleCard, string(body))
		})
	}
}

func TestHTTPFetcher_Fetch_SizeLimit(t *testing.T) {
	limit := int64(len(sampleCard))

	t.Run("ExactlyAtLimit", func(t *testing.T) {
		ts := streamServer(t, sampleCard)
		f := contacts.NewHTTPFetcher()
		f.MaxBytes = limit

		rc, err := f.Fetch(context.Background(), ts.URL, "", "")
		require.NoError(t, err)
		defer func() { _ = rc.Close() }()

		body, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Len(t, body, len(sampleCard))
	})

	t.Run("DeclaredLengthTooLarge", func(t *testing.T) {
		ts := vcardServer(t, config.MediaVCard, sampleCard+sampleCard)
		f := contacts.NewHTTPFetcher()
		f.MaxBytes = limit

		rc, err := f.Fetch(context.Background(), ts.URL, "", "")
		assert.ErrorIs(t, err, contacts.ErrResponseTooLarge)
		assert.Nil(t, rc)
	})

	t.Run("StreamedBodyTooLarge", func(t *testing.T) {
		ts := streamServer(t, sampleCard+sampleCard)
		f := contacts.NewHTTPFetcher()
		f.MaxBytes = limit

		rc, err := f.Fetch(context.Background(), ts.URL, "", "")
		require.NoError(t, err, "chunked bodies are only caught while reading")
		defer func() { _ = rc.Close() }()

		body, err := io.ReadAll(rc)
		assert.ErrorIs(t, err, contacts.ErrResponseTooLarge)
		assert.LessOrEqual(t, int64(len(body)), limit)
	})

	t.Run("DecoderSurfacesOverflow", func(t *testing.T) {
		ts := streamServer(t, strings.Repeat(sampleCard, 4))
		f := contacts.NewHTTPFetcher()
		f.MaxBytes = limit * 2

		rc, err := f.Fetch(context.Background(), ts.URL, "", "")
		require.NoError(t, err)
		defer func() { _ = rc.Close() }()

		candidates, err := contacts.DecodeVCards(context.Background(), rc)
		assert.ErrorIs(t, err, contacts.ErrResponseTooLarge)
		assert.Nil(t, candidates, "a truncated address book must not be imported")
	})
}

func TestHTTPFetcher_Fetch_Status(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantErr    string
	}{
		{"NotFound", http.StatusNotFound, "404"},
		{"ServerError", http.StatusInternalServerError, "500"},
		{"Unauthorized", http.StatusUnauthorized, "401"},
		{"NoContent", http.StatusNoContent, "204"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			}))
			defer ts.Close()

			rc, err := contacts.NewHTTPFetcher().Fetch(context.Background(), ts.URL, "", "")

			require.Error(t, err)
			assert.Nil(t, rc)
			assert.Contains(t, err.Error(), config.ErrHTTPStatus)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestHTTPFetcher_Fetch_Timeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := contacts.NewHTTPFetcher().Fetch(ctx, ts.URL, "", "")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), config.ErrNetwork)
}

func TestHTTPFetcher_Fetch_RejectedURLs(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr string
	}{
		{"ControlCharacter", string([]byte{0x7f}), config.ErrInvalidURL},
		{"FTP", "ftp://example.com/contacts.vcf", config.ErrProtocol},
		{"File", "file:///etc/passwd", config.ErrProtocol},
		{"NoScheme", "example.com/contacts.vcf", config.ErrProtocol},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc, err := contacts.NewHTTPFetcher().Fetch(context.Background(), tt.url, "", "")

			require.Error(t, err)
			assert.Nil(t, rc)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
