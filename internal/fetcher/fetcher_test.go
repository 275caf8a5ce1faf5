package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchRejectsNonHTTPSchemes(t *testing.T) {
	f := NewFetcher()
	for _, raw := range []string{"ftp://example.com/file", "file:///etc/passwd", "not a url at all"} {
		_, err := f.Fetch(context.Background(), raw)
		require.Error(t, err, raw)
		assert.True(t, IsKind(err, KindInvalidURL), "expected invalid-url kind for %q", raw)
	}
}

func TestFetchSendsBrowserHeaders(t *testing.T) {
	var gotUA, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer srv.Close()

	f := NewFetcher()
	result, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Contains(t, gotUA, "Neurativo-Bot")
	assert.Contains(t, gotAccept, "text/html")
	assert.Equal(t, "<html><body>ok</body></html>", string(result.Body))
	assert.Equal(t, "text/html", result.ContentType)
}

func TestFetchClassifiesUpstreamStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	f := NewFetcher()
	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindUpstream))

	var fe *Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, http.StatusForbidden, fe.Status)
}

func TestFetchClassifiesTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	f := NewFetcher()
	_, err := f.Fetch(ctx, srv.URL)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindTimeout))
}

func TestFetchCancelledRequestIsNotATimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	f := NewFetcher()
	_, err := f.Fetch(ctx, srv.URL)
	require.Error(t, err)
	assert.False(t, IsKind(err, KindTimeout), "cancellation must not map to 408")
	assert.True(t, IsKind(err, KindNetwork))
}

func TestFetchClassifiesNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	f := NewFetcher()
	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindNetwork))
}
