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

const samplePlaylist = "#EXTM3U\n#EXTINF:-1 tvg-name=\"News1\" group-title=\"News\",News1\nhttp://x/1\n"

func TestFetchReturnsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tester/1.0", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(samplePlaylist))
	}))
	defer srv.Close()

	body, err := Fetch(context.Background(), srv.URL, "tester/1.0", time.Second)
	require.NoError(t, err)
	assert.Equal(t, samplePlaylist, body)
}

func TestFetchAcceptsLeadingWhitespace(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("\n  " + samplePlaylist))
	}))
	defer srv.Close()

	_, err := Fetch(context.Background(), srv.URL, "", time.Second)
	require.NoError(t, err)
}

func TestFetchMissingHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>not a playlist</html>"))
	}))
	defer srv.Close()

	_, err := Fetch(context.Background(), srv.URL, "", time.Second)
	require.ErrorIs(t, err, ErrMalformedPlaylist)
}

func TestFetchNonOKStatus(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusInternalServerError, http.StatusForbidden} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		}))
		_, err := Fetch(context.Background(), srv.URL, "", time.Second)
		assert.ErrorIs(t, err, ErrNetwork, "status %d", status)
		srv.Close()
	}
}

func TestFetchInvalidURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"no scheme", "example.com/list.m3u"},
		{"no host", "http://"},
		{"garbage", "not a url at all"},
		{"empty", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Fetch(context.Background(), tc.url, "", time.Second)
			assert.ErrorIs(t, err, ErrInvalidURL)
		})
	}
}

func TestFetchConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := Fetch(context.Background(), url, "", time.Second)
	assert.ErrorIs(t, err, ErrNetwork)
}
