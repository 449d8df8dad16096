package fetcher

import "errors"

var (
	// ErrInvalidURL means the playlist URL has no scheme or no host.
	ErrInvalidURL = errors.New("invalid playlist URL")
	// ErrNetwork means the HTTP request failed or returned a non-2xx status.
	ErrNetwork = errors.New("network error")
	// ErrMalformedPlaylist means the response body does not start with #EXTM3U.
	ErrMalformedPlaylist = errors.New("malformed playlist: missing #EXTM3U header")
	// ErrParse means the playlist text could not be read to the end.
	ErrParse = errors.New("playlist parse error")
)
