package fetcher

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/mvens/tvlens/internal/models"
)

var (
	reTvgName     = regexp.MustCompile(`tvg-name="([^"]*)"`)
	reTvgID       = regexp.MustCompile(`tvg-id="([^"]*)"`)
	reTvgLogo     = regexp.MustCompile(`tvg-logo="([^"]*)"`)
	reTvgCountry  = regexp.MustCompile(`tvg-country="([^"]*)"`)
	reTvgLanguage = regexp.MustCompile(`tvg-language="([^"]*)"`)
	reGroup       = regexp.MustCompile(`group-title="([^"]*)"`)
)

// Parse reads an M3U playlist from r and returns channels in source order.
//
// The first line (the #EXTM3U header) is skipped. Each #EXTINF line becomes
// the pending metadata for the next non-comment, non-blank line, which is
// taken as the stream URL. An EXTINF with no URL before the next EXTINF (or
// end of input) contributes no channel. A record that cannot be built is
// logged and skipped; parsing continues.
func Parse(r io.Reader) ([]models.Channel, error) {
	var channels []models.Channel
	scanner := bufio.NewScanner(r)
	// Some playlists carry very long EXTINF lines.
	const maxSize = 1024 * 1024
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, maxSize)

	scanner.Scan() // #EXTM3U header

	var extinfLine string
	lineNumber := 1

	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "#EXTINF:"):
			// An unconsumed pending EXTINF is overwritten here, which
			// drops entries that never got a URL.
			extinfLine = line
		case strings.HasPrefix(line, "#"):
			// Other comments never touch pending state.
		case extinfLine != "":
			ch, err := buildChannel(extinfLine, line)
			if err != nil {
				log.Warn().Int("line", lineNumber).Err(err).Msg("skipping channel")
			} else {
				channels = append(channels, ch)
			}
			extinfLine = ""
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return channels, nil
}

// buildChannel extracts channel attributes from an EXTINF line.
// Name falls back to the text after the last comma; group falls back to
// Ungrouped; all other attributes stay nil when absent.
func buildChannel(extinf, url string) (models.Channel, error) {
	name := matchFirst(reTvgName, extinf)
	if name == "" {
		name = commaFallbackName(extinf)
	}
	if name == "" {
		return models.Channel{}, fmt.Errorf("no channel name in %q", extinf)
	}

	group := matchFirst(reGroup, extinf)
	if group == "" {
		group = models.Ungrouped
	}

	return models.Channel{
		Name:     name,
		Group:    group,
		URL:      url,
		Logo:     matchFirstPtr(reTvgLogo, extinf),
		EPGID:    matchFirstPtr(reTvgID, extinf),
		Country:  matchFirstPtr(reTvgCountry, extinf),
		Language: matchFirstPtr(reTvgLanguage, extinf),
	}, nil
}

// commaFallbackName returns the text after the last comma of the EXTINF
// line, or the whole line when it has no comma.
func commaFallbackName(extinf string) string {
	if i := strings.LastIndex(extinf, ","); i >= 0 {
		return strings.TrimSpace(extinf[i+1:])
	}
	return strings.TrimSpace(extinf)
}

func matchFirst(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}

func matchFirstPtr(re *regexp.Regexp, s string) *string {
	v := matchFirst(re, s)
	if v == "" {
		return nil
	}
	return &v
}
