package models

// Channel is a single stream entry parsed from an M3U playlist.
// Optional attributes are pointers; nil means the attribute was absent
// from the EXTINF line, which is distinct from an empty value.
type Channel struct {
	Name     string  `json:"name"`
	Group    string  `json:"group"` // never empty; "Ungrouped" when the playlist has no group-title
	URL      string  `json:"url"`
	Logo     *string `json:"logo,omitempty"`
	EPGID    *string `json:"epg_id,omitempty"`
	Country  *string `json:"country,omitempty"`
	Language *string `json:"language,omitempty"`
	Category *string `json:"category,omitempty"`
	Favorite bool    `json:"favorite,omitempty"` // populated by the vault, never by the parser
}

// Ungrouped is the group assigned to channels whose EXTINF line carries no group-title.
const Ungrouped = "Ungrouped"
