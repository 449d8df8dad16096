package models

// Group is a named bucket of channels (group-title from M3U).
type Group struct {
	Name     string    `json:"name"`
	Channels []Channel `json:"channels"`
}

// GroupBy buckets channels by group, preserving the order in which each
// group first appears in the playlist.
func GroupBy(channels []Channel) []Group {
	index := make(map[string]int, len(channels))
	var groups []Group
	for _, ch := range channels {
		name := ch.Group
		if name == "" {
			name = Ungrouped
		}
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, Group{Name: name})
		}
		groups[i].Channels = append(groups[i].Channels, ch)
	}
	return groups
}
