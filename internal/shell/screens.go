package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog/log"

	"github.com/mvens/tvlens/internal/models"
	"github.com/mvens/tvlens/internal/player"
	"github.com/mvens/tvlens/internal/search"
)

func (s *Shell) mainMenu(ctx context.Context) {
	for {
		s.clear()
		fmt.Fprintln(s.out, "=== Main Menu ===")
		fmt.Fprintln(s.out, "[1] View All Channels")
		fmt.Fprintln(s.out, "[2] Browse by Group")
		fmt.Fprintln(s.out, "[3] Search Channels")
		fmt.Fprintln(s.out, "[4] Exit")
		if s.vault != nil {
			fmt.Fprintln(s.out, "[5] Favorites")
		}

		choice, err := s.prompt("Choose an option: ")
		switch {
		case errors.Is(err, io.EOF):
			return
		case errors.Is(err, errInterrupted):
			if s.confirmExit("Do you want to exit?") {
				return
			}
			continue
		}

		switch choice {
		case "1":
			s.browseChannels(ctx, s.channels)
		case "2":
			s.browseGroups(ctx)
		case "3":
			s.searchMenu(ctx)
		case "4":
			return
		case "5":
			if s.vault != nil {
				s.favoritesScreen(ctx)
				continue
			}
			fallthrough
		default:
			fmt.Fprintln(s.out, "Invalid option")
			s.pause()
		}
	}
}

// browseChannels shows a numbered table and lets the user play an entry.
// Invalid input redraws the same screen; an interrupt goes back.
func (s *Shell) browseChannels(ctx context.Context, channels []models.Channel) {
	for {
		s.clear()
		s.displayChannels(channels)

		label := "\nEnter channel number to play, 'b' for back: "
		if s.vault != nil {
			label = "\nEnter channel number to play, 'f N' to toggle favorite, 'b' for back: "
		}
		choice, err := s.prompt(label)
		if errors.Is(err, io.EOF) || errors.Is(err, errInterrupted) {
			return
		}
		if choice == "" || strings.EqualFold(choice, "b") {
			return
		}

		if s.vault != nil {
			if fields := strings.Fields(choice); len(fields) == 2 && strings.EqualFold(fields[0], "f") {
				s.toggleFavorite(ctx, channels, fields[1])
				continue
			}
		}

		idx, err := strconv.Atoi(choice)
		if err != nil {
			fmt.Fprintln(s.out, "Invalid input")
			s.pause()
			continue
		}
		if idx < 1 || idx > len(channels) {
			fmt.Fprintln(s.out, "Invalid channel number")
			s.pause()
			continue
		}

		s.playChannel(channels[idx-1])
	}
}

func (s *Shell) playChannel(ch models.Channel) {
	err := s.launch(ch)
	switch {
	case err == nil:
	case errors.Is(err, player.ErrNotFound):
		fmt.Fprintln(s.out, "Error: VLC media player not found")
		s.pause()
	default:
		log.Error().Err(err).Str("channel", ch.Name).Msg("playback")
		fmt.Fprintln(s.out, "An error occurred. Please try again.")
		s.pause()
	}
}

func (s *Shell) toggleFavorite(ctx context.Context, channels []models.Channel, arg string) {
	idx, err := strconv.Atoi(arg)
	if err != nil || idx < 1 || idx > len(channels) {
		fmt.Fprintln(s.out, "Invalid channel number")
		s.pause()
		return
	}
	ch := channels[idx-1]
	fav, err := s.vault.ToggleFavorite(ctx, s.sourceID, ch.Name, ch.URL)
	if err != nil {
		log.Error().Err(err).Str("channel", ch.Name).Msg("toggling favorite")
		fmt.Fprintln(s.out, "Could not update favorite")
		s.pause()
		return
	}
	channels[idx-1].Favorite = fav
	for i := range s.channels {
		if s.channels[i].Name == ch.Name && s.channels[i].URL == ch.URL {
			s.channels[i].Favorite = fav
		}
	}
}

func (s *Shell) displayChannels(channels []models.Channel) {
	w := tabwriter.NewWriter(s.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tName\tGroup\tLanguage")
	for i, ch := range channels {
		name := ch.Name
		if ch.Favorite {
			name = "* " + name
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, name, orNA(ch.Group), orNAPtr(ch.Language))
	}
	_ = w.Flush()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func orNAPtr(s *string) string {
	if s == nil || *s == "" {
		return "N/A"
	}
	return *s
}

func (s *Shell) browseGroups(ctx context.Context) {
	groups := models.GroupBy(s.channels)
	for {
		s.clear()
		for i, g := range groups {
			fmt.Fprintf(s.out, "[%d] %s (%d channels)\n", i+1, g.Name, len(g.Channels))
		}

		choice, err := s.prompt("\nSelect group number, 'b' for back: ")
		if errors.Is(err, io.EOF) || errors.Is(err, errInterrupted) {
			return
		}
		if choice == "" || strings.EqualFold(choice, "b") {
			return
		}

		idx, err := strconv.Atoi(choice)
		if err != nil || idx < 1 || idx > len(groups) {
			fmt.Fprintln(s.out, "Invalid group number")
			s.pause()
			continue
		}
		s.browseChannels(ctx, groups[idx-1].Channels)
	}
}

func (s *Shell) searchMenu(ctx context.Context) {
	for {
		s.clear()
		query, err := s.prompt("\nEnter search term (or 'b' for back): ")
		if errors.Is(err, io.EOF) || errors.Is(err, errInterrupted) {
			return
		}
		if strings.EqualFold(query, "b") {
			return
		}

		s.currentFilter = query
		results := search.Filter(query, s.channels)
		if len(results) == 0 {
			fmt.Fprintln(s.out, "No channels found")
			s.pause()
			continue
		}
		s.browseChannels(ctx, results)
	}
}

func (s *Shell) favoritesScreen(ctx context.Context) {
	favs, err := s.vault.Favorites(ctx)
	if err != nil {
		log.Error().Err(err).Msg("listing favorites")
		fmt.Fprintln(s.out, "An error occurred. Please try again.")
		s.pause()
		return
	}
	if len(favs) == 0 {
		fmt.Fprintln(s.out, "No favorites yet")
		s.pause()
		return
	}
	s.browseChannels(ctx, favs)
}
