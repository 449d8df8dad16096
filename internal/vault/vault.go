// Package vault optionally persists loaded playlists and favorites in
// PostgreSQL. It is only wired up when DATABASE_URL is configured; the
// rest of the application never depends on it being present.
package vault

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mvens/tvlens/internal/models"
)

// Vault is a PostgreSQL-backed record of playlist sources, their groups
// and channels, and user favorites.
type Vault struct {
	pool *pgxpool.Pool
}

// Open creates a Vault from a DSN. Caller must call Close when done.
func Open(ctx context.Context, dsn string) (*Vault, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &Vault{pool: pool}, nil
}

// Close closes the connection pool.
func (v *Vault) Close() {
	v.pool.Close()
}

// RecordPlaylist upserts the source identified by m3uURL together with all
// its groups and channels. Channels no longer present upstream are pruned,
// groups that lost all channels are removed, and favorite flags on
// surviving channels are preserved.
func (v *Vault) RecordPlaylist(ctx context.Context, m3uURL string, channels []models.Channel) (int64, error) {
	sourceID, err := v.createOrGetSource(ctx, sourceNameFromURL(m3uURL), m3uURL)
	if err != nil {
		return 0, fmt.Errorf("createOrGetSource: %w", err)
	}

	keepIDs := make([]int64, 0, len(channels))
	groupIDs := make(map[string]int64)

	for i := range channels {
		// Allow interrupt-driven shutdown during long playlists.
		if err := ctx.Err(); err != nil {
			return sourceID, fmt.Errorf("record cancelled: %w", err)
		}

		ch := &channels[i]
		gid, ok := groupIDs[ch.Group]
		if !ok {
			gid, err = v.getOrCreateGroup(ctx, sourceID, ch.Group)
			if err != nil {
				return 0, fmt.Errorf("getOrCreateGroup: %w", err)
			}
			groupIDs[ch.Group] = gid
		}

		cid, err := v.upsertChannel(ctx, sourceID, gid, ch)
		if err != nil {
			return 0, fmt.Errorf("upsertChannel: %w", err)
		}
		keepIDs = append(keepIDs, cid)
	}

	if err := v.removeStaleChannels(ctx, sourceID, keepIDs); err != nil {
		return sourceID, fmt.Errorf("removeStaleChannels: %w", err)
	}
	if err := v.removeOrphanedGroups(ctx, sourceID); err != nil {
		return sourceID, fmt.Errorf("removeOrphanedGroups: %w", err)
	}
	if err := v.updateSourceLastUpdated(ctx, sourceID); err != nil {
		return sourceID, fmt.Errorf("updateSourceLastUpdated: %w", err)
	}
	return sourceID, nil
}

// sourceNameFromURL derives a stable source name from the playlist URL.
func sourceNameFromURL(m3uURL string) string {
	if u, err := url.Parse(m3uURL); err == nil && u.Host != "" {
		return u.Host
	}
	return "playlist"
}
