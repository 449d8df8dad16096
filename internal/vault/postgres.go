package vault

import (
	"context"
	"fmt"

	"github.com/mvens/tvlens/internal/models"
)

func (v *Vault) createOrGetSource(ctx context.Context, name, url string) (int64, error) {
	var id int64
	err := v.pool.QueryRow(ctx,
		`INSERT INTO sources (name, url)
		 VALUES ($1, $2)
		 ON CONFLICT (name) DO UPDATE SET url = EXCLUDED.url
		 RETURNING id`,
		name, url,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (v *Vault) getOrCreateGroup(ctx context.Context, sourceID int64, name string) (int64, error) {
	var id int64
	err := v.pool.QueryRow(ctx,
		`INSERT INTO groups (name, source_id) VALUES ($1, $2)
		 ON CONFLICT (name, source_id) DO UPDATE SET name = EXCLUDED.name
		 RETURNING id`,
		name, sourceID,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// upsertChannel inserts or updates a channel; the favorite flag is user
// data and is never overwritten by a refresh.
func (v *Vault) upsertChannel(ctx context.Context, sourceID, groupID int64, ch *models.Channel) (int64, error) {
	var id int64
	err := v.pool.QueryRow(ctx,
		`INSERT INTO channels (name, url, logo, epg_id, country, language, source_id, group_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (name, source_id, url) DO UPDATE SET
		   logo = EXCLUDED.logo, epg_id = EXCLUDED.epg_id,
		   country = EXCLUDED.country, language = EXCLUDED.language,
		   group_id = EXCLUDED.group_id
		 RETURNING id`,
		ch.Name, ch.URL, ch.Logo, ch.EPGID, ch.Country, ch.Language, sourceID, groupID,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (v *Vault) removeStaleChannels(ctx context.Context, sourceID int64, keepIDs []int64) error {
	_, err := v.pool.Exec(ctx,
		`DELETE FROM channels WHERE source_id = $1 AND NOT (id = ANY($2))`,
		sourceID, keepIDs,
	)
	return err
}

func (v *Vault) removeOrphanedGroups(ctx context.Context, sourceID int64) error {
	_, err := v.pool.Exec(ctx,
		`DELETE FROM groups
		 WHERE source_id = $1
		   AND NOT EXISTS (SELECT 1 FROM channels WHERE channels.group_id = groups.id)`,
		sourceID,
	)
	return err
}

func (v *Vault) updateSourceLastUpdated(ctx context.Context, sourceID int64) error {
	_, err := v.pool.Exec(ctx, `UPDATE sources SET last_updated = NOW() WHERE id = $1`, sourceID)
	return err
}

// ToggleFavorite flips the favorite flag of the channel identified by
// name and url within the source and returns the new value.
func (v *Vault) ToggleFavorite(ctx context.Context, sourceID int64, name, url string) (bool, error) {
	var fav bool
	err := v.pool.QueryRow(ctx,
		`UPDATE channels SET favorite = NOT favorite
		 WHERE source_id = $1 AND name = $2 AND url = $3
		 RETURNING favorite`,
		sourceID, name, url,
	).Scan(&fav)
	if err != nil {
		return false, fmt.Errorf("ToggleFavorite: %w", err)
	}
	return fav, nil
}

// FavoriteURLs returns the set of favorited channel URLs for a source,
// keyed by name+"\n"+url.
func (v *Vault) FavoriteURLs(ctx context.Context, sourceID int64) (map[string]bool, error) {
	rows, err := v.pool.Query(ctx,
		`SELECT name, url FROM channels WHERE source_id = $1 AND favorite`,
		sourceID,
	)
	if err != nil {
		return nil, fmt.Errorf("FavoriteURLs: %w", err)
	}
	defer rows.Close()

	favs := make(map[string]bool)
	for rows.Next() {
		var name, url string
		if err := rows.Scan(&name, &url); err != nil {
			return nil, fmt.Errorf("FavoriteURLs scan: %w", err)
		}
		favs[FavoriteKey(name, url)] = true
	}
	return favs, rows.Err()
}

// FavoriteKey builds the lookup key used by FavoriteURLs.
func FavoriteKey(name, url string) string {
	return name + "\n" + url
}

// Favorites returns all favorited channels across sources, with their
// group names joined in.
func (v *Vault) Favorites(ctx context.Context) ([]models.Channel, error) {
	rows, err := v.pool.Query(ctx,
		`SELECT c.name, c.url, g.name, c.logo, c.epg_id, c.country, c.language
		 FROM channels c
		 JOIN groups g ON g.id = c.group_id
		 WHERE c.favorite
		 ORDER BY c.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("Favorites: %w", err)
	}
	defer rows.Close()

	var channels []models.Channel
	for rows.Next() {
		var ch models.Channel
		if err := rows.Scan(&ch.Name, &ch.URL, &ch.Group, &ch.Logo, &ch.EPGID, &ch.Country, &ch.Language); err != nil {
			return nil, fmt.Errorf("Favorites scan: %w", err)
		}
		ch.Favorite = true
		channels = append(channels, ch)
	}
	return channels, rows.Err()
}
