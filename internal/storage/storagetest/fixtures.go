package storagetest

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/DjordjeVuckovic/torrent-hunter/internal/domain"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/filter"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/search"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/storage/in_mem"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserIDs are the uploaders present in Torrents.
var UserIDs = []int64{1, 2, 3, 4}

var nameWords = []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot"}

// Torrents generates a deterministic record set covering every flag combination.
// Every torrent has a statistics row so inner joins keep all of them.
func Torrents(n int) []domain.Torrent {
	r := rand.New(rand.NewPCG(42, 7))

	out := make([]domain.Torrent, n)
	for i := range out {
		var uploader *int64
		if r.IntN(6) > 0 {
			id := UserIDs[r.IntN(len(UserIDs))]
			uploader = &id
		}

		out[i] = domain.Torrent{
			ID:             int64(i + 1),
			DisplayName:    fmt.Sprintf("%s %s %d", nameWords[r.IntN(len(nameWords))], nameWords[r.IntN(len(nameWords))], i+1),
			Filesize:       int64(r.IntN(10) * 1024),
			UploaderID:     uploader,
			MainCategoryID: r.IntN(3) + 1,
			SubCategoryID:  r.IntN(2) + 1,
			Flags:          domain.Flags(i % 64),
			Stats: domain.Statistics{
				Seeders:   r.IntN(5),
				Leechers:  r.IntN(5),
				Downloads: r.IntN(50),
			},
		}
	}
	return out
}

// Identity is a viewer tuple the visibility rules depend on.
type Identity struct {
	Name     string
	Viewing  *int64
	LoggedIn *int64
	Admin    bool
	RSS      bool
}

func ptr(v int64) *int64 { return &v }

// Apply copies the identity onto raw.
func (id Identity) Apply(raw *search.RawParams) {
	raw.ViewingUserID = id.Viewing
	raw.LoggedInUserID = id.LoggedIn
	raw.Admin = id.Admin
	raw.RSS = id.RSS
}

// Resolve parses raw and resolves visibility and quality. Categories are left unrestricted.
func Resolve(raw search.RawParams) (*search.Criteria, error) {
	req, err := search.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &search.Criteria{
		Request:    *req,
		Visibility: filter.Visibility(req.ViewingUserID, req.LoggedInUserID, req.Admin, req.RSS),
		Quality:    filter.QualityFilter(req.Quality),
	}, nil
}

// Identities enumerates the viewer combinations worth comparing across backends.
func Identities() []Identity {
	var out []Identity
	for _, rss := range []bool{false, true} {
		suffix := ""
		if rss {
			suffix = " rss"
		}
		out = append(out,
			Identity{Name: "anonymous" + suffix, RSS: rss},
			Identity{Name: "logged in" + suffix, LoggedIn: ptr(2), RSS: rss},
			Identity{Name: "admin" + suffix, LoggedIn: ptr(1), Admin: true, RSS: rss},
			Identity{Name: "profile stranger" + suffix, Viewing: ptr(3), RSS: rss},
			Identity{Name: "profile other user" + suffix, Viewing: ptr(3), LoggedIn: ptr(2), RSS: rss},
			Identity{Name: "profile owner" + suffix, Viewing: ptr(3), LoggedIn: ptr(3), RSS: rss},
			Identity{Name: "profile admin" + suffix, Viewing: ptr(3), LoggedIn: ptr(1), Admin: true, RSS: rss},
		)
	}
	return out
}

// Expected evaluates c in memory and returns the ids in [from, to) of the ordered matches.
func Expected(torrents []domain.Torrent, c *search.Criteria, from, to int) []int64 {
	matched := in_mem.NewInMemSearcher(torrents...).Select(c)

	from = min(from, len(matched))
	to = min(to, len(matched))
	return IDs(matched[from:to])
}

// IDs extracts torrent ids in order.
func IDs(items []domain.Torrent) []int64 {
	ids := make([]int64, 0, len(items))
	for _, t := range items {
		ids = append(ids, t.ID)
	}
	return ids
}

// SeedPG loads users and torrents with their name vectors and statistics.
func SeedPG(ctx context.Context, db *pgxpool.Pool, torrents []domain.Torrent) error {
	batch := &pgx.Batch{}
	for _, id := range UserIDs {
		batch.Queue(`INSERT INTO users (id, username) VALUES ($1, $2)`, id, fmt.Sprintf("user%d", id))
	}
	for _, t := range torrents {
		batch.Queue(`INSERT INTO torrents (id, display_name, filesize, uploader_id, main_category_id, sub_category_id, flags)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			t.ID, t.DisplayName, t.Filesize, t.UploaderID, t.MainCategoryID, t.SubCategoryID, int64(t.Flags))
		batch.Queue(`INSERT INTO torrent_name_search (torrent_id, name_vector) VALUES ($1, to_tsvector('simple', $2))`,
			t.ID, t.DisplayName)
		batch.Queue(`INSERT INTO statistics (torrent_id, seed_count, leech_count, download_count) VALUES ($1, $2, $3, $4)`,
			t.ID, t.Stats.Seeders, t.Stats.Leechers, t.Stats.Downloads)
	}

	if err := db.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("seed torrents: %w", err)
	}
	return nil
}
