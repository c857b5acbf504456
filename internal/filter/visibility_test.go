package filter

import (
	"math/rand/v2"
	"testing"

	"github.com/DjordjeVuckovic/torrent-hunter/internal/domain"
	"github.com/stretchr/testify/assert"
)

func torrent(id int64, uploader *int64, flags domain.Flags) domain.Torrent {
	return domain.Torrent{ID: id, UploaderID: uploader, Flags: flags}
}

func TestVisibility_Expressions(t *testing.T) {
	tests := []struct {
		name     string
		viewing  *int64
		loggedIn *int64
		admin    bool
		rss      bool
		want     string
	}{
		{
			name: "anonymous general",
			want: "(deleted=false AND hidden=false)",
		},
		{
			name:     "logged in general",
			loggedIn: ptr(5),
			want:     "(deleted=false AND (hidden=false OR uploader_id=5))",
		},
		{
			name:     "logged in general rss",
			loggedIn: ptr(5),
			rss:      true,
			want:     "(deleted=false AND hidden=false)",
		},
		{
			name:  "admin general",
			admin: true,
			want:  "*",
		},
		{
			name:    "profile anonymous viewer",
			viewing: ptr(7),
			want:    "(uploader_id=7 AND deleted=false AND hidden=false AND anonymous=false)",
		},
		{
			name:     "profile owner",
			viewing:  ptr(7),
			loggedIn: ptr(7),
			want:     "(uploader_id=7 AND deleted=false)",
		},
		{
			name:     "profile owner rss",
			viewing:  ptr(7),
			loggedIn: ptr(7),
			rss:      true,
			want:     "(uploader_id=7 AND deleted=false AND hidden=false AND anonymous=false)",
		},
		{
			name:     "profile admin",
			viewing:  ptr(7),
			loggedIn: ptr(1),
			admin:    true,
			want:     "uploader_id=7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Visibility(tt.viewing, tt.loggedIn, tt.admin, tt.rss)
			assert.Equal(t, tt.want, String(got))
		})
	}
}

func TestVisibility_OwnerSelfView(t *testing.T) {
	// user 7 has one public, one hidden and one anonymous torrent
	records := []domain.Torrent{
		torrent(1, ptr(7), 0),
		torrent(2, ptr(7), domain.FlagHidden),
		torrent(3, ptr(7), domain.FlagAnonymous),
		torrent(4, ptr(7), domain.FlagDeleted),
		torrent(5, ptr(8), 0),
	}

	visible := func(e Expr) []int64 {
		var ids []int64
		for _, r := range records {
			if Matches(e, r) {
				ids = append(ids, r.ID)
			}
		}
		return ids
	}

	assert.Equal(t, []int64{1, 2, 3}, visible(Visibility(ptr(7), ptr(7), false, false)))
	assert.Equal(t, []int64{1}, visible(Visibility(ptr(7), ptr(9), false, false)))
	assert.Equal(t, []int64{1}, visible(Visibility(ptr(7), ptr(7), false, true)))
	assert.Equal(t, []int64{1, 2, 3, 4}, visible(Visibility(ptr(7), nil, true, false)))
}

func TestVisibility_GeneralOwnHidden(t *testing.T) {
	own := torrent(1, ptr(5), domain.FlagHidden)
	other := torrent(2, ptr(6), domain.FlagHidden)

	e := Visibility(nil, ptr(5), false, false)
	assert.True(t, Matches(e, own))
	assert.False(t, Matches(e, other))

	rss := Visibility(nil, ptr(5), false, true)
	assert.False(t, Matches(rss, own))
}

func randomIdentity(r *rand.Rand) *int64 {
	if r.IntN(3) == 0 {
		return nil
	}
	return ptr(int64(r.IntN(4) + 1))
}

func randomTorrents(r *rand.Rand, n int) []domain.Torrent {
	out := make([]domain.Torrent, n)
	for i := range out {
		var uploader *int64
		if r.IntN(5) > 0 {
			uploader = ptr(int64(r.IntN(4) + 1))
		}
		out[i] = torrent(int64(i+1), uploader, domain.Flags(r.IntN(64)))
	}
	return out
}

// Non-admin results never include deleted torrents, and hidden torrents
// only ever reach their uploader outside of feeds.
func TestVisibility_Properties(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	records := randomTorrents(r, 300)

	for i := 0; i < 500; i++ {
		viewing := randomIdentity(r)
		loggedIn := randomIdentity(r)
		rss := r.IntN(2) == 0

		e := Visibility(viewing, loggedIn, false, rss)
		for _, rec := range records {
			if !Matches(e, rec) {
				continue
			}
			assert.False(t, rec.Flags.Deleted(), "deleted torrent %d visible", rec.ID)
			if viewing != nil {
				assert.Equal(t, *viewing, rec.Uploader())
			}
			if rec.Flags.Hidden() {
				assert.False(t, rss, "hidden torrent %d in feed", rec.ID)
				assert.NotNil(t, loggedIn)
				assert.Equal(t, *loggedIn, rec.Uploader())
			}
			if viewing != nil && rec.Flags.Anonymous() {
				assert.Equal(t, *viewing, *loggedIn)
			}
		}
	}
}

// A feed sees the same records regardless of who is logged in.
func TestVisibility_RSSIgnoresViewer(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	records := randomTorrents(r, 200)

	for i := 0; i < 200; i++ {
		viewing := randomIdentity(r)
		anon := Visibility(viewing, nil, false, true)
		logged := Visibility(viewing, randomIdentity(r), false, true)

		for _, rec := range records {
			assert.Equal(t, Matches(anon, rec), Matches(logged, rec), "record %d", rec.ID)
		}
	}
}

func TestVisibility_AdminSeesEverything(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 6))
	records := randomTorrents(r, 100)

	for _, rss := range []bool{false, true} {
		e := Visibility(nil, randomIdentity(r), true, rss)
		for _, rec := range records {
			assert.True(t, Matches(e, rec))
		}
	}
}
