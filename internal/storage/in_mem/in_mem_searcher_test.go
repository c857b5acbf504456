package in_mem_test

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/DjordjeVuckovic/torrent-hunter/internal/domain"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/search"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/storage/in_mem"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/storage/storagetest"
	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolve(t *testing.T, mutate func(*search.RawParams)) *search.Criteria {
	t.Helper()
	raw := search.NewRawParams()
	raw.PerPage = 10
	if mutate != nil {
		mutate(&raw)
	}
	c, err := storagetest.Resolve(raw)
	require.NoError(t, err)
	return c
}

func TestInMemSearcher_Pagination(t *testing.T) {
	s := in_mem.NewInMemSearcher(storagetest.Torrents(100)...)
	ctx := context.Background()
	admin := func(r *search.RawParams) { r.Admin = true; r.Sort = "id"; r.Order = "asc" }

	first, err := s.Search(ctx, resolve(t, admin))
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, storagetest.IDs(first.Items))
	assert.True(t, first.HasMore)
	assert.Equal(t, int64(100), first.Total)
	assert.Equal(t, "memory", first.Backend)

	last, err := s.Search(ctx, resolve(t, func(r *search.RawParams) { admin(r); r.Page = 10 }))
	require.NoError(t, err)
	assert.Len(t, last.Items, 10)
	assert.False(t, last.HasMore)

	beyond, err := s.Search(ctx, resolve(t, func(r *search.RawParams) { admin(r); r.Page = 11 }))
	require.NoError(t, err)
	assert.Empty(t, beyond.Items)
	assert.NotNil(t, beyond.Items)
}

func TestInMemSearcher_UnaddressablePageIsEmpty(t *testing.T) {
	s := in_mem.NewInMemSearcher(storagetest.Torrents(100)...)

	res, err := s.Search(context.Background(), resolve(t, func(r *search.RawParams) {
		r.Admin = true
		r.PerPage = 75
		r.Page = math.MaxInt/75 + 2
	}))
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.NotNil(t, res.Items)
	assert.False(t, res.HasMore)
}

func TestInMemSearcher_TextAndVisibility(t *testing.T) {
	uploader := int64(5)
	s := in_mem.NewInMemSearcher(
		domain.Torrent{ID: 1, DisplayName: "[Group] Foo Bar - 01.mkv"},
		domain.Torrent{ID: 2, DisplayName: "foo baz", Flags: domain.FlagHidden},
		domain.Torrent{ID: 3, DisplayName: "foo bar", Flags: domain.FlagHidden, UploaderID: &uploader},
		domain.Torrent{ID: 4, DisplayName: "bar", Flags: domain.FlagDeleted},
	)

	c := resolve(t, func(r *search.RawParams) {
		r.Term = "FOO bar"
		r.LoggedInUserID = &uploader
	})
	res, err := s.Search(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1}, storagetest.IDs(res.Items))

	short := resolve(t, func(r *search.RawParams) { r.Term = "a b" })
	res, err = s.Search(context.Background(), short)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, storagetest.IDs(res.Items), "single characters are not search terms")
}

func TestInMemSearcher_RSS(t *testing.T) {
	s := in_mem.NewInMemSearcher(storagetest.Torrents(50)...)
	c := resolve(t, func(r *search.RawParams) { r.RSS = true; r.Page = 3; r.Sort = "size" })

	res, err := s.Search(context.Background(), c)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Page)
	assert.False(t, res.HasMore)
	assert.Len(t, res.Items, 10)
	ids := storagetest.IDs(res.Items)
	for i := 1; i < len(ids); i++ {
		assert.Greater(t, ids[i-1], ids[i], "feeds are newest first")
	}
}

func TestInMemSearcher_Cancel(t *testing.T) {
	s := in_mem.NewInMemSearcher(domain.Torrent{ID: 9, DisplayName: "x"})

	res, err := s.Search(context.Background(), resolve(t, nil))
	require.NoError(t, err)
	assert.Equal(t, []int64{9}, storagetest.IDs(res.Items))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Search(ctx, resolve(t, nil))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadJSONFile(t *testing.T) {
	data, err := sonic.Marshal(storagetest.Torrents(5))
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "torrents.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	s, err := in_mem.LoadJSONFile(path)
	require.NoError(t, err)
	assert.Len(t, s.Select(resolve(t, func(r *search.RawParams) { r.Admin = true })), 5)

	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))
	_, err = in_mem.LoadJSONFile(path)
	assert.Error(t, err)

	_, err = in_mem.LoadJSONFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestWords(t *testing.T) {
	assert.Equal(t, []string{"group", "foo", "bar", "01", "mkv"}, in_mem.Words("[Group] Foo Bar - 01.mkv"))
}
