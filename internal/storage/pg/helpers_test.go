package pg

import (
	"strings"

	"github.com/DjordjeVuckovic/torrent-hunter/internal/domain"
	"github.com/DjordjeVuckovic/torrent-hunter/pkg/pagination"
)

func countOf(s, sub string) int {
	return strings.Count(s, sub)
}

func offsetWindow(page, perPage int) pagination.Window {
	return pagination.Offset(page, perPage)
}

func fixtureItems(n int) []domain.Torrent {
	items := make([]domain.Torrent, n)
	for i := range items {
		items[i] = domain.Torrent{ID: int64(n - i)}
	}
	return items
}
