// Package search defines the validated search request and the criteria handed to a backend.
package search

import (
	"strings"

	"github.com/DjordjeVuckovic/torrent-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/filter"
)

// SortKey is a sortable result attribute.
type SortKey string

const (
	SortID        SortKey = "id"
	SortSize      SortKey = "size"
	SortSeeders   SortKey = "seeders"
	SortLeechers  SortKey = "leechers"
	SortDownloads SortKey = "downloads"
)

var sortKeys = map[SortKey]struct {
	column string
	field  string
	stats  bool
}{
	SortID:        {column: "t.id", field: "id"},
	SortSize:      {column: "t.filesize", field: "filesize"},
	SortSeeders:   {column: "st.seed_count", field: "seed_count", stats: true},
	SortLeechers:  {column: "st.leech_count", field: "leech_count", stats: true},
	SortDownloads: {column: "st.download_count", field: "download_count", stats: true},
}

// ParseSortKey is case-insensitive.
func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := sortKeys[k]; !ok {
		return "", apperr.ErrInvalidSort
	}
	return k, nil
}

// Column is the qualified datastore column.
func (k SortKey) Column() string {
	return sortKeys[k].column
}

// IndexField is the index document field.
func (k SortKey) IndexField() string {
	return sortKeys[k].field
}

// NeedsStats reports whether sorting requires the statistics relation.
func (k SortKey) NeedsStats() bool {
	return sortKeys[k].stats
}

type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case OrderAsc, OrderDesc:
		return o, nil
	}
	return "", apperr.ErrInvalidOrder
}

func (o SortOrder) Desc() bool {
	return o == OrderDesc
}

// Quality is the status filter selected by the caller.
type Quality = filter.Quality

const (
	QualityAll          = filter.QualityAll
	QualityNoRemakes    = filter.QualityNoRemakes
	QualityTrustedOnly  = filter.QualityTrustedOnly
	QualityCompleteOnly = filter.QualityCompleteOnly
)

// Request is a validated search. Build it with Parse.
type Request struct {
	Term          string
	ViewingUserID *int64

	Sort  SortKey
	Order SortOrder

	MainCategory int
	SubCategory  int
	Quality      Quality

	Page       int
	PerPage    int
	MaxResults int

	RSS            bool
	Admin          bool
	LoggedInUserID *int64
}

// RawParams is the unvalidated caller input. Empty Category means no category filter;
// zero page sizes take the defaults.
type RawParams struct {
	Term     string
	Sort     string
	Order    string
	Category string
	Quality  string

	Page       int
	PerPage    int
	MaxResults int

	RSS            bool
	Admin          bool
	ViewingUserID  *int64
	LoggedInUserID *int64
}

const (
	DefaultSort    = string(SortID)
	DefaultOrder   = string(OrderDesc)
	DefaultQuality = "0"
)

// NewRawParams returns params with the listing defaults filled in.
func NewRawParams() RawParams {
	return RawParams{
		Sort:    DefaultSort,
		Order:   DefaultOrder,
		Quality: DefaultQuality,
	}
}
