package es

import (
	"strconv"

	"github.com/DjordjeVuckovic/torrent-hunter/internal/domain"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
)

// DefaultAnalyzer is the custom analyzer display names are indexed and searched with
const DefaultAnalyzer = "torrent_name_analyzer"

// TorrentDocument is the index representation of a torrent. Status bits are stored as booleans.
type TorrentDocument struct {
	ID             int64  `json:"id"`
	DisplayName    string `json:"display_name"`
	Filesize       int64  `json:"filesize"`
	UploaderID     *int64 `json:"uploader_id,omitempty"`
	MainCategoryID int    `json:"main_category_id"`
	SubCategoryID  int    `json:"sub_category_id"`

	Deleted   bool `json:"deleted"`
	Hidden    bool `json:"hidden"`
	Anonymous bool `json:"anonymous"`
	Remake    bool `json:"remake"`
	Trusted   bool `json:"trusted"`
	Complete  bool `json:"complete"`

	SeedCount     int `json:"seed_count"`
	LeechCount    int `json:"leech_count"`
	DownloadCount int `json:"download_count"`
}

func (d TorrentDocument) DocID() string {
	return strconv.FormatInt(d.ID, 10)
}

func NewTorrentDocument(t domain.Torrent) TorrentDocument {
	return TorrentDocument{
		ID:             t.ID,
		DisplayName:    t.DisplayName,
		Filesize:       t.Filesize,
		UploaderID:     t.UploaderID,
		MainCategoryID: t.MainCategoryID,
		SubCategoryID:  t.SubCategoryID,
		Deleted:        t.Flags.Deleted(),
		Hidden:         t.Flags.Hidden(),
		Anonymous:      t.Flags.Anonymous(),
		Remake:         t.Flags.Remake(),
		Trusted:        t.Flags.Trusted(),
		Complete:       t.Flags.Complete(),
		SeedCount:      t.Stats.Seeders,
		LeechCount:     t.Stats.Leechers,
		DownloadCount:  t.Stats.Downloads,
	}
}

func (d TorrentDocument) Torrent() domain.Torrent {
	var flags domain.Flags
	set := func(on bool, bit domain.Flags) {
		if on {
			flags |= bit
		}
	}
	set(d.Deleted, domain.FlagDeleted)
	set(d.Hidden, domain.FlagHidden)
	set(d.Anonymous, domain.FlagAnonymous)
	set(d.Remake, domain.FlagRemake)
	set(d.Trusted, domain.FlagTrusted)
	set(d.Complete, domain.FlagComplete)

	return domain.Torrent{
		ID:             d.ID,
		DisplayName:    d.DisplayName,
		Filesize:       d.Filesize,
		UploaderID:     d.UploaderID,
		MainCategoryID: d.MainCategoryID,
		SubCategoryID:  d.SubCategoryID,
		Flags:          flags,
		Stats: domain.Statistics{
			Seeders:   d.SeedCount,
			Leechers:  d.LeechCount,
			Downloads: d.DownloadCount,
		},
	}
}

type IndexBuilder struct {
	analyzer string
}

func NewIndexBuilder(analyzer string) *IndexBuilder {
	if analyzer == "" {
		analyzer = DefaultAnalyzer
	}
	return &IndexBuilder{analyzer: analyzer}
}

func (b *IndexBuilder) buildSettings() types.IndexSettings {
	return types.IndexSettings{
		Analysis: &types.IndexSettingsAnalysis{
			Analyzer: map[string]types.Analyzer{
				b.analyzer: types.CustomAnalyzer{
					Tokenizer: "standard",
					Filter:    []string{"lowercase", "asciifolding"},
				},
			},
		},
	}
}

func (b *IndexBuilder) buildMapping() types.TypeMapping {
	return types.TypeMapping{
		Properties: map[string]types.Property{
			"id":               types.NewLongNumberProperty(),
			"display_name":     b.createTextPropertyWithKeyword(b.analyzer),
			"filesize":         types.NewLongNumberProperty(),
			"uploader_id":      types.NewLongNumberProperty(),
			"main_category_id": types.NewIntegerNumberProperty(),
			"sub_category_id":  types.NewIntegerNumberProperty(),
			"deleted":          types.NewBooleanProperty(),
			"hidden":           types.NewBooleanProperty(),
			"anonymous":        types.NewBooleanProperty(),
			"remake":           types.NewBooleanProperty(),
			"trusted":          types.NewBooleanProperty(),
			"complete":         types.NewBooleanProperty(),
			"seed_count":       types.NewIntegerNumberProperty(),
			"leech_count":      types.NewIntegerNumberProperty(),
			"download_count":   types.NewIntegerNumberProperty(),
		},
	}
}

func (b *IndexBuilder) createTextPropertyWithKeyword(analyzer string) types.Property {
	textProp := types.NewTextProperty()
	if analyzer != "" {
		textProp.Analyzer = &analyzer
	}
	textProp.Fields = map[string]types.Property{
		"keyword": types.NewKeywordProperty(),
	}
	return textProp
}
