package domain

// Flags is the torrent status bitset as stored by the datastore.
type Flags int64

const (
	FlagAnonymous Flags = 1 << iota
	FlagHidden
	FlagTrusted
	FlagRemake
	FlagComplete
	FlagDeleted
)

func (f Flags) Has(flag Flags) bool {
	return f&flag != 0
}

func (f Flags) Anonymous() bool { return f.Has(FlagAnonymous) }
func (f Flags) Hidden() bool    { return f.Has(FlagHidden) }
func (f Flags) Trusted() bool   { return f.Has(FlagTrusted) }
func (f Flags) Remake() bool    { return f.Has(FlagRemake) }
func (f Flags) Complete() bool  { return f.Has(FlagComplete) }
func (f Flags) Deleted() bool   { return f.Has(FlagDeleted) }

// Torrent is a read-only search record. The search core never mutates it.
type Torrent struct {
	ID             int64      `json:"id"`
	DisplayName    string     `json:"display_name"`
	Filesize       int64      `json:"filesize"`
	UploaderID     *int64     `json:"uploader_id,omitempty"`
	MainCategoryID int        `json:"main_category_id"`
	SubCategoryID  int        `json:"sub_category_id"`
	Flags          Flags      `json:"flags"`
	Stats          Statistics `json:"stats"`

	// Highlight holds display name fragments when the index backend returns them
	Highlight []string `json:"highlight,omitempty"`
}

type Statistics struct {
	Seeders   int `json:"seeders"`
	Leechers  int `json:"leechers"`
	Downloads int `json:"downloads"`
}

// Uploader returns the uploader id, zero when the torrent has no uploader.
func (t Torrent) Uploader() int64 {
	if t.UploaderID == nil {
		return 0
	}
	return *t.UploaderID
}
