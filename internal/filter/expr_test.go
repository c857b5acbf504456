package filter

import (
	"testing"

	"github.com/DjordjeVuckovic/torrent-hunter/internal/domain"
	"github.com/stretchr/testify/assert"
)

func ptr(v int64) *int64 { return &v }

func TestTerm_Match(t *testing.T) {
	tr := domain.Torrent{
		ID:             1,
		UploaderID:     ptr(42),
		MainCategoryID: 3,
		SubCategoryID:  1,
		Flags:          domain.FlagTrusted | domain.FlagHidden,
	}

	tests := []struct {
		name string
		term Term
		want bool
	}{
		{name: "flag set", term: Is(FieldTrusted, true), want: true},
		{name: "flag set negated", term: Is(FieldTrusted, false), want: false},
		{name: "flag clear", term: Is(FieldDeleted, false), want: true},
		{name: "hidden", term: Is(FieldHidden, true), want: true},
		{name: "uploader", term: Eq(FieldUploader, 42), want: true},
		{name: "other uploader", term: Eq(FieldUploader, 7), want: false},
		{name: "main category", term: Eq(FieldMainCategory, 3), want: true},
		{name: "sub category", term: Eq(FieldSubCategory, 2), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.term.Match(tr))
		})
	}
}

func TestTerm_Match_NoUploader(t *testing.T) {
	tr := domain.Torrent{ID: 1}
	assert.False(t, Eq(FieldUploader, 0).Match(tr))
}

func TestAll(t *testing.T) {
	a := Is(FieldDeleted, false)
	b := Is(FieldHidden, false)
	c := Eq(FieldUploader, 1)

	assert.Nil(t, All())
	assert.Nil(t, All(nil, nil))
	assert.Equal(t, a, All(nil, a))
	assert.Equal(t, And{a, b, c}, All(And{a, And{b}}, nil, c))
	assert.Equal(t, And{a, Or{b, c}}, All(a, Or{b, c}))
}

func TestAndOr_Empty(t *testing.T) {
	tr := domain.Torrent{}
	assert.True(t, And{}.Match(tr))
	assert.False(t, Or{}.Match(tr))
	assert.True(t, Matches(nil, tr))
}

func TestString(t *testing.T) {
	e := All(Is(FieldDeleted, false), Or{Is(FieldHidden, false), Eq(FieldUploader, 5)})
	assert.Equal(t, "(deleted=false AND (hidden=false OR uploader_id=5))", String(e))
	assert.Equal(t, "*", String(nil))
}

func TestField_Flag(t *testing.T) {
	bit, ok := FieldComplete.Flag()
	assert.True(t, ok)
	assert.Equal(t, domain.FlagComplete, bit)

	assert.False(t, FieldUploader.IsFlag())
	assert.True(t, FieldAnonymous.IsFlag())
}
