package search

import (
	"testing"

	"github.com/DjordjeVuckovic/torrent-hunter/internal/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCriteria_Filter(t *testing.T) {
	c := &Criteria{
		Visibility: filter.All(filter.Is(filter.FieldDeleted, false), filter.Is(filter.FieldHidden, false)),
		Quality:    filter.QualityFilter(QualityTrustedOnly),
	}
	assert.Equal(t, "(deleted=false AND hidden=false AND trusted=true)", filter.String(c.Filter()))

	assert.Nil(t, (&Criteria{}).Filter())
}

func TestCriteria_Key(t *testing.T) {
	req, err := Parse(NewRawParams())
	require.NoError(t, err)

	a := &Criteria{Request: *req, Visibility: filter.Is(filter.FieldDeleted, false)}
	b := &Criteria{Request: *req, Visibility: filter.Is(filter.FieldDeleted, false)}
	assert.Equal(t, a.Key(), b.Key())

	b.Page = 2
	assert.NotEqual(t, a.Key(), b.Key())

	c := &Criteria{Request: *req, Visibility: filter.Is(filter.FieldDeleted, false)}
	c.Term = "one piece"
	assert.NotEqual(t, a.Key(), c.Key())
	assert.Contains(t, c.Key(), `q="one piece"`)
}

func TestCriteria_Key_RSSIgnoresDepth(t *testing.T) {
	raw := NewRawParams()
	raw.RSS = true
	req, err := Parse(raw)
	require.NoError(t, err)

	a := &Criteria{Request: *req}
	b := &Criteria{Request: *req}
	b.MaxResults = 20
	assert.Equal(t, a.Key(), b.Key())
}
