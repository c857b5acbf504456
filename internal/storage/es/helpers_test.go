package es

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/DjordjeVuckovic/torrent-hunter/internal/filter"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/search"
	"github.com/stretchr/testify/require"
)

func criteria(t *testing.T, mutate func(r *search.RawParams)) *search.Criteria {
	t.Helper()
	raw := search.NewRawParams()
	if mutate != nil {
		mutate(&raw)
	}
	req, err := search.Parse(raw)
	require.NoError(t, err)

	return &search.Criteria{
		Request:    *req,
		Visibility: filter.Visibility(req.ViewingUserID, req.LoggedInUserID, req.Admin, req.RSS),
		Quality:    filter.QualityFilter(req.Quality),
	}
}

// planBody plans c and decodes the request body into generic JSON.
func planBody(t *testing.T, p *Planner, c *search.Criteria) map[string]any {
	t.Helper()
	plan, err := p.Plan(c)
	require.NoError(t, err)

	raw, err := plan.JSON()
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func toJSONMap(t *testing.T, v any) map[string]any {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

// evalQuery interprets the subset of the query DSL the planner emits against a decoded document.
func evalQuery(t *testing.T, q map[string]any, doc map[string]any) bool {
	t.Helper()
	require.Len(t, q, 1, "query must have exactly one clause: %v", q)

	for kind, body := range q {
		switch kind {
		case "match_all":
			return true
		case "match_none":
			return false
		case "term":
			for field, v := range body.(map[string]any) {
				want := v
				if m, ok := v.(map[string]any); ok {
					want = m["value"]
				}
				got, present := doc[field]
				return present && got == want
			}
			return false
		case "simple_query_string":
			text := strings.ToLower(body.(map[string]any)["query"].(string))
			name := strings.ToLower(doc["display_name"].(string))
			for _, tok := range strings.Fields(text) {
				if !strings.Contains(name, tok) {
					return false
				}
			}
			return true
		case "bool":
			return evalBool(t, body.(map[string]any), doc)
		default:
			t.Fatalf("unsupported query clause %q", kind)
		}
	}
	return false
}

func evalBool(t *testing.T, b map[string]any, doc map[string]any) bool {
	clauses := func(key string) []map[string]any {
		var out []map[string]any
		switch v := b[key].(type) {
		case []any:
			for _, c := range v {
				out = append(out, c.(map[string]any))
			}
		case map[string]any:
			out = append(out, v)
		}
		return out
	}

	for _, key := range []string{"must", "filter"} {
		for _, c := range clauses(key) {
			if !evalQuery(t, c, doc) {
				return false
			}
		}
	}
	for _, c := range clauses("must_not") {
		if evalQuery(t, c, doc) {
			return false
		}
	}

	should := clauses("should")
	if len(should) == 0 {
		return true
	}
	minMatch := 0
	if len(clauses("must")) == 0 && len(clauses("filter")) == 0 {
		minMatch = 1
	}
	if v, ok := b["minimum_should_match"].(float64); ok {
		minMatch = int(v)
	}
	matched := 0
	for _, c := range should {
		if evalQuery(t, c, doc) {
			matched++
		}
	}
	return matched >= minMatch
}

func toJSONString(t *testing.T, v any) string {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return string(raw)
}
