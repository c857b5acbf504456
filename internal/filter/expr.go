// Package filter holds the backend-neutral predicate tree the planners compile.
package filter

import (
	"fmt"
	"strings"

	"github.com/DjordjeVuckovic/torrent-hunter/internal/domain"
)

// Field names a filterable torrent attribute. Values double as index document field names.
type Field string

const (
	FieldDeleted   Field = "deleted"
	FieldHidden    Field = "hidden"
	FieldAnonymous Field = "anonymous"
	FieldRemake    Field = "remake"
	FieldTrusted   Field = "trusted"
	FieldComplete  Field = "complete"

	FieldUploader     Field = "uploader_id"
	FieldMainCategory Field = "main_category_id"
	FieldSubCategory  Field = "sub_category_id"
)

var flagFields = map[Field]domain.Flags{
	FieldDeleted:   domain.FlagDeleted,
	FieldHidden:    domain.FlagHidden,
	FieldAnonymous: domain.FlagAnonymous,
	FieldRemake:    domain.FlagRemake,
	FieldTrusted:   domain.FlagTrusted,
	FieldComplete:  domain.FlagComplete,
}

// Flag returns the status bit behind a boolean field.
func (f Field) Flag() (domain.Flags, bool) {
	bit, ok := flagFields[f]
	return bit, ok
}

func (f Field) IsFlag() bool {
	_, ok := flagFields[f]
	return ok
}

// Expr is a boolean predicate over a torrent. A nil Expr matches everything.
type Expr interface {
	Match(t domain.Torrent) bool
	String() string
}

// Term is a single field comparison. Value is a bool for flag fields and an int64 otherwise.
type Term struct {
	Field Field
	Value any
}

// Is builds a flag atom.
func Is(field Field, v bool) Term {
	return Term{Field: field, Value: v}
}

// Eq builds an integer equality atom.
func Eq(field Field, v int64) Term {
	return Term{Field: field, Value: v}
}

func (t Term) Match(tr domain.Torrent) bool {
	if bit, ok := t.Field.Flag(); ok {
		want, _ := t.Value.(bool)
		return tr.Flags.Has(bit) == want
	}

	want, _ := t.Value.(int64)
	switch t.Field {
	case FieldUploader:
		return tr.UploaderID != nil && *tr.UploaderID == want
	case FieldMainCategory:
		return int64(tr.MainCategoryID) == want
	case FieldSubCategory:
		return int64(tr.SubCategoryID) == want
	}
	return false
}

func (t Term) String() string {
	return fmt.Sprintf("%s=%v", t.Field, t.Value)
}

// And matches when every child matches. An empty And matches everything.
type And []Expr

func (a And) Match(t domain.Torrent) bool {
	for _, e := range a {
		if !e.Match(t) {
			return false
		}
	}
	return true
}

func (a And) String() string {
	return join(a, " AND ")
}

// Or matches when at least one child matches. An empty Or matches nothing.
type Or []Expr

func (o Or) Match(t domain.Torrent) bool {
	for _, e := range o {
		if e.Match(t) {
			return true
		}
	}
	return false
}

func (o Or) String() string {
	return join(o, " OR ")
}

func join(exprs []Expr, sep string) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, sep) + ")"
}

// All combines exprs into one conjunction, skipping nils and flattening nested Ands.
// It returns nil when nothing is left and the sole expression when only one is.
func All(exprs ...Expr) Expr {
	var out And
	for _, e := range exprs {
		out = append(out, Conjuncts(e)...)
	}
	switch len(out) {
	case 0:
		return nil
	case 1:
		return out[0]
	}
	return out
}

// Conjuncts flattens top-level Ands into a list of clauses. nil yields no clauses.
func Conjuncts(e Expr) []Expr {
	switch v := e.(type) {
	case nil:
		return nil
	case And:
		var out []Expr
		for _, child := range v {
			out = append(out, Conjuncts(child)...)
		}
		return out
	default:
		return []Expr{e}
	}
}

// Matches evaluates e against t, treating nil as match-all.
func Matches(e Expr, t domain.Torrent) bool {
	if e == nil {
		return true
	}
	return e.Match(t)
}

// String renders e canonically, "*" for nil.
func String(e Expr) string {
	if e == nil {
		return "*"
	}
	return e.String()
}
