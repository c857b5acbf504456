package search

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/torrent-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/filter"
	"github.com/DjordjeVuckovic/torrent-hunter/pkg/pagination"
	"github.com/go-playground/validator/v10"
)

var categoryPattern = regexp.MustCompile(`^(\d+)_(\d+)$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("query"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// Parse validates raw input into a Request. It performs no I/O.
// Feeds are forced to newest-first on page one.
func Parse(raw RawParams) (*Request, error) {
	sort, err := ParseSortKey(raw.Sort)
	if err != nil {
		return nil, apperr.NewParamError(err, "s", raw.Sort)
	}

	order, err := ParseSortOrder(raw.Order)
	if err != nil {
		return nil, apperr.NewParamError(err, "o", raw.Order)
	}

	quality, err := ParseQuality(raw.Quality)
	if err != nil {
		return nil, apperr.NewParamError(err, "f", raw.Quality)
	}

	main, sub, err := ParseCategory(raw.Category)
	if err != nil {
		return nil, apperr.NewParamError(err, "c", raw.Category)
	}

	pages := pagination.OffsetRequest{
		Page:       raw.Page,
		Size:       raw.PerPage,
		MaxResults: raw.MaxResults,
	}
	pages.Normalize()
	if err := validatePages(pages); err != nil {
		return nil, err
	}

	req := &Request{
		Term:           raw.Term,
		ViewingUserID:  raw.ViewingUserID,
		Sort:           sort,
		Order:          order,
		MainCategory:   main,
		SubCategory:    sub,
		Quality:        quality,
		Page:           pages.Page,
		PerPage:        pages.Size,
		MaxResults:     pages.MaxResults,
		RSS:            raw.RSS,
		Admin:          raw.Admin,
		LoggedInUserID: raw.LoggedInUserID,
	}

	if req.RSS {
		req.Sort = SortID
		req.Order = OrderDesc
		req.Page = 1
	}

	return req, nil
}

// ParseQuality accepts the wire codes "0".."3" and the filter names.
func ParseQuality(s string) (Quality, error) {
	return filter.ParseQuality(s)
}

// ParseCategory splits a "main_sub" code. Empty input is "0_0".
func ParseCategory(s string) (main, sub int, err error) {
	if s == "" {
		return 0, 0, nil
	}

	m := categoryPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, apperr.ErrInvalidCategory
	}

	main, err = strconv.Atoi(m[1])
	if err != nil {
		return 0, 0, apperr.ErrInvalidCategory
	}
	sub, err = strconv.Atoi(m[2])
	if err != nil {
		return 0, 0, apperr.ErrInvalidCategory
	}
	return main, sub, nil
}

func validatePages(r pagination.OffsetRequest) error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return apperr.NewParamError(apperr.ErrInvalidPage, fe.Field(), strconv.Itoa(fieldValue(fe)))
	}
	return apperr.NewValidationWrap("pagination", errors.Join(apperr.ErrInvalidPage, err))
}

func fieldValue(fe validator.FieldError) int {
	v, _ := fe.Value().(int)
	return v
}
