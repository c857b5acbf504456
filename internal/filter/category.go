package filter

import (
	"fmt"

	"github.com/DjordjeVuckovic/torrent-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/catalog"
)

// Category resolves a main/sub category pair against cat.
// main=0 disables the filter; sub is ignored in that case.
func Category(cat catalog.Catalog, main, sub int) (Expr, error) {
	if main <= 0 {
		return nil, nil
	}

	code := fmt.Sprintf("%d_%d", main, sub)

	if sub <= 0 {
		if _, ok := cat.Main(main); !ok {
			return nil, apperr.NewParamError(apperr.ErrUnknownCategory, "c", code)
		}
		return Eq(FieldMainCategory, int64(main)), nil
	}

	if _, ok := cat.Sub(main, sub); !ok {
		return nil, apperr.NewParamError(apperr.ErrUnknownCategory, "c", code)
	}
	return And{Eq(FieldMainCategory, int64(main)), Eq(FieldSubCategory, int64(sub))}, nil
}
