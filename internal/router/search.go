package router

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/torrent-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/domain"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/search"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/service"
	"github.com/DjordjeVuckovic/torrent-hunter/pkg/pagination"
	"github.com/labstack/echo/v4"
)

const (
	// HeaderUserID carries the authenticated user, set by the upstream proxy
	HeaderUserID = "X-User-Id"
	// HeaderUserAdmin is "true" for administrators
	HeaderUserAdmin = "X-User-Admin"
)

type SearchRouter struct {
	e       *echo.Echo
	service *service.SearchService
}

func NewSearchRouter(e *echo.Echo, svc *service.SearchService) *SearchRouter {
	return &SearchRouter{
		e:       e,
		service: svc,
	}
}

func (r *SearchRouter) Bind() {
	r.e.GET("/search", r.searchHandler)
	r.e.GET("/user/:id/search", r.userSearchHandler)
}

// SearchResponse is a page of torrents.
type SearchResponse struct {
	pagination.OffsetResult[domain.Torrent]
	TotalIsLowerBound bool   `json:"total_is_lower_bound"`
	Backend           string `json:"backend"`
}

// searchHandler godoc
// @Summary Search torrents
// @Description Full-text torrent search with visibility, category and quality filters
// @Tags search
// @Produce json
// @Param q query string false "Search term"
// @Param s query string false "Sort key: id, size, seeders, leechers, downloads" default(id)
// @Param o query string false "Sort order: asc, desc" default(desc)
// @Param c query string false "Category as main_sub" default(0_0)
// @Param f query string false "Quality filter 0-3" default(0)
// @Param p query int false "Page" default(1)
// @Param per_page query int false "Page size" default(75)
// @Param rss query bool false "Feed mode"
// @Param X-User-Id header int false "Authenticated user"
// @Param X-User-Admin header bool false "Administrator flag"
// @Success 200 {object} SearchResponse
// @Failure 400 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /search [get]
func (r *SearchRouter) searchHandler(c echo.Context) error {
	raw, err := bindRawParams(c)
	if err != nil {
		return err
	}
	return r.respond(c, raw)
}

// userSearchHandler godoc
// @Summary Search a user's torrents
// @Tags search
// @Produce json
// @Description Same filters as /search, restricted to one uploader. Hidden and anonymous uploads are shown to the owner and to administrators.
// @Param id path int true "Uploader id"
// @Param q query string false "Search term"
// @Param s query string false "Sort key: id, size, seeders, leechers, downloads" default(id)
// @Param o query string false "Sort order: asc, desc" default(desc)
// @Param c query string false "Category as main_sub" default(0_0)
// @Param f query string false "Quality filter 0-3" default(0)
// @Param p query int false "Page" default(1)
// @Param per_page query int false "Page size" default(75)
// @Param rss query bool false "Feed mode"
// @Param X-User-Id header int false "Authenticated user"
// @Param X-User-Admin header bool false "Administrator flag"
// @Success 200 {object} SearchResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /user/{id}/search [get]
func (r *SearchRouter) userSearchHandler(c echo.Context) error {
	raw, err := bindRawParams(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperr.NewParamError(apperr.ErrInvalidUser, "id", c.Param("id"))
	}
	raw.ViewingUserID = &id

	return r.respond(c, raw)
}

func (r *SearchRouter) respond(c echo.Context, raw search.RawParams) error {
	res, err := r.service.Search(c.Request().Context(), raw)
	if err != nil {
		return err
	}

	page := pagination.NewOffsetResult(res.Items, res.Total, res.Page, res.PerPage, res.HasMore).
		CapLastPage(res.MaxResults)

	return c.JSON(http.StatusOK, SearchResponse{
		OffsetResult:      *page,
		TotalIsLowerBound: res.TotalIsLowerBound,
		Backend:           res.Backend,
	})
}

// bindRawParams reads query parameters and identity headers. Values are validated by the service.
func bindRawParams(c echo.Context) (search.RawParams, error) {
	raw := search.NewRawParams()
	raw.Term = c.QueryParam("q")

	if v, ok := queryValue(c, "s"); ok {
		raw.Sort = v
	}
	if v, ok := queryValue(c, "o"); ok {
		raw.Order = v
	}
	if v, ok := queryValue(c, "f"); ok {
		raw.Quality = v
	}
	raw.Category = c.QueryParam("c")

	var err error
	if raw.Page, err = intParam(c, "p"); err != nil {
		return raw, err
	}
	if raw.PerPage, err = intParam(c, "per_page"); err != nil {
		return raw, err
	}
	raw.RSS = c.QueryParam("rss") == "true" || c.QueryParam("page") == "rss"

	if v := c.Request().Header.Get(HeaderUserID); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return raw, apperr.NewParamError(apperr.ErrInvalidUser, HeaderUserID, v)
		}
		raw.LoggedInUserID = &id
	}
	raw.Admin = strings.EqualFold(c.Request().Header.Get(HeaderUserAdmin), "true")

	return raw, nil
}

// queryValue reports a parameter as set only when it is present in the query string.
func queryValue(c echo.Context, name string) (string, bool) {
	values, ok := c.QueryParams()[name]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func intParam(c echo.Context, name string) (int, error) {
	v := c.QueryParam(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, apperr.NewParamError(apperr.ErrInvalidPage, name, v)
	}
	return n, nil
}
