package projects

import (
	"net/http"
	"strconv"

	projectstore "github.com/dalemusser/stratafolio/internal/app/store/projects"
	"github.com/dalemusser/stratafolio/internal/app/system/normalize"
	"github.com/dalemusser/waffle/pantry/query"
)

// Listing defaults. Values that are missing, non-numeric or below 1 fall
// back to the default; page and limit are capped at MaxPage and MaxLimit.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
	MaxPage      = 1_000_000
)

type listParams struct {
	filter projectstore.Filter
	page   int
	limit  int
}

func parseListParams(r *http.Request) listParams {
	p := listParams{
		page:  positiveInt(query.Get(r, "page"), DefaultPage),
		limit: positiveInt(query.Get(r, "limit"), DefaultLimit),
	}
	p.page = min(p.page, MaxPage)
	p.limit = min(p.limit, MaxLimit)

	p.filter.Status = normalize.QueryParam(query.Get(r, "status"))

	// "true" selects featured projects; any other non-empty value selects
	// the rest.
	if v := normalize.QueryParam(query.Get(r, "featured")); v != "" {
		featured := v == "true"
		p.filter.Featured = &featured
	}
	return p
}

func positiveInt(s string, def int) int {
	n, err := strconv.Atoi(normalize.QueryParam(s))
	if err != nil || n < 1 {
		return def
	}
	return n
}
