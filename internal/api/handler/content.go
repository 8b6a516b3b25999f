package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/enzocoder/portfolio-api/internal/core/domain"
	"github.com/enzocoder/portfolio-api/internal/core/ports"
)

// listInput reads the public listing query: category, featured (only "true"
// filters) and an optional positive limit.
func listInput(c echo.Context) (ports.ListInput, error) {
	in := ports.ListInput{
		Category: c.QueryParam("category"),
		Featured: c.QueryParam("featured") == "true",
	}
	if c.QueryParam("limit") != "" {
		var limit int
		if err := echo.QueryParamsBinder(c).Int("limit", &limit).BindError(); err != nil || limit <= 0 {
			return in, domain.Invalid("limit", "must be a positive integer")
		}
		in.Limit = limit
	}
	return in, nil
}

// nonNil keeps empty listings rendered as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
