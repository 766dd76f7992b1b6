package handlers

import (
	"bookstore/internal/common"

	"github.com/labstack/echo/v4"
)

// pathID parses the :id path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	return common.ParseID(c.Param(name), name)
}

// bindFields decodes a partial-update body into a field map.
func bindFields(c echo.Context) (map[string]interface{}, error) {
	fields := make(map[string]interface{})
	if err := (&echo.DefaultBinder{}).BindBody(c, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// queryFilters collects the named query parameters that are present.
func queryFilters(c echo.Context, names ...string) map[string]string {
	out := make(map[string]string, len(names))
	for _, name := range names {
		if v := c.QueryParam(name); v != "" {
			out[name] = v
		}
	}
	return out
}
