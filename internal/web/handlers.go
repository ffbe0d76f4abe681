package web

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

func idParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, echo.NewHTTPError(http.StatusNotFound, "no such page")
	}
	return id, nil
}

// render adds the cross-page context every template expects.
func (s *Server) render(c echo.Context, code int, name string, data echo.Map) error {
	if data == nil {
		data = echo.Map{}
	}
	if _, ok := data["Flash"]; !ok {
		data["Flash"] = takeFlash(c)
	}
	data["LoggedIn"] = identityFrom(c) != nil
	return c.Render(code, name, data)
}

func redirect(c echo.Context, to string) error {
	return c.Redirect(http.StatusSeeOther, to)
}
