package web

import (
	"net/http"

	"delservice/internal/apperr"

	"github.com/labstack/echo/v4"
)

func (s *Server) dashboard(c echo.Context) error {
	d, err := s.reports.Dashboard(c.Request().Context())
	if err != nil {
		return err
	}
	return s.render(c, http.StatusOK, "dashboard", echo.Map{
		"Title":     "Dashboard",
		"Dashboard": d,
	})
}

func (s *Server) reportScreen(c echo.Context) error {
	a, err := s.reports.Activity(c.Request().Context())
	if err != nil {
		return err
	}
	return s.render(c, http.StatusOK, "reports", echo.Map{
		"Title":  "Reports",
		"Report": a,
	})
}

// reportPDF degrades to the on-screen report when the renderer fails.
func (s *Server) reportPDF(c echo.Context) error {
	out, err := s.reports.ActivityPDF(c.Request().Context())
	if apperr.IsDependencyUnavailable(err) {
		setFlash(c, "error", "PDF export is unavailable right now, showing the on-screen report instead")
		return redirect(c, "/reports")
	}
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="delivery_report.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", out)
}
