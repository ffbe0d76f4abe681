package web

import (
	"fmt"
	"net/http"

	"delservice/internal/apperr"
	"delservice/internal/status"

	"github.com/labstack/echo/v4"
)

func (s *Server) statusList(c echo.Context) error {
	statuses, err := s.statuses.List(c.Request().Context())
	if err != nil {
		return err
	}
	return s.render(c, http.StatusOK, "status_list", echo.Map{
		"Title":    "Order statuses",
		"Statuses": statuses,
	})
}

func (s *Server) statusCreateForm(c echo.Context) error {
	return s.render(c, http.StatusOK, "status_form", echo.Map{
		"Title":  "New order status",
		"Form":   status.Form{},
		"Action": "/order-statuses/create",
	})
}

func (s *Server) statusCreate(c echo.Context) error {
	var f status.Form
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed form")
	}

	_, err := s.statuses.Create(c.Request().Context(), f)
	if ve, ok := apperr.AsValidation(err); ok {
		return s.render(c, http.StatusUnprocessableEntity, "status_form", echo.Map{
			"Title":  "New order status",
			"Form":   f,
			"Errors": ve.Fields,
			"Action": "/order-statuses/create",
		})
	}
	if err != nil {
		return err
	}

	setFlash(c, "success", "Order status created")
	return redirect(c, "/order-statuses")
}

func (s *Server) statusEditForm(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	st, err := s.statuses.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return s.render(c, http.StatusOK, "status_form", echo.Map{
		"Title":  "Edit order status",
		"Form":   status.Form{Code: st.Code, Name: st.Name, SortOrder: st.SortOrder},
		"Action": fmt.Sprintf("/order-statuses/%d/edit", id),
	})
}

func (s *Server) statusEdit(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var f status.Form
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed form")
	}

	_, err = s.statuses.Update(c.Request().Context(), id, f)
	if ve, ok := apperr.AsValidation(err); ok {
		return s.render(c, http.StatusUnprocessableEntity, "status_form", echo.Map{
			"Title":  "Edit order status",
			"Form":   f,
			"Errors": ve.Fields,
			"Action": fmt.Sprintf("/order-statuses/%d/edit", id),
		})
	}
	if err != nil {
		return err
	}

	setFlash(c, "success", "Order status updated")
	return redirect(c, "/order-statuses")
}

func (s *Server) statusDeleteConfirm(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	st, err := s.statuses.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return s.render(c, http.StatusOK, "confirm_delete", echo.Map{
		"Title":     "Delete order status",
		"Subject":   fmt.Sprintf("status %s", st.Name),
		"Warning":   "A status still used by orders cannot be deleted.",
		"Action":    fmt.Sprintf("/order-statuses/%d/delete", id),
		"CancelURL": "/order-statuses",
	})
}

func (s *Server) statusDelete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	err = s.statuses.Delete(c.Request().Context(), id)
	if apperr.IsConflict(err) {
		setFlash(c, "error", "This status is used by existing orders and cannot be deleted")
		return redirect(c, "/order-statuses")
	}
	if err != nil {
		return err
	}

	setFlash(c, "success", "Order status deleted")
	return redirect(c, "/order-statuses")
}
