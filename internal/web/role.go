package web

import (
	"fmt"
	"net/http"

	"delservice/internal/apperr"
	"delservice/internal/role"

	"github.com/labstack/echo/v4"
)

func (s *Server) roleList(c echo.Context) error {
	roles, err := s.roles.List(c.Request().Context())
	if err != nil {
		return err
	}
	return s.render(c, http.StatusOK, "role_list", echo.Map{
		"Title": "Roles",
		"Roles": roles,
	})
}

func (s *Server) roleCreateForm(c echo.Context) error {
	return s.render(c, http.StatusOK, "role_form", echo.Map{
		"Title":  "New role",
		"Form":   role.Form{},
		"Action": "/roles/create",
	})
}

func (s *Server) roleCreate(c echo.Context) error {
	var f role.Form
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed form")
	}

	_, err := s.roles.Create(c.Request().Context(), f)
	if ve, ok := apperr.AsValidation(err); ok {
		return s.render(c, http.StatusUnprocessableEntity, "role_form", echo.Map{
			"Title":  "New role",
			"Form":   f,
			"Errors": ve.Fields,
			"Action": "/roles/create",
		})
	}
	if err != nil {
		return err
	}

	setFlash(c, "success", "Role created")
	return redirect(c, "/roles")
}

func (s *Server) roleEditForm(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	r, err := s.roles.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	f := role.Form{Name: r.Name}
	if r.Description != nil {
		f.Description = *r.Description
	}
	return s.render(c, http.StatusOK, "role_form", echo.Map{
		"Title":  "Edit role",
		"Form":   f,
		"Action": fmt.Sprintf("/roles/%d/edit", id),
	})
}

func (s *Server) roleEdit(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var f role.Form
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed form")
	}

	_, err = s.roles.Update(c.Request().Context(), id, f)
	if ve, ok := apperr.AsValidation(err); ok {
		return s.render(c, http.StatusUnprocessableEntity, "role_form", echo.Map{
			"Title":  "Edit role",
			"Form":   f,
			"Errors": ve.Fields,
			"Action": fmt.Sprintf("/roles/%d/edit", id),
		})
	}
	if err != nil {
		return err
	}

	setFlash(c, "success", "Role updated")
	return redirect(c, "/roles")
}

func (s *Server) roleDeleteConfirm(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	r, err := s.roles.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return s.render(c, http.StatusOK, "confirm_delete", echo.Map{
		"Title":     "Delete role",
		"Subject":   fmt.Sprintf("role %s", r.Name),
		"Warning":   "Staff accounts holding this role will be deleted as well.",
		"Action":    fmt.Sprintf("/roles/%d/delete", id),
		"CancelURL": "/roles",
	})
}

func (s *Server) roleDelete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := s.roles.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	setFlash(c, "success", "Role deleted")
	return redirect(c, "/roles")
}
