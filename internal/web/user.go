package web

import (
	"fmt"
	"net/http"

	"delservice/internal/apperr"
	"delservice/internal/user"

	"github.com/labstack/echo/v4"
)

func (s *Server) userList(c echo.Context) error {
	search := c.QueryParam("q")
	users, err := s.users.List(c.Request().Context(), search)
	if err != nil {
		return err
	}
	return s.render(c, http.StatusOK, "user_list", echo.Map{
		"Title":  "Staff",
		"Users":  users,
		"Search": search,
	})
}

func (s *Server) userForm(c echo.Context, code int, title string, f user.Form, action string, errs interface{}) error {
	roles, err := s.roles.List(c.Request().Context())
	if err != nil {
		return err
	}
	return s.render(c, code, "user_form", echo.Map{
		"Title":  title,
		"Form":   f,
		"Roles":  roles,
		"Errors": errs,
		"Action": action,
	})
}

func (s *Server) userCreateForm(c echo.Context) error {
	return s.userForm(c, http.StatusOK, "New staff member", user.Form{Status: "works"}, "/users/create", nil)
}

func (s *Server) userCreate(c echo.Context) error {
	var f user.Form
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed form")
	}

	created, err := s.users.Create(c.Request().Context(), f)
	if ve, ok := apperr.AsValidation(err); ok {
		return s.userForm(c, http.StatusUnprocessableEntity, "New staff member", f, "/users/create", ve.Fields)
	}
	if err != nil {
		return err
	}

	setFlash(c, "success", fmt.Sprintf("Staff member %s created", created.FullName))
	return redirect(c, "/users")
}

func (s *Server) userEditForm(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	u, err := s.users.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	f := user.Form{
		RoleID:   fmt.Sprintf("%d", u.RoleID),
		Login:    u.Login,
		FullName: u.FullName,
		Phone:    u.Phone,
		Status:   u.Status,
		HireDate: u.HireDate.Format("2006-01-02"),
	}
	return s.userForm(c, http.StatusOK, "Edit staff member", f, fmt.Sprintf("/users/%d/edit", id), nil)
}

func (s *Server) userEdit(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var f user.Form
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed form")
	}

	_, err = s.users.Update(c.Request().Context(), id, f)
	if ve, ok := apperr.AsValidation(err); ok {
		return s.userForm(c, http.StatusUnprocessableEntity, "Edit staff member", f, fmt.Sprintf("/users/%d/edit", id), ve.Fields)
	}
	if err != nil {
		return err
	}

	setFlash(c, "success", "Staff member updated")
	return redirect(c, "/users")
}

func (s *Server) userDeleteConfirm(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	u, err := s.users.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return s.render(c, http.StatusOK, "confirm_delete", echo.Map{
		"Title":     "Delete staff member",
		"Subject":   fmt.Sprintf("staff member %s", u.FullName),
		"Warning":   "Orders assigned to this courier will stay, with the courier cleared.",
		"Action":    fmt.Sprintf("/users/%d/delete", id),
		"CancelURL": "/users",
	})
}

func (s *Server) userDelete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := s.users.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	setFlash(c, "success", "Staff member deleted")
	return redirect(c, "/users")
}
