package web

import (
	"fmt"
	"net/http"

	"delservice/internal/apperr"
	"delservice/internal/client"

	"github.com/labstack/echo/v4"
)

func (s *Server) clientList(c echo.Context) error {
	search := c.QueryParam("q")
	clients, err := s.clients.List(c.Request().Context(), search)
	if err != nil {
		return err
	}
	return s.render(c, http.StatusOK, "client_list", echo.Map{
		"Title":   "Clients",
		"Clients": clients,
		"Search":  search,
	})
}

func (s *Server) clientCreateForm(c echo.Context) error {
	return s.render(c, http.StatusOK, "client_form", echo.Map{
		"Title":  "New client",
		"Form":   client.Form{Status: "active"},
		"Action": "/clients/create",
	})
}

func (s *Server) clientCreate(c echo.Context) error {
	var f client.Form
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed form")
	}

	created, err := s.clients.Create(c.Request().Context(), f)
	if ve, ok := apperr.AsValidation(err); ok {
		return s.render(c, http.StatusUnprocessableEntity, "client_form", echo.Map{
			"Title":  "New client",
			"Form":   f,
			"Errors": ve.Fields,
			"Action": "/clients/create",
		})
	}
	if err != nil {
		return err
	}

	setFlash(c, "success", fmt.Sprintf("Client %s created", created.FullName))
	return redirect(c, "/clients")
}

func (s *Server) clientEditForm(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	cl, err := s.clients.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return s.render(c, http.StatusOK, "client_form", echo.Map{
		"Title":  "Edit client",
		"Form":   client.Form{FullName: cl.FullName, Email: cl.Email, Phone: cl.Phone, Status: cl.Status},
		"Action": fmt.Sprintf("/clients/%d/edit", id),
	})
}

func (s *Server) clientEdit(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var f client.Form
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed form")
	}

	_, err = s.clients.Update(c.Request().Context(), id, f)
	if ve, ok := apperr.AsValidation(err); ok {
		return s.render(c, http.StatusUnprocessableEntity, "client_form", echo.Map{
			"Title":  "Edit client",
			"Form":   f,
			"Errors": ve.Fields,
			"Action": fmt.Sprintf("/clients/%d/edit", id),
		})
	}
	if err != nil {
		return err
	}

	setFlash(c, "success", "Client updated")
	return redirect(c, "/clients")
}

func (s *Server) clientDeleteConfirm(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	cl, err := s.clients.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return s.render(c, http.StatusOK, "confirm_delete", echo.Map{
		"Title":     "Delete client",
		"Subject":   fmt.Sprintf("client %s", cl.FullName),
		"Warning":   "All of this client's orders will be deleted as well.",
		"Action":    fmt.Sprintf("/clients/%d/delete", id),
		"CancelURL": "/clients",
	})
}

func (s *Server) clientDelete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := s.clients.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	setFlash(c, "success", "Client deleted")
	return redirect(c, "/clients")
}
