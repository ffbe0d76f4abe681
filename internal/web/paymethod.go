package web

import (
	"fmt"
	"net/http"

	"delservice/internal/apperr"
	"delservice/internal/paymethod"

	"github.com/labstack/echo/v4"
)

func (s *Server) methodList(c echo.Context) error {
	methods, err := s.methods.List(c.Request().Context())
	if err != nil {
		return err
	}
	return s.render(c, http.StatusOK, "paymethod_list", echo.Map{
		"Title":   "Payment methods",
		"Methods": methods,
	})
}

func (s *Server) methodCreateForm(c echo.Context) error {
	return s.render(c, http.StatusOK, "paymethod_form", echo.Map{
		"Title":  "New payment method",
		"Form":   paymethod.Form{},
		"Action": "/payment-methods/create",
	})
}

func (s *Server) methodCreate(c echo.Context) error {
	var f paymethod.Form
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed form")
	}

	_, err := s.methods.Create(c.Request().Context(), f)
	if ve, ok := apperr.AsValidation(err); ok {
		return s.render(c, http.StatusUnprocessableEntity, "paymethod_form", echo.Map{
			"Title":  "New payment method",
			"Form":   f,
			"Errors": ve.Fields,
			"Action": "/payment-methods/create",
		})
	}
	if err != nil {
		return err
	}

	setFlash(c, "success", "Payment method created")
	return redirect(c, "/payment-methods")
}

func (s *Server) methodEditForm(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	m, err := s.methods.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return s.render(c, http.StatusOK, "paymethod_form", echo.Map{
		"Title":  "Edit payment method",
		"Form":   paymethod.Form{Code: m.Code, Name: m.Name, FeePercent: m.FeePercent.String()},
		"Action": fmt.Sprintf("/payment-methods/%d/edit", id),
	})
}

func (s *Server) methodEdit(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var f paymethod.Form
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed form")
	}

	_, err = s.methods.Update(c.Request().Context(), id, f)
	if ve, ok := apperr.AsValidation(err); ok {
		return s.render(c, http.StatusUnprocessableEntity, "paymethod_form", echo.Map{
			"Title":  "Edit payment method",
			"Form":   f,
			"Errors": ve.Fields,
			"Action": fmt.Sprintf("/payment-methods/%d/edit", id),
		})
	}
	if err != nil {
		return err
	}

	setFlash(c, "success", "Payment method updated")
	return redirect(c, "/payment-methods")
}

func (s *Server) methodDeleteConfirm(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	m, err := s.methods.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return s.render(c, http.StatusOK, "confirm_delete", echo.Map{
		"Title":     "Delete payment method",
		"Subject":   fmt.Sprintf("payment method %s", m.Name),
		"Warning":   "A method still referenced by orders or payments cannot be deleted.",
		"Action":    fmt.Sprintf("/payment-methods/%d/delete", id),
		"CancelURL": "/payment-methods",
	})
}

func (s *Server) methodDelete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	err = s.methods.Delete(c.Request().Context(), id)
	if apperr.IsConflict(err) {
		setFlash(c, "error", "This payment method is still in use and cannot be deleted")
		return redirect(c, "/payment-methods")
	}
	if err != nil {
		return err
	}

	setFlash(c, "success", "Payment method deleted")
	return redirect(c, "/payment-methods")
}
