package web

import (
	"fmt"
	"net/http"
	"strconv"

	"delservice/internal/address"
	"delservice/internal/apperr"

	"github.com/labstack/echo/v4"
)

func (s *Server) addressList(c echo.Context) error {
	search := c.QueryParam("q")
	addrs, err := s.addresses.List(c.Request().Context(), search)
	if err != nil {
		return err
	}
	return s.render(c, http.StatusOK, "address_list", echo.Map{
		"Title":     "Addresses",
		"Addresses": addrs,
		"Search":    search,
	})
}

func (s *Server) addressCreateForm(c echo.Context) error {
	return s.render(c, http.StatusOK, "address_form", echo.Map{
		"Title":  "New address",
		"Form":   address.Form{},
		"Action": "/addresses/create",
	})
}

func (s *Server) addressCreate(c echo.Context) error {
	var f address.Form
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed form")
	}

	_, err := s.addresses.Create(c.Request().Context(), f)
	if ve, ok := apperr.AsValidation(err); ok {
		return s.render(c, http.StatusUnprocessableEntity, "address_form", echo.Map{
			"Title":  "New address",
			"Form":   f,
			"Errors": ve.Fields,
			"Action": "/addresses/create",
		})
	}
	if err != nil {
		return err
	}

	setFlash(c, "success", "Address created")
	return redirect(c, "/addresses")
}

func (s *Server) addressEditForm(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	a, err := s.addresses.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	f := address.Form{Street: a.Street, HouseNumber: a.HouseNumber}
	if a.ApartmentNumber != nil {
		f.ApartmentNumber = *a.ApartmentNumber
	}
	if a.Entrance != nil {
		f.Entrance = *a.Entrance
	}
	if a.Floor != nil {
		f.Floor = strconv.Itoa(*a.Floor)
	}
	if a.DoorCode != nil {
		f.DoorCode = *a.DoorCode
	}
	if a.Latitude != nil {
		f.Latitude = a.Latitude.String()
	}
	if a.Longitude != nil {
		f.Longitude = a.Longitude.String()
	}
	return s.render(c, http.StatusOK, "address_form", echo.Map{
		"Title":  "Edit address",
		"Form":   f,
		"Action": fmt.Sprintf("/addresses/%d/edit", id),
	})
}

func (s *Server) addressEdit(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var f address.Form
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed form")
	}

	_, err = s.addresses.Update(c.Request().Context(), id, f)
	if ve, ok := apperr.AsValidation(err); ok {
		return s.render(c, http.StatusUnprocessableEntity, "address_form", echo.Map{
			"Title":  "Edit address",
			"Form":   f,
			"Errors": ve.Fields,
			"Action": fmt.Sprintf("/addresses/%d/edit", id),
		})
	}
	if err != nil {
		return err
	}

	setFlash(c, "success", "Address updated")
	return redirect(c, "/addresses")
}

func (s *Server) addressDeleteConfirm(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	a, err := s.addresses.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return s.render(c, http.StatusOK, "confirm_delete", echo.Map{
		"Title":     "Delete address",
		"Subject":   fmt.Sprintf("address %s", a.Label()),
		"Warning":   "Orders delivering to this address will be deleted; pickup references will be cleared.",
		"Action":    fmt.Sprintf("/addresses/%d/delete", id),
		"CancelURL": "/addresses",
	})
}

func (s *Server) addressDelete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := s.addresses.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	setFlash(c, "success", "Address deleted")
	return redirect(c, "/addresses")
}
