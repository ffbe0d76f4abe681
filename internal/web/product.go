package web

import (
	"fmt"
	"net/http"

	"delservice/internal/apperr"
	"delservice/internal/product"

	"github.com/labstack/echo/v4"
)

func (s *Server) productList(c echo.Context) error {
	search := c.QueryParam("q")
	products, err := s.products.List(c.Request().Context(), search)
	if err != nil {
		return err
	}
	return s.render(c, http.StatusOK, "product_list", echo.Map{
		"Title":    "Products",
		"Products": products,
		"Search":   search,
	})
}

func (s *Server) productCreateForm(c echo.Context) error {
	return s.render(c, http.StatusOK, "product_form", echo.Map{
		"Title":  "New product",
		"Form":   product.Form{},
		"Action": "/products/create",
	})
}

func (s *Server) productCreate(c echo.Context) error {
	var f product.Form
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed form")
	}

	created, err := s.products.Create(c.Request().Context(), f)
	if ve, ok := apperr.AsValidation(err); ok {
		return s.render(c, http.StatusUnprocessableEntity, "product_form", echo.Map{
			"Title":  "New product",
			"Form":   f,
			"Errors": ve.Fields,
			"Action": "/products/create",
		})
	}
	if err != nil {
		return err
	}

	setFlash(c, "success", fmt.Sprintf("Product %s created", created.Name))
	return redirect(c, "/products")
}

func (s *Server) productEditForm(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	p, err := s.products.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	f := product.Form{
		Name:     p.Name,
		Price:    p.Price.StringFixed(2),
		WeightKg: p.WeightKg.StringFixed(2),
	}
	if p.Description != nil {
		f.Description = *p.Description
	}
	if p.DimensionsCm != nil {
		f.DimensionsCm = *p.DimensionsCm
	}
	return s.render(c, http.StatusOK, "product_form", echo.Map{
		"Title":  "Edit product",
		"Form":   f,
		"Action": fmt.Sprintf("/products/%d/edit", id),
	})
}

func (s *Server) productEdit(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var f product.Form
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed form")
	}

	_, err = s.products.Update(c.Request().Context(), id, f)
	if ve, ok := apperr.AsValidation(err); ok {
		return s.render(c, http.StatusUnprocessableEntity, "product_form", echo.Map{
			"Title":  "Edit product",
			"Form":   f,
			"Errors": ve.Fields,
			"Action": fmt.Sprintf("/products/%d/edit", id),
		})
	}
	if err != nil {
		return err
	}

	setFlash(c, "success", "Product updated")
	return redirect(c, "/products")
}

func (s *Server) productDeleteConfirm(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	p, err := s.products.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return s.render(c, http.StatusOK, "confirm_delete", echo.Map{
		"Title":     "Delete product",
		"Subject":   fmt.Sprintf("product %s", p.Name),
		"Warning":   "Products already sold on orders cannot be deleted.",
		"Action":    fmt.Sprintf("/products/%d/delete", id),
		"CancelURL": "/products",
	})
}

func (s *Server) productDelete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	err = s.products.Delete(c.Request().Context(), id)
	if apperr.IsConflict(err) {
		setFlash(c, "error", "This product appears on existing orders and cannot be deleted")
		return redirect(c, "/products")
	}
	if err != nil {
		return err
	}

	setFlash(c, "success", "Product deleted")
	return redirect(c, "/products")
}
