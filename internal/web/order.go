package web

import (
	"fmt"
	"net/http"

	"delservice/internal/apperr"
	"delservice/internal/order"

	"github.com/labstack/echo/v4"
)

func (s *Server) orderList(c echo.Context) error {
	var f order.SearchForm
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed query")
	}

	statuses, err := s.statuses.List(c.Request().Context())
	if err != nil {
		return err
	}
	couriers, err := s.users.ListCouriers(c.Request().Context())
	if err != nil {
		return err
	}

	page, err := s.orders.Search(c.Request().Context(), f)
	if ve, ok := apperr.AsValidation(err); ok {
		return s.render(c, http.StatusUnprocessableEntity, "order_list", echo.Map{
			"Title":    "Orders",
			"Filter":   f,
			"Errors":   ve.Fields,
			"Statuses": statuses,
			"Couriers": couriers,
		})
	}
	if err != nil {
		return err
	}

	return s.render(c, http.StatusOK, "order_list", echo.Map{
		"Title":    "Orders",
		"Filter":   f,
		"Page":     page,
		"Statuses": statuses,
		"Couriers": couriers,
	})
}

func (s *Server) orderDetail(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	d, err := s.orders.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return s.render(c, http.StatusOK, "order_detail", echo.Map{
		"Title":  fmt.Sprintf("Order #%d", id),
		"Detail": d,
	})
}

// orderForm renders the create/edit form with every reference dropdown
// loaded fresh.
func (s *Server) orderForm(c echo.Context, code int, title string, f order.Form, action string, errs interface{}) error {
	ctx := c.Request().Context()

	clients, err := s.clients.List(ctx, "")
	if err != nil {
		return err
	}
	addrs, err := s.addresses.List(ctx, "")
	if err != nil {
		return err
	}
	couriers, err := s.users.ListCouriers(ctx)
	if err != nil {
		return err
	}
	statuses, err := s.statuses.List(ctx)
	if err != nil {
		return err
	}
	methods, err := s.methods.List(ctx)
	if err != nil {
		return err
	}

	return s.render(c, code, "order_form", echo.Map{
		"Title":     title,
		"Form":      f,
		"Errors":    errs,
		"Action":    action,
		"Clients":   clients,
		"Addresses": addrs,
		"Couriers":  couriers,
		"Statuses":  statuses,
		"Methods":   methods,
	})
}

func (s *Server) orderCreateForm(c echo.Context) error {
	return s.orderForm(c, http.StatusOK, "New order", order.Form{}, "/orders/create", nil)
}

func (s *Server) orderCreate(c echo.Context) error {
	var f order.Form
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed form")
	}

	created, err := s.orders.Create(c.Request().Context(), f)
	if ve, ok := apperr.AsValidation(err); ok {
		return s.orderForm(c, http.StatusUnprocessableEntity, "New order", f, "/orders/create", ve.Fields)
	}
	if err != nil {
		return err
	}

	setFlash(c, "success", fmt.Sprintf("Order #%d created", created.ID))
	return redirect(c, fmt.Sprintf("/orders/%d", created.ID))
}

func (s *Server) orderEditForm(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	d, err := s.orders.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	o := d.Order
	f := order.Form{
		ClientID:          fmt.Sprintf("%d", o.ClientID),
		DeliveryAddressID: fmt.Sprintf("%d", o.DeliveryAddressID),
		StatusID:          fmt.Sprintf("%d", o.StatusID),
		DeliveryCost:      o.DeliveryCost.StringFixed(2),
		PaymentMethodID:   fmt.Sprintf("%d", o.PaymentMethodID),
	}
	if o.PickupAddressID != nil {
		f.PickupAddressID = fmt.Sprintf("%d", *o.PickupAddressID)
	}
	if o.CourierID != nil {
		f.CourierID = fmt.Sprintf("%d", *o.CourierID)
	}
	if o.Comment != nil {
		f.Comment = *o.Comment
	}
	return s.orderForm(c, http.StatusOK, fmt.Sprintf("Edit order #%d", id), f,
		fmt.Sprintf("/orders/%d/edit", id), nil)
}

func (s *Server) orderEdit(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var f order.Form
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed form")
	}

	_, err = s.orders.Update(c.Request().Context(), id, f)
	if ve, ok := apperr.AsValidation(err); ok {
		return s.orderForm(c, http.StatusUnprocessableEntity, fmt.Sprintf("Edit order #%d", id), f,
			fmt.Sprintf("/orders/%d/edit", id), ve.Fields)
	}
	if err != nil {
		return err
	}

	setFlash(c, "success", "Order updated")
	return redirect(c, fmt.Sprintf("/orders/%d", id))
}

func (s *Server) orderDeleteConfirm(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	d, err := s.orders.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return s.render(c, http.StatusOK, "confirm_delete", echo.Map{
		"Title":     "Delete order",
		"Subject":   fmt.Sprintf("order #%d for %s", id, d.Order.ClientName),
		"Warning":   "Its line items, review and payment will be deleted as well.",
		"Action":    fmt.Sprintf("/orders/%d/delete", id),
		"CancelURL": fmt.Sprintf("/orders/%d", id),
	})
}

func (s *Server) orderDelete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := s.orders.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	setFlash(c, "success", "Order deleted")
	return redirect(c, "/orders")
}

func (s *Server) orderItemForm(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	products, err := s.products.List(c.Request().Context(), "")
	if err != nil {
		return err
	}
	return s.render(c, http.StatusOK, "order_item_form", echo.Map{
		"Title":    fmt.Sprintf("Add item to order #%d", id),
		"OrderID":  id,
		"Form":     order.ItemForm{Quantity: "1"},
		"Products": products,
		"Action":   fmt.Sprintf("/orders/%d/add-item", id),
	})
}

func (s *Server) orderItemAdd(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var f order.ItemForm
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed form")
	}

	_, err = s.orders.AddItem(c.Request().Context(), id, f)
	if ve, ok := apperr.AsValidation(err); ok {
		products, perr := s.products.List(c.Request().Context(), "")
		if perr != nil {
			return perr
		}
		return s.render(c, http.StatusUnprocessableEntity, "order_item_form", echo.Map{
			"Title":    fmt.Sprintf("Add item to order #%d", id),
			"OrderID":  id,
			"Form":     f,
			"Errors":   ve.Fields,
			"Products": products,
			"Action":   fmt.Sprintf("/orders/%d/add-item", id),
		})
	}
	if err != nil {
		return err
	}

	setFlash(c, "success", "Item added")
	return redirect(c, fmt.Sprintf("/orders/%d", id))
}

func (s *Server) orderItemDeleteConfirm(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	item, err := s.orders.GetItem(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return s.render(c, http.StatusOK, "confirm_delete", echo.Map{
		"Title":     "Remove item",
		"Subject":   fmt.Sprintf("%s × %d", item.ProductName, item.Quantity),
		"Warning":   "The order total will be recalculated.",
		"Action":    fmt.Sprintf("/order-items/%d/delete", id),
		"CancelURL": fmt.Sprintf("/orders/%d", item.OrderID),
	})
}

func (s *Server) orderItemDelete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	orderID, err := s.orders.RemoveItem(c.Request().Context(), id)
	if err != nil {
		return err
	}
	setFlash(c, "success", "Item removed")
	return redirect(c, fmt.Sprintf("/orders/%d", orderID))
}
