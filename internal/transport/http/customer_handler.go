package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/quanghtran/myapp-backend/internal/service"
	"github.com/quanghtran/myapp-backend/internal/util"
)

type CustomerHandler struct {
	customers *service.CustomerService
}

func NewCustomerHandler(customers *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

func (h *CustomerHandler) Register(e *echo.Echo, auth *service.AuthService) {
	g := e.Group("/api/customers", RequireAuth(auth))
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.remove, RequireAdmin())
}

func (h *CustomerHandler) list(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	customers, err := h.customers.List(c.Request().Context(), limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to list customers"))
	}
	return c.JSON(http.StatusOK, util.Data("customers", customers))
}

func (h *CustomerHandler) get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid customer id"))
	}

	customer, err := h.customers.Get(c.Request().Context(), id)
	switch {
	case errors.Is(err, service.ErrCustomerNotFound):
		return c.JSON(http.StatusNotFound, util.Error("Customer not found."))
	case err != nil:
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load customer"))
	}
	return c.JSON(http.StatusOK, util.Data("customer", customer))
}

func (h *CustomerHandler) update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid customer id"))
	}

	var req UpdateCustomerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	_, err = h.customers.Update(c.Request().Context(), id, req.FirstName, req.LastName, req.DateOfBirth)
	switch {
	case errors.Is(err, service.ErrCustomerNotFound):
		return c.JSON(http.StatusNotFound, util.Error("Customer not found."))
	case err != nil:
		return c.JSON(http.StatusInternalServerError, util.Error("unable to update customer"))
	}
	return c.JSON(http.StatusOK, util.Message("Customer updated successfully."))
}

func (h *CustomerHandler) remove(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid customer id"))
	}

	err = h.customers.Delete(c.Request().Context(), id)
	switch {
	case errors.Is(err, service.ErrCustomerNotFound):
		return c.JSON(http.StatusNotFound, util.Error("Customer not found."))
	case err != nil:
		return c.JSON(http.StatusInternalServerError, util.Error("unable to delete customer"))
	}
	return c.JSON(http.StatusOK, util.Message("Customer deleted successfully."))
}
