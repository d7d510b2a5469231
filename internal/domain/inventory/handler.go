package inventory

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/zahrawi-dent/DentaCare-Pro/pkg/httperr"
	"github.com/zahrawi-dent/DentaCare-Pro/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/inventory", h.ListItems)
	api.GET("/inventory/low-stock", h.ListLowStock)
	api.GET("/inventory/:id", h.GetItem)
	api.POST("/inventory", h.CreateItem)
	api.PUT("/inventory/:id", h.UpdateItem)
	api.PATCH("/inventory/:id/stock", h.AdjustStock)
	api.DELETE("/inventory/:id", h.DeleteItem)
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func (h *Handler) CreateItem(c echo.Context) error {
	var i Item
	if err := c.Bind(&i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateItem(c.Request().Context(), &i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, i)
}

func (h *Handler) GetItem(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	i, err := h.svc.GetItem(c.Request().Context(), id)
	if err != nil {
		return httperr.NotFoundOr(err, "item not found")
	}
	return c.JSON(http.StatusOK, i)
}

func (h *Handler) ListItems(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListItems(c.Request().Context(), c.QueryParam("category"), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) ListLowStock(c echo.Context) error {
	items, err := h.svc.ListLowStock(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) UpdateItem(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var i Item
	if err := c.Bind(&i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	i.ID = id
	if err := h.svc.UpdateItem(c.Request().Context(), &i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, i)
}

func (h *Handler) AdjustStock(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var body struct {
		Delta int64 `json:"delta"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	quantity, err := h.svc.AdjustStock(c.Request().Context(), id, body.Delta)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]int64{"quantity": quantity})
}

func (h *Handler) DeleteItem(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteItem(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
