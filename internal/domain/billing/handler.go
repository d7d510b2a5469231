package billing

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
	api.GET("/payments", h.ListPayments)
	api.GET("/payments/:id", h.GetPayment)
	api.POST("/payments", h.RecordPayment)
	api.PUT("/payments/:id", h.UpdatePayment)
	api.DELETE("/payments/:id", h.DeletePayment)
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func (h *Handler) RecordPayment(c echo.Context) error {
	var p Payment
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.RecordPayment(c.Request().Context(), &p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) GetPayment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	p, err := h.svc.GetPayment(c.Request().Context(), id)
	if err != nil {
		return httperr.NotFoundOr(err, "payment not found")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) UpdatePayment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var p Payment
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p.ID = id
	if err := h.svc.UpdatePayment(c.Request().Context(), &p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) ListPayments(c echo.Context) error {
	pg := pagination.FromContext(c)
	from, to := c.QueryParam("from"), c.QueryParam("to")
	if from != "" || to != "" {
		if from == "" || to == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "from and to must be given together")
		}
		items, total, err := h.svc.ListPaymentsByDateRange(c.Request().Context(), from, to, pg.Limit, pg.Offset)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
	}
	pid, err := strconv.ParseInt(c.QueryParam("patient_id"), 10, 64)
	if err != nil || pid <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "patient_id or from/to query parameters required")
	}
	items, total, err := h.svc.ListPaymentsByPatient(c.Request().Context(), pid, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) DeletePayment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeletePayment(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
