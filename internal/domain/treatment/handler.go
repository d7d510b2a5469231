package treatment

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
	api.GET("/procedures", h.ListProcedures)
	api.GET("/procedures/:id", h.GetProcedure)
	api.POST("/procedures", h.CreateProcedure)
	api.PUT("/procedures/:id", h.UpdateProcedure)
	api.DELETE("/procedures/:id", h.DeleteProcedure)

	api.GET("/treatments", h.ListTreatments)
	api.GET("/treatments/:id", h.GetTreatment)
	api.POST("/treatments", h.PlanTreatment)
	api.PUT("/treatments/:id", h.UpdateTreatment)
	api.PATCH("/treatments/:id/status", h.UpdateTreatmentStatus)
	api.DELETE("/treatments/:id", h.DeleteTreatment)
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// -- Procedure Handlers --

func (h *Handler) CreateProcedure(c echo.Context) error {
	var p Procedure
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateProcedure(c.Request().Context(), &p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) GetProcedure(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	p, err := h.svc.GetProcedure(c.Request().Context(), id)
	if err != nil {
		return httperr.NotFoundOr(err, "procedure not found")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) ListProcedures(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListProcedures(c.Request().Context(), c.QueryParam("category"), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateProcedure(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var p Procedure
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p.ID = id
	if err := h.svc.UpdateProcedure(c.Request().Context(), &p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) DeleteProcedure(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteProcedure(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Treatment Handlers --

func (h *Handler) PlanTreatment(c echo.Context) error {
	var t Treatment
	if err := c.Bind(&t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.PlanTreatment(c.Request().Context(), &t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, t)
}

func (h *Handler) GetTreatment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	t, err := h.svc.GetTreatment(c.Request().Context(), id)
	if err != nil {
		return httperr.NotFoundOr(err, "treatment not found")
	}
	return c.JSON(http.StatusOK, t)
}

func (h *Handler) ListTreatments(c echo.Context) error {
	pg := pagination.FromContext(c)
	if aid := c.QueryParam("appointment_id"); aid != "" {
		id, err := strconv.ParseInt(aid, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid appointment_id")
		}
		items, err := h.svc.ListTreatmentsByAppointment(c.Request().Context(), id)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, items)
	}
	if status := c.QueryParam("status"); status != "" {
		items, total, err := h.svc.ListTreatmentsByStatus(c.Request().Context(), status, pg.Limit, pg.Offset)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
	}
	pid, err := strconv.ParseInt(c.QueryParam("patient_id"), 10, 64)
	if err != nil || pid <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "patient_id, appointment_id or status query parameter required")
	}
	items, total, err := h.svc.ListTreatmentsByPatient(c.Request().Context(), pid, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateTreatment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var t Treatment
	if err := c.Bind(&t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	t.ID = id
	if err := h.svc.UpdateTreatment(c.Request().Context(), &t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, t)
}

func (h *Handler) UpdateTreatmentStatus(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.UpdateTreatmentStatus(c.Request().Context(), id, body.Status); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) DeleteTreatment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteTreatment(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
