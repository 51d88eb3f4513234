package sync

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/tporfiris/dental-mission-mobile-sub000/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	sync := api.Group("/sync", auth.RequireRole(auth.RoleDentist, auth.RoleHygienist, auth.RoleIntake, auth.RoleCoordinator))
	sync.POST("/devices", h.RegisterDevice)
	sync.GET("/devices", h.ListDevices, auth.RequireRole(auth.RoleCoordinator))
	sync.POST("/push", h.Push)
	sync.GET("/pull", h.Pull)
}

func (h *Handler) RegisterDevice(c echo.Context) error {
	var d Device
	if err := c.Bind(&d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	d.RegisteredBy = auth.UserIDFromContext(c.Request().Context())
	if err := h.svc.RegisterDevice(c.Request().Context(), &d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, d)
}

func (h *Handler) ListDevices(c echo.Context) error {
	devices, err := h.svc.ListDevices(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if devices == nil {
		devices = []*Device{}
	}
	return c.JSON(http.StatusOK, devices)
}

func (h *Handler) Push(c echo.Context) error {
	var req PushRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	result, err := h.svc.Push(c.Request().Context(), &req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, result)
}

// Pull returns records changed since the client's cursor.
// since is RFC3339; a missing cursor means "everything".
func (h *Handler) Pull(c echo.Context) error {
	deviceID, err := uuid.Parse(c.QueryParam("device_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid device_id")
	}

	var since time.Time
	if raw := c.QueryParam("since"); raw != "" {
		since, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "since must be RFC3339")
		}
	}

	resp, err := h.svc.Pull(c.Request().Context(), deviceID, since)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, resp)
}
