package patient

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes attaches the patient/visit endpoints to a session-gated
// group.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/data", h.GetData)
	api.POST("/add_patient", h.AddPatient)
	api.POST("/log_visit", h.LogVisit)
	api.POST("/delete_visit", h.DeleteVisit)
	api.POST("/delete_patient", h.DeletePatient)
}

func (h *Handler) GetData(c echo.Context) error {
	views, err := h.svc.ListViews(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, views)
}

func (h *Handler) AddPatient(c echo.Context) error {
	var in UpsertInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Upsert(c.Request().Context(), in); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, statusSuccess)
}

func (h *Handler) LogVisit(c echo.Context) error {
	var in LogVisitInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.LogVisit(c.Request().Context(), in); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, statusSuccess)
}

func (h *Handler) DeleteVisit(c echo.Context) error {
	var in struct {
		PatientID interface{} `json:"patientId"`
		VisitDate string      `json:"visitDate"`
	}
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.DeleteVisit(c.Request().Context(), in.PatientID, in.VisitDate); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, statusSuccess)
}

func (h *Handler) DeletePatient(c echo.Context) error {
	var in struct {
		PatientID interface{} `json:"patientId"`
	}
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.DeletePatient(c.Request().Context(), in.PatientID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, statusSuccess)
}

// Mutations report business outcomes in the response body; HTTP status codes
// are reserved for transport and authorization failures.
var statusSuccess = map[string]string{"status": "success"}
