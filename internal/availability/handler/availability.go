package handler

import (
	"encoding/json"
	"net/http"

	"wedmarket/internal/availability/service"
	apperrors "wedmarket/pkg/errors"
	httputil "wedmarket/pkg/http"
	"wedmarket/pkg/logger"
	"wedmarket/pkg/model"

	"github.com/julienschmidt/httprouter"
)

const (
	MsgAvailabilityUpdated = "Availability updated"
)

type RangeResponse struct {
	Success      bool                  `json:"success"`
	VendorID     string                `json:"vendorId"`
	StartDate    string                `json:"startDate"`
	EndDate      string                `json:"endDate"`
	Availability model.AvailabilityMap `json:"availability"`
}

type AvailabilityHandler struct {
	service service.AvailabilityService
	log     *logger.Logger
}

func NewAvailabilityHandler(service service.AvailabilityService, log *logger.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log,
	}
}

func (h *AvailabilityHandler) GetRange(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	vendorID := ps.ByName("vendorId")

	start, end, err := httputil.ExtractDateRange(r)
	if err != nil {
		h.writeError(w, "GetRange", err)
		return
	}

	availability, err := h.service.GetRange(r.Context(), vendorID, start, end)
	if err != nil {
		h.writeError(w, "GetRange", err)
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, RangeResponse{
		Success:      true,
		VendorID:     vendorID,
		StartDate:    start,
		EndDate:      end,
		Availability: availability,
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "GetRange", "operation", "WriteJSON", "error", err)
	}
}

func (h *AvailabilityHandler) SetDate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var update model.AvailabilityUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.writeError(w, "SetDate", apperrors.InvalidInput("Invalid request body"))
		return
	}

	record, err := h.service.SetDate(r.Context(), ps.ByName("vendorId"), ps.ByName("date"), &update)
	if err != nil {
		h.writeError(w, "SetDate", err)
		return
	}

	if err := httputil.WriteMessage(w, http.StatusOK, record, MsgAvailabilityUpdated); err != nil {
		h.log.Error("failed to write success response", "handler", "SetDate", "operation", "WriteMessage", "error", err)
	}
}

func (h *AvailabilityHandler) ClearDate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.ClearDate(r.Context(), ps.ByName("vendorId"), ps.ByName("date")); err != nil {
		h.writeError(w, "ClearDate", err)
		return
	}
	httputil.WriteNoContent(w)
}

func (h *AvailabilityHandler) MonthView(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	query := r.URL.Query()
	req := service.MonthRequest{Month: query.Get("month")}

	var err error
	for name, dst := range map[string]*string{
		"selected": &req.Selected,
		"min_date": &req.MinDate,
		"max_date": &req.MaxDate,
	} {
		if *dst, err = httputil.OptionalDate(r, name); err != nil {
			h.writeError(w, "MonthView", err)
			return
		}
	}

	view, err := h.service.MonthView(r.Context(), ps.ByName("vendorId"), req)
	if err != nil {
		h.writeError(w, "MonthView", err)
		return
	}

	if err := httputil.WriteSuccess(w, view); err != nil {
		h.log.Error("failed to write success response", "handler", "MonthView", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AvailabilityHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *AvailabilityHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/availability/vendor/:vendorId", h.GetRange)
	router.PUT("/api/availability/vendor/:vendorId/date/:date", h.SetDate)
	router.DELETE("/api/availability/vendor/:vendorId/date/:date", h.ClearDate)
	router.GET("/api/calendar/vendor/:vendorId", h.MonthView)
}
