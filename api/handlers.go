/*
handlers.go - HTTP API handlers for the availability server

PURPOSE:
  Exposes the availability engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Queries (stateless, inline schedule material):
    POST   /api/availability/query     Compute bookable slots
    POST   /api/availability/earliest  First instant with enough notice

  Resources (store-backed):
    GET    /api/resources                       List resources
    POST   /api/resources                       Create resource
    GET    /api/resources/{id}                  Get resource
    DELETE /api/resources/{id}                  Delete resource
    PUT    /api/resources/{id}/hours            Replace weekly hours
    POST   /api/resources/{id}/overrides        Add availability/blackout
    POST   /api/resources/{id}/bookings         Create booking
    GET    /api/resources/{id}/availability     Computed slots for window

  Holidays:
    GET    /api/holidays               List holidays
    POST   /api/holidays               Create holiday
    DELETE /api/holidays/{id}          Delete holiday

  Scenarios:
    GET    /api/scenarios              List demo scenarios
    POST   /api/scenarios/load         Load a demo scenario

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Store: Database access
  - Engine: Pure availability computation
  - Cache: Optional Redis cache for computed availability

REQUEST FLOW:
  1. Parse HTTP request
  2. Convert wire shapes to engine types
  3. Call domain logic
  4. Serialize response
  5. Handle errors

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Resource not found
  - 500: Internal errors

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/noyou75/GitlabsApp-Backend-sub001/availability"
	"github.com/noyou75/GitlabsApp-Backend-sub001/cache"
	"github.com/noyou75/GitlabsApp-Backend-sub001/factory"
	"github.com/noyou75/GitlabsApp-Backend-sub001/metrics"
	"github.com/noyou75/GitlabsApp-Backend-sub001/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store  *sqlite.Store
	Engine *availability.Engine
	Cache  *cache.Cache

	// Track currently loaded scenario
	currentScenario string
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store) *Handler {
	return &Handler{
		Store:  store,
		Engine: availability.NewEngine(),
		Cache:  cache.New(nil, 0),
	}
}

// =============================================================================
// QUERY HANDLERS
// =============================================================================

// QueryAvailability computes bookable slots from inline schedule material.
// POST /api/availability/query
func (h *Handler) QueryAvailability(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	engineReq, err := toEngineRequest(req)
	if err != nil {
		metrics.IncValidationFailure()
		metrics.IncAvailabilityQuery("invalid")
		writeError(w, http.StatusBadRequest, "Invalid schedule definition", err)
		return
	}

	slots, err := h.Engine.GetAvailabilities(engineReq)
	if err != nil {
		if availability.IsValidationError(err) {
			metrics.IncValidationFailure()
			metrics.IncAvailabilityQuery("invalid")
			writeError(w, http.StatusBadRequest, "Invalid availability request", err)
			return
		}
		metrics.IncAvailabilityQuery("error")
		writeError(w, http.StatusInternalServerError, "Failed to compute availability", err)
		return
	}

	metrics.IncAvailabilityQuery("ok")
	writeJSON(w, http.StatusOK, toQueryResponse(slots))
}

// EarliestAvailability finds the first instant with enough notice.
// POST /api/availability/earliest
func (h *Handler) EarliestAvailability(w http.ResponseWriter, r *http.Request) {
	var req EarliestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	schedule, err := req.Schedule.Schedule()
	if err != nil {
		metrics.IncValidationFailure()
		metrics.IncEarliestQuery("invalid")
		writeError(w, http.StatusBadRequest, "Invalid schedule definition", err)
		return
	}

	at, found, err := h.Engine.EarliestAvailability(availability.EarliestNoticeRequest{
		Start:                req.Start,
		End:                  req.End,
		MinimumNoticeMinutes: req.MinimumNoticeMinutes,
		Schedule:             schedule,
	})
	if err != nil {
		if availability.IsValidationError(err) {
			metrics.IncValidationFailure()
			metrics.IncEarliestQuery("invalid")
			writeError(w, http.StatusBadRequest, "Invalid earliest-availability request", err)
			return
		}
		metrics.IncEarliestQuery("error")
		writeError(w, http.StatusInternalServerError, "Failed to compute earliest availability", err)
		return
	}

	resp := EarliestResponse{Found: found}
	if found {
		resp.At = at.Format(time.RFC3339)
		metrics.IncEarliestQuery("found")
	} else {
		metrics.IncEarliestQuery("none")
	}
	writeJSON(w, http.StatusOK, resp)
}

// toEngineRequest converts the wire query into the engine's request type.
func toEngineRequest(req QueryRequest) (availability.AvailabilityRequest, error) {
	schedules := make([]availability.Schedule, len(req.Schedules))
	for i, sj := range req.Schedules {
		s, err := sj.Schedule()
		if err != nil {
			return availability.AvailabilityRequest{}, err
		}
		schedules[i] = s
	}

	businessHours, err := req.BusinessHours.Timetable()
	if err != nil {
		return availability.AvailabilityRequest{}, err
	}

	return availability.AvailabilityRequest{
		Start:           req.Start,
		End:             req.End,
		DurationMinutes: req.DurationMinutes,
		OffsetMinutes:   req.OffsetMinutes,
		Schedules:       schedules,
		Blackouts:       factory.Intervals(req.Blackouts),
		Allocations:     factory.Intervals(req.Allocations),
		BusinessHours:   businessHours,
		Holidays:        factory.Intervals(req.Holidays),
	}, nil
}

// =============================================================================
// RESOURCE HANDLERS
// =============================================================================

// ListResources returns all resources.
func (h *Handler) ListResources(w http.ResponseWriter, r *http.Request) {
	resources, err := h.Store.ListResources(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list resources", err)
		return
	}

	dtos := make([]ResourceDTO, len(resources))
	for i, res := range resources {
		dtos[i] = ResourceDTO{
			ID:        res.ID,
			Name:      res.Name,
			CreatedAt: res.CreatedAt.Format(time.RFC3339),
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetResource returns a single resource.
func (h *Handler) GetResource(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	res, err := h.Store.GetResource(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get resource", err)
		return
	}
	if res == nil {
		writeError(w, http.StatusNotFound, "Resource not found", nil)
		return
	}

	writeJSON(w, http.StatusOK, ResourceDTO{
		ID:        res.ID,
		Name:      res.Name,
		CreatedAt: res.CreatedAt.Format(time.RFC3339),
	})
}

// CreateResource creates a new resource.
func (h *Handler) CreateResource(w http.ResponseWriter, r *http.Request) {
	var req CreateResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Resource name is required", nil)
		return
	}

	res := sqlite.Resource{ID: uuid.NewString(), Name: req.Name}
	if err := h.Store.SaveResource(r.Context(), res); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create resource", err)
		return
	}

	writeJSON(w, http.StatusCreated, ResourceDTO{ID: res.ID, Name: res.Name})
}

// DeleteResource removes a resource.
func (h *Handler) DeleteResource(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Store.DeleteResource(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete resource", err)
		return
	}
	h.Cache.Invalidate(r.Context(), availabilityCachePrefix(id))
	w.WriteHeader(http.StatusNoContent)
}

// SetWeeklyHours replaces a resource's recurring weekly hours.
// PUT /api/resources/{id}/hours
func (h *Handler) SetWeeklyHours(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	res, err := h.Store.GetResource(ctx, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get resource", err)
		return
	}
	if res == nil {
		writeError(w, http.StatusNotFound, "Resource not found", nil)
		return
	}

	var body factory.TimetableJSON
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	tt, err := body.Timetable()
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid weekly hours", err)
		return
	}

	if err := h.Store.SetWeeklyHours(ctx, id, tt); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save weekly hours", err)
		return
	}

	h.Cache.Invalidate(ctx, availabilityCachePrefix(id))
	writeJSON(w, http.StatusOK, map[string]any{"status": "updated"})
}

// CreateOverride adds a one-off availability window or blackout.
// POST /api/resources/{id}/overrides
func (h *Handler) CreateOverride(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	res, err := h.Store.GetResource(ctx, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get resource", err)
		return
	}
	if res == nil {
		writeError(w, http.StatusNotFound, "Resource not found", nil)
		return
	}

	var req OverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if !req.Start.Before(req.End) {
		writeError(w, http.StatusBadRequest, "Override start must be before end", nil)
		return
	}

	o := sqlite.Override{
		ID:         uuid.NewString(),
		ResourceID: id,
		Kind:       req.Kind,
		Start:      req.Start,
		End:        req.End,
	}
	if err := h.Store.SaveOverride(ctx, o); err != nil {
		writeError(w, http.StatusBadRequest, "Failed to save override", err)
		return
	}

	h.Cache.Invalidate(ctx, availabilityCachePrefix(id))
	writeJSON(w, http.StatusCreated, map[string]any{"id": o.ID})
}

// CreateBooking reserves a slot against a resource.
// POST /api/resources/{id}/bookings
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	res, err := h.Store.GetResource(ctx, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get resource", err)
		return
	}
	if res == nil {
		writeError(w, http.StatusNotFound, "Resource not found", nil)
		return
	}

	var req BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if !req.Start.Before(req.End) {
		writeError(w, http.StatusBadRequest, "Booking start must be before end", nil)
		return
	}

	b := sqlite.Booking{
		ID:         uuid.NewString(),
		ResourceID: id,
		Start:      req.Start,
		End:        req.End,
	}
	if err := h.Store.SaveBooking(ctx, b); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save booking", err)
		return
	}

	h.Cache.Invalidate(ctx, availabilityCachePrefix(id))
	writeJSON(w, http.StatusCreated, BookingDTO{
		ID:         b.ID,
		ResourceID: b.ResourceID,
		Start:      b.Start.Format(time.RFC3339),
		End:        b.End.Format(time.RFC3339),
	})
}

// ResourceAvailability computes bookable slots for a stored resource.
// GET /api/resources/{id}/availability?start=...&end=...&duration=60&offset=30
func (h *Handler) ResourceAvailability(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	res, err := h.Store.GetResource(ctx, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get resource", err)
		return
	}
	if res == nil {
		writeError(w, http.StatusNotFound, "Resource not found", nil)
		return
	}

	start, err := time.Parse(time.RFC3339, r.URL.Query().Get("start"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start (use RFC3339)", err)
		return
	}
	end, err := time.Parse(time.RFC3339, r.URL.Query().Get("end"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end (use RFC3339)", err)
		return
	}
	duration, err := strconv.Atoi(r.URL.Query().Get("duration"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid duration (minutes)", err)
		return
	}
	offset := 0
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if offset, err = strconv.Atoi(raw); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid offset (minutes)", err)
			return
		}
	}

	cacheKey := availabilityCacheKey(id, start, end, duration, offset)

	var cached QueryResponse
	if h.Cache.Get(ctx, cacheKey, &cached) {
		metrics.IncAvailabilityQuery("ok")
		writeJSON(w, http.StatusOK, cached)
		return
	}

	slots, err := h.computeResourceAvailability(ctx, id, start, end, duration, offset)
	if err != nil {
		if availability.IsValidationError(err) {
			metrics.IncValidationFailure()
			metrics.IncAvailabilityQuery("invalid")
			writeError(w, http.StatusBadRequest, "Invalid availability request", err)
			return
		}
		metrics.IncAvailabilityQuery("error")
		writeError(w, http.StatusInternalServerError, "Failed to compute availability", err)
		return
	}

	resp := toQueryResponse(slots)
	h.Cache.Set(ctx, cacheKey, resp)
	metrics.IncAvailabilityQuery("ok")
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) computeResourceAvailability(ctx context.Context, id string, start, end time.Time, duration, offset int) ([]availability.Timeslot, error) {
	schedule, err := h.Store.LoadSchedule(ctx, id)
	if err != nil {
		return nil, err
	}

	allocations, err := h.Store.LoadAllocations(ctx, id, start, end)
	if err != nil {
		return nil, err
	}

	holidays, err := h.Store.ListHolidays(ctx)
	if err != nil {
		return nil, err
	}
	var closures []availability.Interval
	for _, hol := range holidays {
		closures = append(closures, availability.NewInterval(hol.Start, hol.End))
	}

	return h.Engine.GetAvailabilities(availability.AvailabilityRequest{
		Start:           start,
		End:             end,
		DurationMinutes: duration,
		OffsetMinutes:   offset,
		Schedules:       []availability.Schedule{schedule},
		Allocations:     allocations,
		Holidays:        closures,
	})
}

func availabilityCachePrefix(resourceID string) string {
	return "availability:" + resourceID + ":"
}

func availabilityCacheKey(resourceID string, start, end time.Time, duration, offset int) string {
	return fmt.Sprintf("%s%s:%s:%d:%d",
		availabilityCachePrefix(resourceID),
		start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339),
		duration, offset)
}

// =============================================================================
// HOLIDAY HANDLERS
// =============================================================================

// ListHolidays returns all holidays.
// GET /api/holidays
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	holidays, err := h.Store.ListHolidays(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list holidays", err)
		return
	}

	dtos := make([]HolidayDTO, len(holidays))
	for i, hol := range holidays {
		dtos[i] = HolidayDTO{
			ID:    hol.ID,
			Name:  hol.Name,
			Start: hol.Start.Format(time.RFC3339),
			End:   hol.End.Format(time.RFC3339),
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateHoliday creates a shared closure window.
// POST /api/holidays
func (h *Handler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req CreateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Holiday name is required", nil)
		return
	}
	if !req.Start.Before(req.End) {
		writeError(w, http.StatusBadRequest, "Holiday start must be before end", nil)
		return
	}

	hol := sqlite.Holiday{
		ID:    uuid.NewString(),
		Name:  req.Name,
		Start: req.Start,
		End:   req.End,
	}
	if err := h.Store.SaveHoliday(r.Context(), hol); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save holiday", err)
		return
	}

	// Holidays affect every resource's availability
	h.Cache.Invalidate(r.Context(), "availability:")
	writeJSON(w, http.StatusCreated, HolidayDTO{
		ID:    hol.ID,
		Name:  hol.Name,
		Start: hol.Start.Format(time.RFC3339),
		End:   hol.End.Format(time.RFC3339),
	})
}

// DeleteHoliday removes a holiday.
// DELETE /api/holidays/{id}
func (h *Handler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Store.DeleteHoliday(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete holiday", err)
		return
	}
	h.Cache.Invalidate(r.Context(), "availability:")
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
