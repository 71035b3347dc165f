/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine's domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

TYPES:
  Query:
    QueryRequest, QueryResponse, TimeslotDTO, UtilizationDTO

  Earliest:
    EarliestRequest, EarliestResponse

  Resources:
    ResourceDTO, CreateResourceRequest, OverrideRequest, BookingRequest

  Holidays:
    HolidayDTO, CreateHolidayRequest

  Scenarios:
    ScenarioDTO, LoadScenarioRequest

VALIDATION:
  Validation is done in handlers and the engine, not in DTOs. DTOs are
  pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/schedule.go: ScheduleJSON / TimetableJSON wire shapes
*/
package api

import (
	"time"

	"github.com/noyou75/GitlabsApp-Backend-sub001/availability"
	"github.com/noyou75/GitlabsApp-Backend-sub001/factory"
)

// =============================================================================
// QUERY TYPES
// =============================================================================

// QueryRequest is the standalone availability computation request. All
// schedule material is inlined; nothing is read from storage.
type QueryRequest struct {
	Start           time.Time              `json:"start"`
	End             time.Time              `json:"end"`
	DurationMinutes int                    `json:"duration_minutes"`
	OffsetMinutes   int                    `json:"offset_minutes,omitempty"`
	Schedules       []factory.ScheduleJSON `json:"schedules"`
	Blackouts       []factory.IntervalJSON `json:"blackouts,omitempty"`
	Allocations     []factory.IntervalJSON `json:"allocations,omitempty"`
	BusinessHours   factory.TimetableJSON  `json:"business_hours,omitempty"`
	Holidays        []factory.IntervalJSON `json:"holidays,omitempty"`
}

// TimeslotDTO is a bookable slot with its capacity.
type TimeslotDTO struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	Available int    `json:"available"`
}

// UtilizationDTO summarizes a slot list for dashboards.
type UtilizationDTO struct {
	Slots          int    `json:"slots"`
	Open           int    `json:"open"`
	Placeholders   int    `json:"placeholders"`
	Capacity       int    `json:"capacity"`
	OfferedMinutes int    `json:"offered_minutes"`
	OpenShare      string `json:"open_share"`
	MeanCapacity   string `json:"mean_capacity"`
}

// QueryResponse carries computed slots plus their summary.
type QueryResponse struct {
	Slots       []TimeslotDTO  `json:"slots"`
	Utilization UtilizationDTO `json:"utilization"`
}

// EarliestRequest asks for the first instant with enough notice.
// Start and End are optional; the server fills them from its clock.
type EarliestRequest struct {
	Start                time.Time            `json:"start,omitempty"`
	End                  time.Time            `json:"end,omitempty"`
	MinimumNoticeMinutes int                  `json:"minimum_notice_minutes"`
	Schedule             factory.ScheduleJSON `json:"schedule"`
}

// EarliestResponse reports the search outcome. At is omitted when no
// instant satisfies the notice within the window.
type EarliestResponse struct {
	Found bool   `json:"found"`
	At    string `json:"at,omitempty"`
}

// =============================================================================
// RESOURCE TYPES
// =============================================================================

// ResourceDTO represents a bookable resource in API responses.
type ResourceDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at,omitempty"`
}

// CreateResourceRequest is the request to create a resource.
type CreateResourceRequest struct {
	Name string `json:"name"`
}

// OverrideRequest adds a one-off availability window or blackout.
type OverrideRequest struct {
	Kind  string    `json:"kind"` // "availability" or "blackout"
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// BookingRequest reserves a slot against a resource.
type BookingRequest struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// BookingDTO represents a stored booking.
type BookingDTO struct {
	ID         string `json:"id"`
	ResourceID string `json:"resource_id"`
	Start      string `json:"start"`
	End        string `json:"end"`
}

// =============================================================================
// HOLIDAY TYPES
// =============================================================================

// HolidayDTO represents a shared closure window.
type HolidayDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// CreateHolidayRequest is the request to create a holiday.
type CreateHolidayRequest struct {
	Name  string    `json:"name"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// =============================================================================
// SCENARIO TYPES
// =============================================================================

// ScenarioDTO represents a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadScenarioRequest selects a scenario to load.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toTimeslotDTO(s availability.Timeslot) TimeslotDTO {
	return TimeslotDTO{
		Start:     s.Start.Format(time.RFC3339),
		End:       s.End.Format(time.RFC3339),
		Available: s.Available,
	}
}

func toTimeslotDTOs(slots []availability.Timeslot) []TimeslotDTO {
	dtos := make([]TimeslotDTO, len(slots))
	for i, s := range slots {
		dtos[i] = toTimeslotDTO(s)
	}
	return dtos
}

func toUtilizationDTO(u availability.Utilization) UtilizationDTO {
	return UtilizationDTO{
		Slots:          u.Slots,
		Open:           u.Open,
		Placeholders:   u.Placeholders,
		Capacity:       u.Capacity,
		OfferedMinutes: u.OfferedMinutes,
		OpenShare:      u.OpenShare.String(),
		MeanCapacity:   u.MeanCapacity.String(),
	}
}

func toQueryResponse(slots []availability.Timeslot) QueryResponse {
	return QueryResponse{
		Slots:       toTimeslotDTOs(slots),
		Utilization: toUtilizationDTO(availability.Summarize(slots)),
	}
}
