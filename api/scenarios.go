/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with realistic
	data for testing and demos. Each scenario creates resources, weekly
	hours, overrides, bookings, and holidays that demonstrate specific
	features of the availability computation.

AVAILABLE SCENARIOS:

	single-practitioner: One resource with simple weekday hours
	clinic-week:         Two practitioners, lunch blackouts, bookings
	holiday-closure:     Schedules intersected with a shared holiday

HOW SCENARIOS WORK:
 1. Reset database (clear all data)
 2. Create resources
 3. Set weekly hours
 4. Add overrides, bookings, and holidays

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "clinic-week"}

ADDING NEW SCENARIOS:
 1. Add to 'scenarios' slice with ID, name, description
 2. Create loader function: loadXxxScenario(ctx, h)
 3. Add case to LoadScenario handler

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: resource and holiday handlers
  - store/sqlite/sqlite.go: Reset and persistence
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/noyou75/GitlabsApp-Backend-sub001/availability"
	"github.com/noyou75/GitlabsApp-Backend-sub001/store/sqlite"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "single-practitioner",
		Name:        "Single Practitioner",
		Description: "One resource working weekday mornings",
	},
	{
		ID:          "clinic-week",
		Name:        "Clinic Week",
		Description: "Two practitioners with lunch blackouts and existing bookings",
	},
	{
		ID:          "holiday-closure",
		Name:        "Holiday Closure",
		Description: "Full schedules intersected with a shared holiday",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	if h.currentScenario == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}

	for _, s := range scenarios {
		if s.ID == h.currentScenario {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}

	writeJSON(w, http.StatusOK, ScenarioDTO{
		ID:          h.currentScenario,
		Name:        h.currentScenario,
		Description: "Currently loaded scenario",
	})
}

// LoadScenario loads a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ctx := r.Context()

	// Reset first
	if err := h.Store.Reset(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.Cache.Invalidate(ctx, "availability:")
	h.currentScenario = ""

	var err error
	switch req.ScenarioID {
	case "single-practitioner":
		err = h.loadSinglePractitionerScenario(ctx)
	case "clinic-week":
		err = h.loadClinicWeekScenario(ctx)
	case "holiday-closure":
		err = h.loadHolidayClosureScenario(ctx)
	default:
		writeError(w, http.StatusBadRequest, "Unknown scenario", nil)
		return
	}

	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to load scenario: %v", err), err)
		return
	}

	h.currentScenario = req.ScenarioID
	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded", "scenario": req.ScenarioID})
}

// ResetDatabase clears all data.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.Cache.Invalidate(r.Context(), "availability:")
	h.currentScenario = ""
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

// nextMonday anchors scenario data in the upcoming week so computed
// availability is never entirely in the past.
func nextMonday() time.Time {
	day := time.Now().UTC().Truncate(24 * time.Hour)
	for day.Weekday() != time.Monday {
		day = day.AddDate(0, 0, 1)
	}
	return day
}

func weekdayHours(from, to string) availability.WeeklyTimetable {
	tt := availability.WeeklyTimetable{}
	for day := time.Monday; day <= time.Friday; day++ {
		tt[day] = []availability.TimeOfDayRange{{From: from, To: to}}
	}
	return tt
}

func (h *Handler) createResource(ctx context.Context, name string, tt availability.WeeklyTimetable) (string, error) {
	id := uuid.NewString()
	if err := h.Store.SaveResource(ctx, sqlite.Resource{ID: id, Name: name}); err != nil {
		return "", err
	}
	if err := h.Store.SetWeeklyHours(ctx, id, tt); err != nil {
		return "", err
	}
	return id, nil
}

func (h *Handler) loadSinglePractitionerScenario(ctx context.Context) error {
	_, err := h.createResource(ctx, "Dr. Alice Morgan", availability.WeeklyTimetable{
		time.Monday:    {{From: "09:00", To: "12:00"}},
		time.Tuesday:   {{From: "09:00", To: "12:00"}},
		time.Wednesday: {{From: "09:00", To: "12:00"}},
		time.Thursday:  {{From: "09:00", To: "12:00"}},
		time.Friday:    {{From: "09:00", To: "12:00"}},
	})
	return err
}

func (h *Handler) loadClinicWeekScenario(ctx context.Context) error {
	monday := nextMonday()

	alice, err := h.createResource(ctx, "Dr. Alice Morgan", weekdayHours("09:00", "17:00"))
	if err != nil {
		return err
	}
	bruno, err := h.createResource(ctx, "Dr. Bruno Keller", weekdayHours("10:00", "18:00"))
	if err != nil {
		return err
	}

	// Lunch blackouts for the whole week
	for _, id := range []string{alice, bruno} {
		for d := 0; d < 5; d++ {
			day := monday.AddDate(0, 0, d)
			if err := h.Store.SaveOverride(ctx, sqlite.Override{
				ID:         uuid.NewString(),
				ResourceID: id,
				Kind:       sqlite.OverrideBlackout,
				Start:      day.Add(12 * time.Hour),
				End:        day.Add(13 * time.Hour),
			}); err != nil {
				return err
			}
		}
	}

	// A few existing bookings against Alice on Monday
	for _, hour := range []int{9, 14} {
		if err := h.Store.SaveBooking(ctx, sqlite.Booking{
			ID:         uuid.NewString(),
			ResourceID: alice,
			Start:      monday.Add(time.Duration(hour) * time.Hour),
			End:        monday.Add(time.Duration(hour+1) * time.Hour),
		}); err != nil {
			return err
		}
	}

	return nil
}

func (h *Handler) loadHolidayClosureScenario(ctx context.Context) error {
	monday := nextMonday()

	_, err := h.createResource(ctx, "Treatment Room 1", weekdayHours("08:00", "20:00"))
	if err != nil {
		return err
	}

	// Wednesday of that week is a full-day closure
	return h.Store.SaveHoliday(ctx, sqlite.Holiday{
		ID:    uuid.NewString(),
		Name:  "Founders Day",
		Start: monday.AddDate(0, 0, 2),
		End:   monday.AddDate(0, 0, 3),
	})
}
