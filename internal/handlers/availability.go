package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/agendo-app/agendo/internal/availability"
	"github.com/agendo-app/agendo/internal/suggest"
)

type AvailabilityHandler struct {
	engine    *availability.Engine
	suggester *suggest.Engine
	logger    *slog.Logger
}

func NewAvailabilityHandler(engine *availability.Engine, suggester *suggest.Engine, logger *slog.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		engine:    engine,
		suggester: suggester,
		logger:    logger,
	}
}

type verdictResponse struct {
	Available       bool   `json:"available"`
	CalendarName    string `json:"calendar_name,omitempty"`
	StartDatetime   string `json:"start_datetime,omitempty"`
	EndDatetime     string `json:"end_datetime,omitempty"`
	ServiceName     string `json:"service_name,omitempty"`
	ServiceDuration int    `json:"service_duration,omitempty"`
	ConflictReason  string `json:"conflict_reason,omitempty"`
}

type checkCalendarsRequest struct {
	StartDatetime string   `json:"start_datetime"`
	ServiceID     string   `json:"service_id"`
	CalendarIDs   []string `json:"calendar_ids"`
}

type calendarStatusItem struct {
	CalendarID   string `json:"calendar_id"`
	CalendarName string `json:"calendar_name"`
	Priority     int    `json:"priority"`
	Reason       string `json:"reason,omitempty"`
}

type checkCalendarsResponse struct {
	Available             bool                 `json:"available"`
	ServiceName           string               `json:"service_name"`
	ServiceDuration       int                  `json:"service_duration"`
	StartDatetime         string               `json:"start_datetime"`
	EndDatetime           string               `json:"end_datetime"`
	AvailableCalendars    []calendarStatusItem `json:"available_calendars"`
	UnavailableCalendars  []calendarStatusItem `json:"unavailable_calendars"`
	TotalCalendarsChecked int                  `json:"total_calendars_checked"`
	TotalAvailable        int                  `json:"total_available"`
	TotalUnavailable      int                  `json:"total_unavailable"`
}

type suggestRequest struct {
	StartDatetime   string   `json:"start_datetime"`
	EndDatetime     string   `json:"end_datetime"`
	ServiceID       string   `json:"service_id"`
	CalendarIDs     []string `json:"calendar_ids"`
	MaxResults      int      `json:"max_results"`
	ExpandTimeframe bool     `json:"expand_timeframe"`
	IntervalMinutes int      `json:"interval_minutes"`
	Strategy        string   `json:"strategy"`
	Priority        *struct {
		Enabled bool   `json:"enabled"`
		Order   string `json:"order"`
	} `json:"priority_config"`
	TimeBlocks *struct {
		MorningStart   string `json:"morning_start"`
		AfternoonStart string `json:"afternoon_start"`
		EveningStart   string `json:"evening_start"`
		MorningCount   int    `json:"morning_count"`
		AfternoonCount int    `json:"afternoon_count"`
		EveningCount   int    `json:"evening_count"`
	} `json:"time_blocks_config"`
}

type slotItem struct {
	StartDatetime string `json:"start_datetime"`
	EndDatetime   string `json:"end_datetime"`
	CalendarID    string `json:"calendar_id"`
	CalendarName  string `json:"calendar_name"`
	Priority      int    `json:"priority"`
}

func (h *AvailabilityHandler) Check(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	startRaw := strings.TrimSpace(r.URL.Query().Get("start"))
	serviceID := strings.TrimSpace(r.URL.Query().Get("service_id"))
	calendarID := strings.TrimSpace(r.URL.Query().Get("calendar_id"))
	if startRaw == "" || serviceID == "" || calendarID == "" {
		http.Error(w, "start, service_id, and calendar_id are required", http.StatusBadRequest)
		return
	}

	start, err := time.Parse(time.RFC3339, startRaw)
	if err != nil {
		http.Error(w, "invalid start (RFC3339 with offset required)", http.StatusBadRequest)
		return
	}

	verdict := h.engine.Check(r.Context(), start, serviceID, calendarID)
	writeJSON(w, http.StatusOK, verdictResponse{
		Available:       verdict.Available,
		CalendarName:    verdict.CalendarName,
		StartDatetime:   formatEcho(verdict.Start),
		EndDatetime:     formatEcho(verdict.End),
		ServiceName:     verdict.ServiceName,
		ServiceDuration: verdict.ServiceDuration,
		ConflictReason:  verdict.Reason,
	})
}

func (h *AvailabilityHandler) CheckCalendars(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req checkCalendarsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.StartDatetime = strings.TrimSpace(req.StartDatetime)
	req.ServiceID = strings.TrimSpace(req.ServiceID)
	if req.StartDatetime == "" || req.ServiceID == "" || len(req.CalendarIDs) == 0 {
		http.Error(w, "start_datetime, service_id, and calendar_ids are required", http.StatusBadRequest)
		return
	}
	if len(req.CalendarIDs) > 50 {
		http.Error(w, "too many calendar_ids (max 50)", http.StatusBadRequest)
		return
	}
	for i, id := range req.CalendarIDs {
		req.CalendarIDs[i] = strings.TrimSpace(id)
		if req.CalendarIDs[i] == "" {
			http.Error(w, "calendar_ids must be non-empty", http.StatusBadRequest)
			return
		}
	}

	start, err := time.Parse(time.RFC3339, req.StartDatetime)
	if err != nil {
		http.Error(w, "invalid start_datetime (RFC3339 with offset required)", http.StatusBadRequest)
		return
	}

	verdict, err := h.engine.CheckCalendars(r.Context(), start, req.ServiceID, req.CalendarIDs)
	if err != nil {
		if errors.Is(err, availability.ErrServiceNotFound) || errors.Is(err, availability.ErrNoActiveCalendars) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		h.logger.Error("calendar availability check failed", "err", err, "service_id", req.ServiceID)
		http.Error(w, "availability check failed", http.StatusInternalServerError)
		return
	}

	resp := checkCalendarsResponse{
		Available:             verdict.Available,
		ServiceName:           verdict.ServiceName,
		ServiceDuration:       verdict.ServiceDuration,
		StartDatetime:         formatEcho(verdict.Start),
		EndDatetime:           formatEcho(verdict.End),
		AvailableCalendars:    make([]calendarStatusItem, 0, len(verdict.AvailableList)),
		UnavailableCalendars:  make([]calendarStatusItem, 0, len(verdict.UnavailableList)),
		TotalCalendarsChecked: verdict.TotalChecked,
		TotalAvailable:        verdict.TotalAvailable,
		TotalUnavailable:      verdict.TotalUnavailable,
	}
	for _, c := range verdict.AvailableList {
		resp.AvailableCalendars = append(resp.AvailableCalendars, calendarStatusItem{
			CalendarID:   c.CalendarID,
			CalendarName: c.CalendarName,
			Priority:     c.Priority,
		})
	}
	for _, c := range verdict.UnavailableList {
		resp.UnavailableCalendars = append(resp.UnavailableCalendars, calendarStatusItem{
			CalendarID:   c.CalendarID,
			CalendarName: c.CalendarName,
			Priority:     c.Priority,
			Reason:       c.Reason,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AvailabilityHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req suggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.StartDatetime = strings.TrimSpace(req.StartDatetime)
	req.EndDatetime = strings.TrimSpace(req.EndDatetime)
	req.ServiceID = strings.TrimSpace(req.ServiceID)
	if req.StartDatetime == "" || req.EndDatetime == "" || req.ServiceID == "" || len(req.CalendarIDs) == 0 {
		http.Error(w, "start_datetime, end_datetime, service_id, and calendar_ids are required", http.StatusBadRequest)
		return
	}
	if len(req.CalendarIDs) > 50 {
		http.Error(w, "too many calendar_ids (max 50)", http.StatusBadRequest)
		return
	}
	if req.MaxResults < 0 || req.MaxResults > 100 {
		http.Error(w, "max_results must be between 1 and 100", http.StatusBadRequest)
		return
	}
	if req.IntervalMinutes != 0 && (req.IntervalMinutes < 5 || req.IntervalMinutes > 240) {
		http.Error(w, "interval_minutes must be between 5 and 240", http.StatusBadRequest)
		return
	}

	rangeStart, err := time.Parse(time.RFC3339, req.StartDatetime)
	if err != nil {
		http.Error(w, "invalid start_datetime (RFC3339 with offset required)", http.StatusBadRequest)
		return
	}
	rangeEnd, err := time.Parse(time.RFC3339, req.EndDatetime)
	if err != nil {
		http.Error(w, "invalid end_datetime (RFC3339 with offset required)", http.StatusBadRequest)
		return
	}
	if !rangeEnd.After(rangeStart) {
		http.Error(w, "end_datetime must be after start_datetime", http.StatusBadRequest)
		return
	}

	params := suggest.Params{
		RangeStart:      rangeStart,
		RangeEnd:        rangeEnd,
		ServiceID:       req.ServiceID,
		CalendarIDs:     req.CalendarIDs,
		MaxResults:      req.MaxResults,
		ExpandTimeframe: req.ExpandTimeframe,
		IntervalMinutes: req.IntervalMinutes,
		Strategy:        strings.TrimSpace(req.Strategy),
	}
	if req.Priority != nil {
		params.Priority = suggest.PriorityConfig{Enabled: req.Priority.Enabled, Order: req.Priority.Order}
	} else {
		params.Priority = suggest.PriorityConfig{Enabled: true, Order: "asc"}
	}
	if req.TimeBlocks != nil {
		params.TimeBlocks = &suggest.TimeBlocksConfig{
			MorningStart:   req.TimeBlocks.MorningStart,
			AfternoonStart: req.TimeBlocks.AfternoonStart,
			EveningStart:   req.TimeBlocks.EveningStart,
			MorningCount:   req.TimeBlocks.MorningCount,
			AfternoonCount: req.TimeBlocks.AfternoonCount,
			EveningCount:   req.TimeBlocks.EveningCount,
		}
	}

	slots, err := h.suggester.Suggest(r.Context(), params)
	if err != nil {
		// Suggestions are best effort: lookup failures degrade to an
		// empty list rather than an error response.
		h.logger.Warn("suggestion lookup failed", "err", err, "service_id", req.ServiceID)
		writeJSON(w, http.StatusOK, []slotItem{})
		return
	}

	items := make([]slotItem, 0, len(slots))
	for _, s := range slots {
		items = append(items, slotItem{
			StartDatetime: formatEcho(s.Start),
			EndDatetime:   formatEcho(s.End),
			CalendarID:    s.CalendarID,
			CalendarName:  s.CalendarName,
			Priority:      s.Priority,
		})
	}
	writeJSON(w, http.StatusOK, items)
}

func formatEcho(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "failed to build response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
