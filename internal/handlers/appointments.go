package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/agendo-app/agendo/internal/availability"
	"github.com/agendo-app/agendo/internal/model"
	"github.com/agendo-app/agendo/internal/outbox"
	"github.com/agendo-app/agendo/internal/storage"
	"github.com/jackc/pgx/v5"
)

// appointmentStore is the persistence surface the handler needs. Satisfied by
// storage.AppointmentRepository; tests substitute a fake.
type appointmentStore interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Create(ctx context.Context, tx pgx.Tx, appt *model.Appointment) (string, error)
	GetForUpdate(ctx context.Context, tx pgx.Tx, appointmentID string) (model.Appointment, error)
	UpdateStatus(ctx context.Context, tx pgx.Tx, appointmentID, status, reason string) (time.Time, error)
	List(ctx context.Context, calendarID string, from, to time.Time) ([]model.Appointment, error)
	LockIdempotencyKey(ctx context.Context, tx pgx.Tx, calendarID, key string) (storage.IdempotencyRecord, bool, error)
	FinalizeIdempotency(ctx context.Context, tx pgx.Tx, calendarID, key, appointmentID string, statusCode int, response []byte) error
}

type AppointmentHandler struct {
	repo       appointmentStore
	outboxRepo *outbox.Repository
	engine     *availability.Engine
	logger     *slog.Logger
}

func NewAppointmentHandler(repo appointmentStore, outboxRepo *outbox.Repository, engine *availability.Engine, logger *slog.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		repo:       repo,
		outboxRepo: outboxRepo,
		engine:     engine,
		logger:     logger,
	}
}

type createAppointmentRequest struct {
	CalendarID    string `json:"calendar_id"`
	ServiceID     string `json:"service_id"`
	CustomerName  string `json:"customer_name"`
	StartDatetime string `json:"start_datetime"`
}

type createAppointmentResponse struct {
	AppointmentID string `json:"appointment_id"`
	Status        string `json:"status"`
	StartDatetime string `json:"start_datetime"`
	EndDatetime   string `json:"end_datetime"`
}

type statusChangeRequest struct {
	AppointmentID string `json:"appointment_id"`
	Reason        string `json:"reason"`
}

type statusChangeResponse struct {
	AppointmentID string `json:"appointment_id"`
	Status        string `json:"status"`
	ChangedAt     string `json:"changed_at"`
}

type appointmentItem struct {
	AppointmentID string `json:"appointment_id"`
	CalendarID    string `json:"calendar_id"`
	ServiceID     string `json:"service_id"`
	CustomerName  string `json:"customer_name"`
	StartDatetime string `json:"start_datetime"`
	EndDatetime   string `json:"end_datetime"`
	Status        string `json:"status"`
	CancelledAt   string `json:"cancelled_at,omitempty"`
	CreatedAt     string `json:"created_at"`
}

func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req createAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.CalendarID = strings.TrimSpace(req.CalendarID)
	req.ServiceID = strings.TrimSpace(req.ServiceID)
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.StartDatetime = strings.TrimSpace(req.StartDatetime)
	if req.CalendarID == "" || req.ServiceID == "" || req.CustomerName == "" || req.StartDatetime == "" {
		http.Error(w, "calendar_id, service_id, customer_name, and start_datetime are required", http.StatusBadRequest)
		return
	}

	start, err := time.Parse(time.RFC3339, req.StartDatetime)
	if err != nil {
		http.Error(w, "invalid start_datetime (RFC3339 with offset required)", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	tx, err := h.repo.Begin(ctx)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	idempotencyKey := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
	if idempotencyKey != "" {
		rec, exists, err := h.repo.LockIdempotencyKey(ctx, tx, req.CalendarID, idempotencyKey)
		if err != nil {
			http.Error(w, "failed to lock idempotency key", http.StatusInternalServerError)
			return
		}
		if exists && rec.StatusCode > 0 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(rec.StatusCode)
			if len(rec.ResponsePayload) > 0 {
				_, _ = w.Write(rec.ResponsePayload)
				return
			}
			_ = json.NewEncoder(w).Encode(createAppointmentResponse{AppointmentID: rec.AppointmentID})
			return
		}
	}

	// The requested slot must still be free at booking time. Provider
	// failures surface as an unavailable verdict, so the caller can retry.
	verdict := h.engine.Check(ctx, start, req.ServiceID, req.CalendarID)
	if !verdict.Available {
		body, err := json.Marshal(map[string]string{"error": verdict.Reason})
		if err != nil {
			http.Error(w, "failed to build response", http.StatusInternalServerError)
			return
		}
		// Persist the rejection for replays, then answer with the same
		// status and body a replayed request will see.
		if idempotencyKey != "" {
			if err := h.repo.FinalizeIdempotency(ctx, tx, req.CalendarID, idempotencyKey, "", http.StatusUnprocessableEntity, body); err != nil {
				h.logger.Error("failed to finalize idempotency (rejection)", "err", err)
			} else if err := tx.Commit(ctx); err != nil {
				h.logger.Error("failed to commit rejection", "err", err)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write(body)
		return
	}

	appt := &model.Appointment{
		CalendarID:   req.CalendarID,
		ServiceID:    req.ServiceID,
		CustomerName: req.CustomerName,
		StartTime:    start,
		EndTime:      start.Add(time.Duration(verdict.ServiceDuration) * time.Minute),
		Status:       model.AppointmentScheduled,
	}

	id, err := h.repo.Create(ctx, tx, appt)
	if err != nil {
		if storage.IsConflict(err) {
			http.Error(w, "time slot already booked", http.StatusConflict)
			return
		}
		http.Error(w, "failed to create appointment", http.StatusInternalServerError)
		return
	}
	appt.ID = id

	evt, err := outbox.AppointmentEvent(outbox.TopicAppointmentCreated, *appt)
	if err != nil {
		http.Error(w, "failed to build event payload", http.StatusInternalServerError)
		return
	}
	if err := h.outboxRepo.Insert(ctx, tx, evt); err != nil {
		http.Error(w, "failed to write outbox event", http.StatusInternalServerError)
		return
	}

	respBody, err := json.Marshal(createAppointmentResponse{
		AppointmentID: id,
		Status:        appt.Status,
		StartDatetime: appt.StartTime.Format(time.RFC3339),
		EndDatetime:   appt.EndTime.Format(time.RFC3339),
	})
	if err != nil {
		http.Error(w, "failed to build response", http.StatusInternalServerError)
		return
	}
	if idempotencyKey != "" {
		if err := h.repo.FinalizeIdempotency(ctx, tx, req.CalendarID, idempotencyKey, id, http.StatusCreated, respBody); err != nil {
			http.Error(w, "failed to finalize idempotency key", http.StatusInternalServerError)
			return
		}
	}

	if err := tx.Commit(ctx); err != nil {
		http.Error(w, "failed to commit", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write(respBody)
}

func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.changeStatus(w, r, model.AppointmentCancelled, outbox.TopicAppointmentCancelled)
}

func (h *AppointmentHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.changeStatus(w, r, model.AppointmentCompleted, outbox.TopicAppointmentCompleted)
}

func (h *AppointmentHandler) changeStatus(w http.ResponseWriter, r *http.Request, target, eventType string) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req statusChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.AppointmentID = strings.TrimSpace(req.AppointmentID)
	req.Reason = strings.TrimSpace(req.Reason)
	if req.AppointmentID == "" {
		http.Error(w, "appointment_id required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	tx, err := h.repo.Begin(ctx)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	appt, err := h.repo.GetForUpdate(ctx, tx, req.AppointmentID)
	if err != nil {
		if storage.IsNotFound(err) {
			http.Error(w, "appointment not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to load appointment", http.StatusInternalServerError)
		return
	}

	if appt.Status == target {
		changedAt := appt.CreatedAt
		if appt.CancelledAt != nil {
			changedAt = *appt.CancelledAt
		}
		h.writeStatusResponse(w, appt.ID, target, changedAt.UTC())
		return
	}
	if appt.Status != model.AppointmentScheduled && appt.Status != model.AppointmentConfirmed {
		http.Error(w, "appointment is not active", http.StatusConflict)
		return
	}

	changedAt, err := h.repo.UpdateStatus(ctx, tx, appt.ID, target, req.Reason)
	if err != nil {
		http.Error(w, "failed to update appointment", http.StatusInternalServerError)
		return
	}

	appt.Status = target
	evt, err := outbox.AppointmentEvent(eventType, appt)
	if err != nil {
		http.Error(w, "failed to build event payload", http.StatusInternalServerError)
		return
	}
	if err := h.outboxRepo.Insert(ctx, tx, evt); err != nil {
		http.Error(w, "failed to write outbox event", http.StatusInternalServerError)
		return
	}

	if err := tx.Commit(ctx); err != nil {
		http.Error(w, "failed to commit", http.StatusInternalServerError)
		return
	}
	h.writeStatusResponse(w, appt.ID, target, changedAt.UTC())
}

func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	calendarID := strings.TrimSpace(r.URL.Query().Get("calendar_id"))
	if calendarID == "" {
		http.Error(w, "calendar_id required", http.StatusBadRequest)
		return
	}

	now := time.Now().UTC()
	from := now.AddDate(0, 0, -30)
	to := now.AddDate(0, 0, 90)
	if raw := strings.TrimSpace(r.URL.Query().Get("from")); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			http.Error(w, "invalid from (RFC3339 with offset required)", http.StatusBadRequest)
			return
		}
		from = t
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("to")); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			http.Error(w, "invalid to (RFC3339 with offset required)", http.StatusBadRequest)
			return
		}
		to = t
	}
	if !to.After(from) {
		http.Error(w, "to must be after from", http.StatusBadRequest)
		return
	}

	appts, err := h.repo.List(r.Context(), calendarID, from, to)
	if err != nil {
		http.Error(w, "failed to list appointments", http.StatusInternalServerError)
		return
	}

	items := make([]appointmentItem, 0, len(appts))
	for _, appt := range appts {
		item := appointmentItem{
			AppointmentID: appt.ID,
			CalendarID:    appt.CalendarID,
			ServiceID:     appt.ServiceID,
			CustomerName:  appt.CustomerName,
			StartDatetime: appt.StartTime.UTC().Format(time.RFC3339),
			EndDatetime:   appt.EndTime.UTC().Format(time.RFC3339),
			Status:        appt.Status,
			CreatedAt:     appt.CreatedAt.UTC().Format(time.RFC3339),
		}
		if appt.CancelledAt != nil {
			item.CancelledAt = appt.CancelledAt.UTC().Format(time.RFC3339)
		}
		items = append(items, item)
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *AppointmentHandler) writeStatusResponse(w http.ResponseWriter, appointmentID, status string, changedAt time.Time) {
	writeJSON(w, http.StatusOK, statusChangeResponse{
		AppointmentID: appointmentID,
		Status:        status,
		ChangedAt:     changedAt.Format(time.RFC3339),
	})
}
