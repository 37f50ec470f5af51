package outbox

import (
	"encoding/json"
	"time"

	"github.com/agendo-app/agendo/internal/model"
)

// Event is the domain event envelope written to the outbox table. The Kafka
// topic name equals EventType (one topic per event type).
type Event struct {
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
}

const (
	TopicAppointmentCreated   = "scheduling.appointment.created.v1"
	TopicAppointmentCancelled = "scheduling.appointment.cancelled.v1"
	TopicAppointmentCompleted = "scheduling.appointment.completed.v1"
)

type appointmentPayload struct {
	AppointmentID string `json:"appointment_id"`
	CalendarID    string `json:"calendar_id"`
	ServiceID     string `json:"service_id"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	Status        string `json:"status"`
}

// AppointmentEvent builds the outbox envelope for one appointment lifecycle
// transition. Timestamps go out in UTC.
func AppointmentEvent(eventType string, appt model.Appointment) (Event, error) {
	payload, err := json.Marshal(appointmentPayload{
		AppointmentID: appt.ID,
		CalendarID:    appt.CalendarID,
		ServiceID:     appt.ServiceID,
		StartTime:     appt.StartTime.UTC().Format(time.RFC3339),
		EndTime:       appt.EndTime.UTC().Format(time.RFC3339),
		Status:        appt.Status,
	})
	if err != nil {
		return Event{}, err
	}
	return Event{
		AggregateType: "appointment",
		AggregateID:   appt.ID,
		EventType:     eventType,
		Payload:       payload,
	}, nil
}
