package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// RESTClient talks to the calendar provider's JSON API. It is the default
// transport; the gRPC client behind the protogen build tag replaces it when
// generated stubs are available.
type RESTClient struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewRESTClient(baseURL, token string, timeout time.Duration) *RESTClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &RESTClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type eventTime struct {
	DateTime string `json:"date_time,omitempty"`
	Date     string `json:"date,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

type wireEvent struct {
	ID           string    `json:"id"`
	Start        eventTime `json:"start"`
	End          eventTime `json:"end"`
	Status       string    `json:"status"`
	Transparency string    `json:"transparency"`
}

type listEventsResponse struct {
	Events []wireEvent `json:"events"`
}

func (c *RESTClient) ListEvents(ctx context.Context, externalCalendarID string, utcStart, utcEnd time.Time) ([]Event, error) {
	q := url.Values{}
	q.Set("time_min", utcStart.UTC().Format(time.RFC3339))
	q.Set("time_max", utcEnd.UTC().Format(time.RFC3339))
	endpoint := fmt.Sprintf("%s/v1/calendars/%s/events?%s", c.baseURL, url.PathEscape(externalCalendarID), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider returned status %d for calendar %s", resp.StatusCode, externalCalendarID)
	}

	var body listEventsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode provider response: %w", err)
	}

	events := make([]Event, 0, len(body.Events))
	for _, we := range body.Events {
		ev, err := decodeEvent(we)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

func decodeEvent(we wireEvent) (Event, error) {
	ev := Event{
		ID:           we.ID,
		Status:       we.Status,
		Transparency: we.Transparency,
	}

	start, allDay, err := decodeEventTime(we.Start)
	if err != nil {
		return Event{}, fmt.Errorf("event %s start: %w", we.ID, err)
	}
	end, _, err := decodeEventTime(we.End)
	if err != nil {
		return Event{}, fmt.Errorf("event %s end: %w", we.ID, err)
	}

	ev.Start = start
	ev.End = end
	ev.AllDay = allDay
	return ev, nil
}

func decodeEventTime(et eventTime) (time.Time, bool, error) {
	if et.DateTime != "" {
		t, err := time.Parse(time.RFC3339, et.DateTime)
		return t, false, err
	}
	if et.Date != "" {
		loc := time.UTC
		if et.Timezone != "" {
			if l, err := time.LoadLocation(et.Timezone); err == nil {
				loc = l
			}
		}
		t, err := time.ParseInLocation("2006-01-02", et.Date, loc)
		return t, true, err
	}
	return time.Time{}, false, fmt.Errorf("event time missing both date_time and date")
}

// ReadyCheck probes the provider's health endpoint for /readyz.
func (c *RESTClient) ReadyCheck() func(context.Context) error {
	return func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
		if err != nil {
			return err
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("provider health returned status %d", resp.StatusCode)
		}
		return nil
	}
}
