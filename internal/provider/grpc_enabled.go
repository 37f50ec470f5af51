//go:build protogen

package provider

import (
	"context"
	"time"

	"github.com/agendo-app/agendo/libs/grpcx"
	calendarproviderv1 "github.com/agendo-app/agendo/protos/gen/calendarprovider/v1"
	"google.golang.org/protobuf/types/known/timestamppb"
)

type grpcClient struct {
	client calendarproviderv1.CalendarProviderServiceClient
}

// NewGRPCClient dials the provider's gRPC endpoint. An empty addr disables
// the transport and the caller falls back to REST.
func NewGRPCClient(addr string) (Client, error) {
	if addr == "" {
		return nil, nil
	}
	conn, err := grpcx.Dial(context.Background(), addr, grpcx.DialOptions{Timeout: 3 * time.Second})
	if err != nil {
		return nil, err
	}
	return &grpcClient{client: calendarproviderv1.NewCalendarProviderServiceClient(conn)}, nil
}

func (c *grpcClient) ListEvents(ctx context.Context, externalCalendarID string, utcStart, utcEnd time.Time) ([]Event, error) {
	resp, err := c.client.ListEvents(ctx, &calendarproviderv1.ListEventsRequest{
		CalendarId: externalCalendarID,
		TimeMin:    timestamppb.New(utcStart.UTC()),
		TimeMax:    timestamppb.New(utcEnd.UTC()),
	})
	if err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(resp.GetEvents()))
	for _, e := range resp.GetEvents() {
		if e.GetStart() == nil || e.GetEnd() == nil {
			continue
		}
		events = append(events, Event{
			ID:           e.GetId(),
			Start:        e.GetStart().AsTime(),
			End:          e.GetEnd().AsTime(),
			AllDay:       e.GetAllDay(),
			Status:       e.GetStatus(),
			Transparency: e.GetTransparency(),
		})
	}
	return events, nil
}
