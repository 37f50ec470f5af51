package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/agendo-app/agendo/internal/model"
	"github.com/agendo-app/agendo/libs/db"
	"github.com/jackc/pgx/v5"
)

var ErrNotFound = errors.New("not found")

// CatalogRepository reads the scheduling metadata: services, calendars and
// their owning instances. All reads are point lookups or small batches; the
// engine treats the results as immutable for the duration of a computation.
type CatalogRepository struct {
	pool *db.Pool
}

func NewCatalogRepository(pool *db.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

func (r *CatalogRepository) GetService(ctx context.Context, id string) (model.Service, error) {
	var svc model.Service
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, name, duration_minutes, buffer_before_minutes, buffer_after_minutes, is_active
		FROM services
		WHERE id = $1
	`, id).Scan(&svc.ID, &svc.Name, &svc.DurationMins, &svc.BufferBefore, &svc.BufferAfter, &svc.Active)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Service{}, fmt.Errorf("service %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Service{}, err
	}
	return svc, nil
}

func (r *CatalogRepository) GetCalendar(ctx context.Context, id string) (model.Calendar, error) {
	var cal model.Calendar
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, external_calendar_id, instance_id::text, name, priority, is_active
		FROM calendars
		WHERE id = $1
	`, id).Scan(&cal.ID, &cal.ExternalID, &cal.InstanceID, &cal.Name, &cal.Priority, &cal.Active)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Calendar{}, fmt.Errorf("calendar %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Calendar{}, err
	}
	return cal, nil
}

// ListCalendars returns the requested calendars ordered by priority. With
// activeOnly set, inactive calendars are filtered out; ids that do not exist
// are silently absent from the result.
func (r *CatalogRepository) ListCalendars(ctx context.Context, ids []string, activeOnly bool) ([]model.Calendar, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, external_calendar_id, instance_id::text, name, priority, is_active
		FROM calendars
		WHERE id = ANY($1)
			AND ($2 = false OR is_active)
		ORDER BY priority ASC, id ASC
	`, ids, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cals []model.Calendar
	for rows.Next() {
		var cal model.Calendar
		if err := rows.Scan(&cal.ID, &cal.ExternalID, &cal.InstanceID, &cal.Name, &cal.Priority, &cal.Active); err != nil {
			return nil, err
		}
		cals = append(cals, cal)
	}
	return cals, rows.Err()
}

func (r *CatalogRepository) GetInstance(ctx context.Context, id string) (model.Instance, error) {
	var inst model.Instance
	var hoursRaw []byte
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, timezone, business_hours
		FROM instances
		WHERE id = $1
	`, id).Scan(&inst.ID, &inst.Timezone, &hoursRaw)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Instance{}, fmt.Errorf("instance %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Instance{}, err
	}
	if len(hoursRaw) > 0 {
		if err := json.Unmarshal(hoursRaw, &inst.Hours); err != nil {
			return model.Instance{}, fmt.Errorf("instance %s business_hours: %w", id, err)
		}
	}
	return inst, nil
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, pgx.ErrNoRows)
}
