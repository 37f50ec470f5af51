package inbox

import (
	"context"

	"github.com/agendo-app/agendo/libs/db"
	"github.com/jackc/pgx/v5/pgconn"
)

// Repository records processed event IDs so the consumer stays idempotent
// across redeliveries.
type Repository struct {
	pool *db.Pool
}

func NewRepository(pool *db.Pool) *Repository {
	return &Repository{pool: pool}
}

// Record inserts the event ID and reports whether this delivery is the
// first one. A unique violation means the event was already handled.
func (r *Repository) Record(ctx context.Context, eventID string, eventType string) (bool, error) {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO inbox_events (event_id, event_type)
		VALUES ($1, $2)
	`, eventID, eventType)
	if err == nil {
		return true, nil
	}

	if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" {
		return false, nil
	}

	return false, err
}
