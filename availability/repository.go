package availability

import "context"

type Repository interface {
	// Upsert writes a record by its (referee, date) natural key, replacing
	// type and weekday when the pair already exists. Reports whether a new
	// row was created.
	Upsert(ctx context.Context, rec Record) (created bool, err error)

	// DatesByType returns every date a referee has recorded with the given
	// type, ordered by date.
	DatesByType(ctx context.Context, refereeID, availableType string) ([]string, error)

	// List returns records joined with their owning referee. An empty
	// refereeID returns all records.
	List(ctx context.Context, refereeID string) ([]Record, error)
}
