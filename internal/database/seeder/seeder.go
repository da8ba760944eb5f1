package seeder

import (
	"context"

	"portfolio-api/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
