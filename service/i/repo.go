package i

import (
	"context"

	dmn "github.com/dpersh/robot/domain"
	"github.com/google/uuid"
)

// ReportRepo defines the interface for exploration report persistence.
type ReportRepo interface {
	// Save inserts or replaces a report.
	Save(ctx context.Context, report *dmn.Report) error

	// ByID retrieves a report by its run ID.
	// Returns an error if the report is not found or in case of an unexpected error.
	ByID(ctx context.Context, id uuid.UUID) (*dmn.Report, error)
}
