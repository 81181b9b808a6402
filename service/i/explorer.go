package i

import (
	"context"

	dmn "github.com/dpersh/robot/domain"
	"github.com/google/uuid"
)

// RunParams selects the world an exploration runs in. Zero values fall back
// to the service defaults.
type RunParams struct {
	Width    int
	Height   int
	Density  *float32 // nil uses the default density; 0 is a valid density
	Seed     int64    // 0 picks a time based seed
	StartRow *int     // nil lands the robot in the middle of the world
	StartCol *int
}

// Explorer runs explorations and serves their reports.
type Explorer interface {
	Run(ctx context.Context, params RunParams) (*dmn.Report, error)
	ByID(ctx context.Context, id uuid.UUID) (*dmn.Report, error)
	Leaderboard(ctx context.Context, width, height int, amount int64) ([]dmn.Ranked, error)
}

// Authenticator exchanges an operator key for a token.
type Authenticator interface {
	IssueToken(key string) (string, error)
}
