package i

import (
	"context"

	dmn "github.com/dpersh/robot/domain"
)

// Leaderboard ranks members of a named board by score.
type Leaderboard interface {
	// Add sets the member's score on the board.
	Add(ctx context.Context, board string, score float64, member string) error

	// Top returns up to amount members with the highest scores, best first.
	Top(ctx context.Context, board string, amount int64) ([]dmn.Ranked, error)

	// Count returns the number of members on the board.
	Count(ctx context.Context, board string) int64
}
