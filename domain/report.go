package domain

import (
	"time"

	"github.com/google/uuid"
)

// Report summarises a finished exploration run. Only the summary is stored;
// the rendered maps live for the duration of the request that produced them.
type Report struct {
	ID           uuid.UUID `bson:"_id" json:"id"`
	Width        int       `bson:"width" json:"width"`
	Height       int       `bson:"height" json:"height"`
	Density      float32   `bson:"density" json:"density"`
	Seed         int64     `bson:"seed" json:"seed"`
	StartRow     int       `bson:"startRow" json:"start_row"`
	StartCol     int       `bson:"startCol" json:"start_col"`
	Visited      int       `bson:"visited" json:"visited"`
	Reachable    int       `bson:"reachable" json:"reachable"`
	Moves        int       `bson:"moves" json:"moves"`
	Scans        int       `bson:"scans" json:"scans"`
	MaxDepth     int       `bson:"maxDepth" json:"max_depth"`
	ReturnedHome bool      `bson:"returnedHome" json:"returned_home"`
	StartedAt    time.Time `bson:"startedAt" json:"started_at"`
	DurationMs   int64     `bson:"durationMs" json:"duration_ms"`

	Layout string `bson:"-" json:"layout,omitempty"` // Occupancy before the run
	Map    string `bson:"-" json:"map,omitempty"`    // Occupancy and visit counts after the run
}

// Coverage returns the share of reachable cells the run visited.
func (r *Report) Coverage() float64 {
	if r.Reachable == 0 {
		return 0
	}
	return float64(r.Visited) / float64(r.Reachable)
}

// Ranked is a leaderboard member with its score.
type Ranked struct {
	Member string  `json:"member"`
	Score  float64 `json:"score"`
}
