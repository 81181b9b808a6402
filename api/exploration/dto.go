// Package exploration exposes exploration runs over HTTP.
package exploration

// RunRequest represents a request to start an exploration.
type RunRequest struct {
	Width    int      `json:"width" binding:"omitempty,min=1,max=512"`
	Height   int      `json:"height" binding:"omitempty,min=1,max=512"`
	Density  *float32 `json:"density" binding:"omitempty,min=0,max=1"`
	Seed     int64    `json:"seed"`
	StartRow *int     `json:"start_row" binding:"omitempty,min=0"`
	StartCol *int     `json:"start_col" binding:"omitempty,min=0"`
}
