package arbiter

import (
	"io"
	"math/rand"
	"testing"

	"github.com/dpersh/robot/robot"
	"github.com/dpersh/robot/world"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLayout(t *testing.T, rows ...string) *world.World {
	t.Helper()
	w, err := world.FromLayout(rows)
	require.NoError(t, err)
	return w
}

func TestNew(t *testing.T) {
	w := mustLayout(t,
		"#.",
		"..",
	)

	t.Run("Landing counts as a visit", func(t *testing.T) {
		a, err := New(w, world.CellPosition{Row: 1, Col: 1}, nil)
		require.NoError(t, err)
		assert.Equal(t, world.CellPosition{Row: 1, Col: 1}, a.Position())
		assert.Equal(t, uint(1), w.NumVisits(world.CellPosition{Row: 1, Col: 1}))
	})

	t.Run("Nil logger discards output", func(t *testing.T) {
		a, err := New(mustLayout(t, ".."), world.CellPosition{Row: 0, Col: 0}, nil)
		require.NoError(t, err)

		l, ok := a.logger.(*logrus.Logger)
		require.True(t, ok)
		assert.Equal(t, io.Discard, l.Out)
		assert.NotSame(t, logrus.StandardLogger(), l)
	})

	t.Run("Cannot land on an occupied cell", func(t *testing.T) {
		_, err := New(w, world.CellPosition{Row: 0, Col: 0}, nil)
		assert.ErrorIs(t, err, world.ErrOccupied)
	})

	t.Run("Cannot land outside the world", func(t *testing.T) {
		_, err := New(w, world.CellPosition{Row: 9, Col: 0}, nil)
		assert.ErrorIs(t, err, world.ErrOutOfBounds)
	})
}

func TestScan(t *testing.T) {
	w := mustLayout(t,
		"#..",
		"...",
	)
	a, err := New(w, world.CellPosition{Row: 0, Col: 1}, nil)
	require.NoError(t, err)

	tests := []struct {
		dir  robot.Direction
		want robot.CellState
	}{
		{robot.Up, robot.Blocked},
		{robot.Down, robot.Unblocked},
		{robot.Left, robot.Blocked},
		{robot.Right, robot.Unblocked},
	}
	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			got, err := a.Scan(tt.dir)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err = a.Scan(robot.None)
	assert.ErrorIs(t, err, ErrInvalidDirection)
}

func TestMove(t *testing.T) {
	t.Run("Move requires a clear scan", func(t *testing.T) {
		w := mustLayout(t, "...")
		a, err := New(w, world.CellPosition{Row: 0, Col: 0}, nil)
		require.NoError(t, err)

		assert.ErrorIs(t, a.Move(robot.Right), ErrInvalidMove)
		assert.Equal(t, world.CellPosition{Row: 0, Col: 0}, a.Position())

		state, err := a.Scan(robot.Right)
		require.NoError(t, err)
		require.Equal(t, robot.Unblocked, state)
		require.NoError(t, a.Move(robot.Right))
		assert.Equal(t, world.CellPosition{Row: 0, Col: 1}, a.Position())

		// Stepping back into a visited cell needs no new scan.
		require.NoError(t, a.Move(robot.Left))
		assert.Equal(t, uint(2), w.NumVisits(world.CellPosition{Row: 0, Col: 0}))
	})

	t.Run("Blocked scan does not clear the cell", func(t *testing.T) {
		w := mustLayout(t, ".#")
		a, err := New(w, world.CellPosition{Row: 0, Col: 0}, nil)
		require.NoError(t, err)

		state, err := a.Scan(robot.Right)
		require.NoError(t, err)
		assert.Equal(t, robot.Blocked, state)
		assert.ErrorIs(t, a.Move(robot.Right), ErrInvalidMove)
	})
}

func TestExploreThroughArbiter(t *testing.T) {
	t.Run("Open 5x5 interior", func(t *testing.T) {
		w, err := world.New(5, 5, world.ObstacleModel{Density: 0}, rand.New(rand.NewSource(1)))
		require.NoError(t, err)

		landing := w.Center()
		a, err := New(w, landing, nil)
		require.NoError(t, err)

		res, err := robot.NewExplorer(a, a, &robot.Options{Start: robot.Coordinate{X: 2, Y: 2}}).Explore()
		require.NoError(t, err)

		assert.Equal(t, landing, a.Position())
		assert.Equal(t, 25, res.Stats.Visited)
		assert.Equal(t, 25, w.VisitedCount())
		for row := 1; row <= 5; row++ {
			for col := 1; col <= 5; col++ {
				c := robot.Coordinate{X: int32(col - 1), Y: int32(row - 1)}
				assert.True(t, res.Ledger.IsVisited(c), "%s", c)
			}
		}
	})

	t.Run("Random worlds are fully covered", func(t *testing.T) {
		for seed := int64(1); seed <= 20; seed++ {
			w, err := world.New(25, 25, world.ObstacleModel{Density: 0.3}, rand.New(rand.NewSource(seed)))
			require.NoError(t, err)

			landing := w.Center()
			require.NoError(t, w.Clear(landing))
			reachable := w.Reachable(landing)

			a, err := New(w, landing, nil)
			require.NoError(t, err)

			res, err := robot.NewExplorer(a, a, nil).Explore()
			require.NoError(t, err, "seed %d", seed)

			assert.Equal(t, landing, a.Position(), "seed %d", seed)
			assert.Equal(t, reachable, res.Stats.Visited, "seed %d", seed)
			assert.Equal(t, reachable, w.VisitedCount(), "seed %d", seed)

			total := uint(0)
			for _, row := range w.Grid {
				for _, c := range row {
					total += c.NumVisits()
				}
			}
			assert.Equal(t, uint(res.Stats.Moves+1), total, "seed %d", seed)
		}
	})
}
