package robot

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyOf(t *testing.T) {
	t.Run("Packs both axes without sign extension", func(t *testing.T) {
		assert.Equal(t, Key(0), KeyOf(Coordinate{0, 0}))
		assert.Equal(t, Key(0x00000000FFFFFFFF), KeyOf(Coordinate{0, -1}))
		assert.Equal(t, Key(0xFFFFFFFF00000000), KeyOf(Coordinate{-1, 0}))
		assert.Equal(t, Key(0x0000000100000002), KeyOf(Coordinate{1, 2}))
	})

	t.Run("Mirrored signs produce different keys", func(t *testing.T) {
		assert.NotEqual(t, KeyOf(Coordinate{-1, 1}), KeyOf(Coordinate{1, -1}))
		assert.NotEqual(t, KeyOf(Coordinate{-1, -1}), KeyOf(Coordinate{1, 1}))
	})

	t.Run("Distinct coordinates never collide", func(t *testing.T) {
		values := []int32{math.MinInt32, math.MinInt32 + 1, -65536, -2, -1, 0, 1, 2, 65535, math.MaxInt32 - 1, math.MaxInt32}
		seen := make(map[Key]Coordinate)
		for _, x := range values {
			for _, y := range values {
				c := Coordinate{X: x, Y: y}
				k := KeyOf(c)
				if prev, ok := seen[k]; ok {
					t.Fatalf("key %d shared by %s and %s", k, prev, c)
				}
				seen[k] = c
			}
		}
		assert.Len(t, seen, len(values)*len(values))
	})

	t.Run("Small window around origin is collision free", func(t *testing.T) {
		seen := make(map[Key]struct{})
		for x := int32(-50); x <= 50; x++ {
			for y := int32(-50); y <= 50; y++ {
				seen[Coordinate{x, y}.Key()] = struct{}{}
			}
		}
		assert.Len(t, seen, 101*101)
	})
}

func TestNeighbor(t *testing.T) {
	origin := Coordinate{X: 3, Y: 7}

	assert.Equal(t, Coordinate{3, 6}, origin.Neighbor(Up))
	assert.Equal(t, Coordinate{3, 8}, origin.Neighbor(Down))
	assert.Equal(t, Coordinate{2, 7}, origin.Neighbor(Left))
	assert.Equal(t, Coordinate{4, 7}, origin.Neighbor(Right))
	assert.Equal(t, origin, origin.Neighbor(None))

	for _, d := range Directions {
		assert.Equal(t, origin, origin.Neighbor(d).Neighbor(d.Opposite()), d.String())
	}
}

func TestOpposite(t *testing.T) {
	assert.Equal(t, Down, Up.Opposite())
	assert.Equal(t, Up, Down.Opposite())
	assert.Equal(t, Right, Left.Opposite())
	assert.Equal(t, Left, Right.Opposite())
	assert.Equal(t, None, None.Opposite())
	assert.False(t, None.Valid())
}
