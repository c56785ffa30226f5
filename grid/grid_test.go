package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	g, err := New(4)
	require.NoError(t, err)
	assert.Equal(t, 4, g.Size())
	assert.Equal(t, 16, g.Len())

	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			c, err := g.CellAt(row, col)
			require.NoError(t, err)
			assert.Equal(t, Point{Row: row, Col: col}, c.Point())
			assert.Equal(t, Empty, c.State())
		}
	}
}

func TestNewInvalidDimension(t *testing.T) {
	for _, size := range []int{0, -1, -50} {
		g, err := New(size)
		assert.Nil(t, g)
		assert.ErrorIs(t, err, ErrInvalidDimension, "size %d", size)
	}
}

func TestCellAtOutOfBounds(t *testing.T) {
	g, err := New(3)
	require.NoError(t, err)

	cases := []Point{{-1, 0}, {0, -1}, {3, 0}, {0, 3}, {3, 3}}
	for _, p := range cases {
		c, err := g.CellAt(p.Row, p.Col)
		assert.Nil(t, c)
		assert.ErrorIs(t, err, ErrOutOfBounds, "point %v", p)
	}
	assert.Nil(t, g.At(Point{Row: 5, Col: 5}))
	assert.Equal(t, Obstacle, g.StateAt(Point{Row: -1, Col: 2}))
}

func TestRefreshNeighborsOrder(t *testing.T) {
	g, err := New(3)
	require.NoError(t, err)
	g.RefreshNeighbors()

	// Center cell: down, up, right, left
	assert.Equal(t, []Point{{2, 1}, {0, 1}, {1, 2}, {1, 0}}, g.Neighbors(Point{1, 1}))

	// Corners only see in-bounds cells, order preserved
	assert.Equal(t, []Point{{1, 0}, {0, 1}}, g.Neighbors(Point{0, 0}))
	assert.Equal(t, []Point{{1, 2}, {2, 1}}, g.Neighbors(Point{2, 2}))
}

func TestRefreshNeighborsSkipsObstacles(t *testing.T) {
	g, err := Parse([]string{
		".#.",
		"#..",
		"...",
	})
	require.NoError(t, err)
	g.RefreshNeighbors()

	assert.Empty(t, g.Neighbors(Point{0, 0}))
	assert.Equal(t, []Point{{2, 1}, {1, 2}}, g.Neighbors(Point{1, 1}))

	for _, n := range g.Neighbors(Point{1, 1}) {
		assert.NotEqual(t, Point{1, 1}, n, "cell must not neighbor itself")
	}

	// Obstacles added after the last refresh stay visible until the next one
	g.At(Point{2, 1}).SetState(Obstacle)
	assert.Contains(t, g.Neighbors(Point{1, 1}), Point{2, 1})
	g.RefreshNeighbors()
	assert.NotContains(t, g.Neighbors(Point{1, 1}), Point{2, 1})
}

func TestResetClearsEverything(t *testing.T) {
	g, err := Parse([]string{
		"S#.",
		"~*+",
		"..E",
	})
	require.NoError(t, err)

	g.Reset()
	assert.Equal(t, 9, g.Count(Empty))
	_, ok := g.Find(Start)
	assert.False(t, ok)
}

func TestClearSearchKeepsUserMarks(t *testing.T) {
	g, err := Parse([]string{
		"S#+",
		"~*~",
		"#.E",
	})
	require.NoError(t, err)

	g.ClearSearch()
	assert.Equal(t, []string{"S#.", "...", "#.E"}, splitLines(g.String()))
}

func TestParseRoundTrip(t *testing.T) {
	picture := []string{
		"S..#",
		".##.",
		"+~*.",
		"...E",
	}
	g, err := Parse(picture)
	require.NoError(t, err)
	assert.Equal(t, picture, splitLines(g.String()))

	start, ok := g.Find(Start)
	require.True(t, ok)
	assert.Equal(t, Point{0, 0}, start)
	assert.Equal(t, 3, g.Count(Obstacle))
}

func TestParseRejectsBadInput(t *testing.T) {
	_, err := Parse([]string{"..", "..."})
	assert.ErrorIs(t, err, ErrInvalidDimension)

	_, err = Parse(nil)
	assert.ErrorIs(t, err, ErrInvalidDimension)

	_, err = Parse([]string{"?"})
	assert.Error(t, err)
}

func TestManhattan(t *testing.T) {
	assert.Equal(t, 0, Manhattan(Point{2, 2}, Point{2, 2}))
	assert.Equal(t, 7, Manhattan(Point{0, 0}, Point{3, 4}))
	assert.Equal(t, 7, Manhattan(Point{3, 4}, Point{0, 0}))
	assert.True(t, Orthogonal(Point{1, 1}, Point{1, 2}))
	assert.False(t, Orthogonal(Point{1, 1}, Point{2, 2}))
	assert.False(t, Orthogonal(Point{1, 1}, Point{1, 1}))
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return out
}
