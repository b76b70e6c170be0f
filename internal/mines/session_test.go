package mines

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionStartsPlaying(t *testing.T) {
	params := GameParams{Width: 9, Height: 9, MineCount: 10}
	s, err := NewSession(params, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)

	assert.Equal(t, Playing, s.Phase())
	assert.Equal(t, params, s.Params())
	assert.Equal(t, 10, s.Board().MineCount())
	for _, c := range s.Board().All() {
		assert.Equal(t, Covered, c.State)
	}
}

func TestNewSessionRejectsInvalidParams(t *testing.T) {
	_, err := NewSession(GameParams{Width: 0, Height: 3, MineCount: 1}, nil)
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestNewSessionRejectsOverflowingBoard(t *testing.T) {
	for _, p := range []GameParams{
		{Width: 1 << 32, Height: 1 << 32, MineCount: 1},
		{Width: 3037000500, Height: 3037000500},
	} {
		var s *Session
		var err error
		require.NotPanics(t, func() { s, err = NewSession(p, nil) })
		assert.ErrorIs(t, err, ErrInvalidParams)
		assert.Nil(t, s)
	}
}

func TestCellOutOfBounds(t *testing.T) {
	s := newTestSession(t, 3, 3, Point{2, 2})

	for _, p := range []Point{{-1, 0}, {0, -1}, {3, 0}, {0, 3}} {
		_, err := s.Cell(p.X, p.Y)
		assert.ErrorIs(t, err, ErrOutOfBounds, "%s", p)
	}
}

func TestOutOfBoundsCommandsAreIgnored(t *testing.T) {
	s := newTestSession(t, 3, 3, Point{2, 2})

	for _, cmd := range []Command{RevealAt(3, 0), RevealAt(-1, 2), FlagAt(0, 9)} {
		out := s.Apply(cmd)
		assert.Empty(t, out.Changed, "%s", cmd)
		assert.Equal(t, Playing, out.Phase)
	}
}

func TestEndedIgnoresMoves(t *testing.T) {
	s := newTestSession(t, 3, 3, Point{2, 2})
	s.Apply(RevealAt(2, 2))
	require.Equal(t, Ended, s.Phase())

	before := s.Board().Grid()
	for _, cmd := range []Command{RevealAt(0, 0), FlagAt(1, 1), RevealAt(2, 2)} {
		out := s.Apply(cmd)
		assert.Empty(t, out.Changed)
		assert.Equal(t, Ended, out.Phase)
		assert.False(t, out.Won)
	}
	assert.Equal(t, before, s.Board().Grid())
}

func TestRestart(t *testing.T) {
	s := newTestSession(t, 3, 3, Point{2, 2})
	s.Apply(RevealAt(0, 0))
	require.Equal(t, Ended, s.Phase())
	require.True(t, s.Won())
	old := s.Board()

	out := s.Apply(Restart())

	assert.Equal(t, Playing, out.Phase)
	assert.False(t, out.Won)
	assert.Len(t, out.Changed, 9)
	for _, c := range out.Changed {
		assert.Equal(t, Covered, c.State)
	}
	assert.NotSame(t, old, s.Board())
	for _, c := range s.Board().All() {
		assert.Equal(t, Covered, c.State)
	}
}

func TestRestartWhilePlayingIsIgnored(t *testing.T) {
	s := newTestSession(t, 3, 3, Point{2, 2})
	s.Apply(RevealAt(1, 1))
	board := s.Board()

	out := s.Apply(Restart())

	assert.Empty(t, out.Changed)
	assert.Same(t, board, s.Board())
	assert.Equal(t, Revealed(1), stateAt(t, s, 1, 1))
}

func TestWinWithFlaggedAndCoveredMines(t *testing.T) {
	s := newTestSession(t, 4, 4, Point{0, 0}, Point{3, 3})
	s.Apply(FlagAt(0, 0))

	out := s.Apply(RevealAt(2, 0))
	require.Equal(t, Ended, out.Phase)
	assert.True(t, out.Won)

	for _, c := range s.Board().All() {
		if c.Mine {
			assert.Equal(t, Exploded, c.State)
		} else {
			assert.True(t, c.State.IsRevealed(), "cell %s is %v", c.Point, c.State)
		}
	}
}

func TestLossDisclosureLeavesSafeCellsAlone(t *testing.T) {
	s := newTestSession(t, 5, 5, Point{0, 0}, Point{4, 4}, Point{4, 0})
	s.Apply(FlagAt(4, 4))
	s.Apply(FlagAt(2, 2)) // wrong flag
	s.Apply(RevealAt(0, 4))
	before := s.Board().Grid()

	out := s.Apply(RevealAt(0, 0))
	require.Equal(t, Ended, out.Phase)
	require.False(t, out.Won)

	after := s.Board().Grid()
	for p, c := range s.Board().All() {
		i := s.Board().Dims().Index(p)
		if c.Mine {
			assert.Equal(t, Exploded, after[i])
		} else {
			assert.Equal(t, before[i], after[i], "safe cell %s changed", p)
		}
	}
	assert.Len(t, out.Changed, 3)
}

func TestMinesOnlyBoard(t *testing.T) {
	s, err := NewSession(GameParams{Width: 2, Height: 2, MineCount: 10}, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, s.Board().MineCount())

	s.Apply(FlagAt(0, 0))
	out := s.Apply(RevealAt(0, 0))
	assert.Empty(t, out.Changed)
	assert.Equal(t, Playing, out.Phase, "a no-op reveal must not win an all-mine board")

	out = s.Apply(RevealAt(1, 1))
	assert.Equal(t, Ended, out.Phase)
	assert.False(t, out.Won)
}

func TestEmptyBoardIsWonInOneMove(t *testing.T) {
	s := newTestSession(t, 6, 5)

	out := s.Apply(RevealAt(3, 3))

	assert.Equal(t, Ended, out.Phase)
	assert.True(t, out.Won)
	assert.Len(t, out.Changed, 30)
	for _, c := range s.Board().All() {
		assert.Equal(t, Revealed(0), c.State)
	}
}

func TestSameSeedSameGame(t *testing.T) {
	params := GameParams{Width: 16, Height: 16, MineCount: 40}
	a, err := NewSession(params, SeededRand("replay"))
	require.NoError(t, err)
	b, err := NewSession(params, SeededRand("replay"))
	require.NoError(t, err)

	cmds := []Command{RevealAt(8, 8), FlagAt(0, 0), RevealAt(3, 12), RevealAt(15, 1)}
	for _, cmd := range cmds {
		oa, ob := a.Apply(cmd), b.Apply(cmd)
		assert.Equal(t, oa, ob)
	}
	assert.Equal(t, a.Board().Grid(), b.Board().Grid())
}

func TestPhaseAndCommandStrings(t *testing.T) {
	assert.Equal(t, "playing", Playing.String())
	text, err := Ended.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "ended", string(text))
	assert.Equal(t, "reveal (1, 2)", RevealAt(1, 2).String())
	assert.Equal(t, "restart", Restart().String())
}

func TestZeroCommandPolls(t *testing.T) {
	s := newTestSession(t, 3, 3, Point{2, 2})
	out := s.Apply(Command{})
	assert.Empty(t, out.Changed)
	assert.Equal(t, Playing, out.Phase)
	assert.Equal(t, Covered, stateAt(t, s, 0, 0))
}

func TestOutcomeMerge(t *testing.T) {
	s := newTestSession(t, 3, 3, Point{2, 2})

	out := s.Apply(FlagAt(0, 0))
	out = out.Merge(s.Apply(FlagAt(0, 0)))
	out = out.Merge(s.Apply(RevealAt(1, 1)))

	assert.Equal(t, []Change{
		{Point{0, 0}, Covered},
		{Point{1, 1}, Revealed(1)},
	}, out.Changed)
	assert.Equal(t, Playing, out.Phase)

	out = out.Merge(s.Apply(RevealAt(2, 2)))
	assert.Equal(t, Ended, out.Phase)
	assert.False(t, out.Won)
	assert.Len(t, out.Changed, 3)
}
