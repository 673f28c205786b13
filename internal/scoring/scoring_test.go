package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCleared(t *testing.T) {
	tests := []struct {
		name  string
		start int
		lines []int
		score int
		total int
		level int
	}{
		{"single", 1, []int{1}, 100, 1, 1},
		{"double", 1, []int{2}, 300, 2, 1},
		{"triple", 1, []int{3}, 500, 3, 1},
		{"tetris", 1, []int{4}, 800, 4, 1},
		{"nothing cleared", 1, []int{0}, 0, 0, 1},
		{"level multiplies", 3, []int{4}, 2400, 4, 3},
		{"level up after ten lines", 1, []int{4, 4, 2, 1}, 800 + 800 + 300 + 200, 11, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tally := NewTally(tc.start)
			for _, n := range tc.lines {
				tally = tally.Cleared(n)
			}
			assert.Equal(t, tc.score, tally.Score)
			assert.Equal(t, tc.total, tally.Lines)
			assert.Equal(t, tc.level, tally.Level)
		})
	}
}

func TestTallyIsAValue(t *testing.T) {
	a := NewTally(1)
	b := a.Cleared(4)
	assert.Zero(t, a.Score)
	assert.Equal(t, 800, b.Score)
}

func TestDropPoints(t *testing.T) {
	tally := NewTally(1).HardDropped(10).SoftDropped().HardDropped(-3)
	assert.Equal(t, 21, tally.Score)
}

func TestNewTallyClampsLevel(t *testing.T) {
	assert.Equal(t, 1, NewTally(0).Level)
	assert.Equal(t, 1, NewTally(-5).Level)
}

func TestDropInterval(t *testing.T) {
	assert.Equal(t, 800*time.Millisecond, NewTally(1).DropInterval())
	assert.Equal(t, 100*time.Millisecond, NewTally(10).DropInterval())
	assert.Equal(t, 30*time.Millisecond, NewTally(20).DropInterval())
	assert.Equal(t, 30*time.Millisecond, NewTally(99).DropInterval())
	assert.Equal(t, 800*time.Millisecond, Tally{}.DropInterval())
}
