// Package scoring keeps score, cleared lines and level for one game. It
// reads lock results from the engine but never touches engine state.
package scoring

import "time"

var lineScores = map[int]int{
	1: 100,
	2: 300,
	3: 500,
	4: 800,
}

var dropSpeeds = []time.Duration{
	800 * time.Millisecond,
	720 * time.Millisecond,
	630 * time.Millisecond,
	550 * time.Millisecond,
	470 * time.Millisecond,
	380 * time.Millisecond,
	300 * time.Millisecond,
	220 * time.Millisecond,
	130 * time.Millisecond,
	100 * time.Millisecond,
	80 * time.Millisecond,
	80 * time.Millisecond,
	80 * time.Millisecond,
	70 * time.Millisecond,
	70 * time.Millisecond,
	70 * time.Millisecond,
	50 * time.Millisecond,
	50 * time.Millisecond,
	50 * time.Millisecond,
	30 * time.Millisecond,
}

// Tally is a value; every method returns an updated copy.
type Tally struct {
	Score int
	Lines int
	Level int

	startLevel int
}

func NewTally(startLevel int) Tally {
	if startLevel < 1 {
		startLevel = 1
	}
	return Tally{Level: startLevel, startLevel: startLevel}
}

// Cleared accounts for n rows removed by a single lock.
func (t Tally) Cleared(n int) Tally {
	if n <= 0 {
		return t
	}
	t.Score += lineScores[min(n, 4)] * t.Level
	t.Lines += n
	t.Level = t.Lines/10 + t.startLevel
	return t
}

func (t Tally) HardDropped(rows int) Tally {
	if rows > 0 {
		t.Score += 2 * rows
	}
	return t
}

func (t Tally) SoftDropped() Tally {
	t.Score++
	return t
}

// DropInterval is the gravity period for the current level.
func (t Tally) DropInterval() time.Duration {
	if t.Level < 1 {
		return dropSpeeds[0]
	}
	if t.Level > len(dropSpeeds) {
		return dropSpeeds[len(dropSpeeds)-1]
	}
	return dropSpeeds[t.Level-1]
}
