// Package game is the rules engine: an immutable playfield, pieces with
// table-driven wall kicks, endless piece queues and the TetrisSim snapshot
// that ties them together. Nothing here mutates a value after it is built.
package game

// Position is a cell coordinate. Row 0 is the floor and rows grow upward;
// columns grow to the right.
type Position struct {
	Row int
	Col int
}

// Common single-step deltas for MovePiece.
var (
	Left  = Position{Row: 0, Col: -1}
	Right = Position{Row: 0, Col: 1}
	Down  = Position{Row: -1, Col: 0}
	Up    = Position{Row: 1, Col: 0}
)

func (p Position) Add(d Position) Position {
	return Position{Row: p.Row + d.Row, Col: p.Col + d.Col}
}

type Kind uint8

const (
	KindNone Kind = iota
	KindI
	KindO
	KindT
	KindS
	KindZ
	KindJ
	KindL
)

var kindNames = [...]string{"-", "I", "O", "T", "S", "Z", "J", "L"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "?"
}

// MatrixBlock is one occupied cell, tagged with the kind that put it there.
type MatrixBlock struct {
	Pos  Position
	Kind Kind
}
