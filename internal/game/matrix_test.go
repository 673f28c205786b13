package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWidth = 10

var testSpawn = Position{Row: 18, Col: 3}

func emptyMatrix() *Matrix {
	return NewMatrix(testWidth, testSpawn)
}

// fillRow sets every column of row except the listed ones.
func fillRow(m *Matrix, row int, except ...int) *Matrix {
	skip := make(map[int]bool, len(except))
	for _, c := range except {
		skip[c] = true
	}
	var blocks []MatrixBlock
	for c := 0; c < m.Width(); c++ {
		if !skip[c] {
			blocks = append(blocks, MatrixBlock{Pos: Position{Row: row, Col: c}, Kind: KindZ})
		}
	}
	return m.WithBlocks(blocks...)
}

// verticalI is an I piece standing in column col with its lowest cell on row.
func verticalI(t *testing.T, row, col int) *Piece {
	t.Helper()
	return NewPiece(protoOf(t, KindI), 1, Position{Row: row + 2, Col: col - 2})
}

func TestIsPieceValid(t *testing.T) {
	m := emptyMatrix().WithBlocks(MatrixBlock{Pos: Position{Row: 0, Col: 4}, Kind: KindJ})
	tp := protoOf(t, KindT)

	tests := []struct {
		name     string
		origin   Position
		expected bool
	}{
		{"open space", Position{Row: 5, Col: 3}, true},
		{"resting on floor", Position{Row: 0, Col: 0}, true},
		{"through the floor", Position{Row: -1, Col: 0}, false},
		{"through left wall", Position{Row: 5, Col: -1}, false},
		{"against left wall", Position{Row: 5, Col: 0}, true},
		{"against right wall", Position{Row: 5, Col: 7}, true},
		{"through right wall", Position{Row: 5, Col: 8}, false},
		{"on a locked cell", Position{Row: 0, Col: 3}, false},
		{"far above the field", Position{Row: 500, Col: 3}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, m.IsPieceValid(NewPiece(tp, 0, tc.origin)))
		})
	}

	assert.False(t, m.IsPieceValid(nil))
}

func TestIsPieceValidMatchesCellRule(t *testing.T) {
	m := emptyMatrix().WithBlocks(
		MatrixBlock{Pos: Position{Row: 0, Col: 0}, Kind: KindJ},
		MatrixBlock{Pos: Position{Row: 0, Col: 9}, Kind: KindJ},
		MatrixBlock{Pos: Position{Row: 2, Col: 5}, Kind: KindS},
		MatrixBlock{Pos: Position{Row: 4, Col: 1}, Kind: KindT},
	)
	locked := make(map[Position]bool)
	for _, b := range m.Blocks() {
		locked[b.Pos] = true
	}

	for _, pp := range Standard {
		for r := 0; r < 4; r++ {
			for row := -4; row < 8; row++ {
				for col := -4; col < testWidth+2; col++ {
					p := NewPiece(pp, r, Position{Row: row, Col: col})
					expected := true
					for _, c := range p.Cells() {
						if c.Col < 0 || c.Col >= testWidth || c.Row < 0 || locked[c] {
							expected = false
						}
					}
					if m.IsPieceValid(p) != expected {
						t.Fatalf("%s rot %d at %v: IsPieceValid = %v, expected %v", pp, r, p.Origin(), !expected, expected)
					}
				}
			}
		}
	}
}

func TestLockPieceWithoutClear(t *testing.T) {
	m := emptyMatrix()
	p := NewPiece(protoOf(t, KindT), 0, Position{Row: 0, Col: 3})

	res := m.LockPiece(p)

	assert.Equal(t, 0, res.Cleared())
	assert.ElementsMatch(t, p.MatrixBlocks(), res.Matrix.Blocks())
	assert.Empty(t, m.Blocks(), "original matrix must not change")
	assert.Equal(t, 2, res.Matrix.Height())
	assert.Equal(t, KindT, res.Matrix.KindAt(Position{Row: 1, Col: 4}))
}

func TestLockPieceClearsOneRow(t *testing.T) {
	m := fillRow(emptyMatrix(), 0, 9)
	m = m.WithBlocks(MatrixBlock{Pos: Position{Row: 1, Col: 0}, Kind: KindO})

	res := m.LockPiece(verticalI(t, 0, 9))

	assert.Equal(t, []int{0}, res.ClearedRows)
	assert.ElementsMatch(t, []MatrixBlock{
		{Pos: Position{Row: 0, Col: 0}, Kind: KindO},
		{Pos: Position{Row: 0, Col: 9}, Kind: KindI},
		{Pos: Position{Row: 1, Col: 9}, Kind: KindI},
		{Pos: Position{Row: 2, Col: 9}, Kind: KindI},
	}, res.Matrix.Blocks())
}

func TestLockPieceClearsSeparatedRowsTogether(t *testing.T) {
	m := fillRow(emptyMatrix(), 0, 9)
	m = fillRow(m, 1, 8, 9)
	m = fillRow(m, 2, 9)

	res := m.LockPiece(verticalI(t, 0, 9))

	require.Equal(t, []int{0, 2}, res.ClearedRows)
	out := res.Matrix
	assert.Equal(t, 2, out.Height())
	for c := 0; c < 8; c++ {
		assert.Equal(t, KindZ, out.KindAt(Position{Row: 0, Col: c}), "old row 1 drops to 0")
	}
	assert.Equal(t, KindNone, out.KindAt(Position{Row: 0, Col: 8}))
	assert.Equal(t, KindI, out.KindAt(Position{Row: 0, Col: 9}))
	assert.Equal(t, KindI, out.KindAt(Position{Row: 1, Col: 9}), "old row 3 drops to 1")
	assert.Len(t, out.Blocks(), 10)
}

func TestLockPieceClearsFourRows(t *testing.T) {
	m := emptyMatrix()
	for r := 0; r < 4; r++ {
		m = fillRow(m, r, 9)
	}

	res := m.LockPiece(verticalI(t, 0, 9))

	assert.Equal(t, []int{0, 1, 2, 3}, res.ClearedRows)
	assert.Empty(t, res.Matrix.Blocks())
	assert.Equal(t, 0, res.Matrix.Height())
}

func TestLockPieceLeavesRowsBelowAlone(t *testing.T) {
	m := fillRow(emptyMatrix(), 0, 3)
	m = fillRow(m, 1, 9)
	m = m.WithBlocks(MatrixBlock{Pos: Position{Row: 2, Col: 5}, Kind: KindS})

	res := m.LockPiece(verticalI(t, 1, 9))

	assert.Equal(t, []int{1}, res.ClearedRows)
	assert.Same(t, &m.rows[0][0], &res.Matrix.rows[0][0], "row 0 is shared, not copied")
	assert.Equal(t, KindS, res.Matrix.KindAt(Position{Row: 1, Col: 5}))
	assert.Equal(t, KindI, res.Matrix.KindAt(Position{Row: 1, Col: 9}))
}

func TestLockPieceOutsideGridIsNoOp(t *testing.T) {
	m := emptyMatrix()
	p := NewPiece(protoOf(t, KindO), 0, Position{Row: -10, Col: -10})

	res := m.LockPiece(p)

	assert.Same(t, m, res.Matrix)
	assert.Zero(t, res.Cleared())
}

func TestWithBlocksIgnoresOutOfRange(t *testing.T) {
	m := emptyMatrix().WithBlocks(
		MatrixBlock{Pos: Position{Row: -1, Col: 0}, Kind: KindI},
		MatrixBlock{Pos: Position{Row: 0, Col: 10}, Kind: KindI},
		MatrixBlock{Pos: Position{Row: 3, Col: 2}, Kind: KindL},
	)

	assert.Equal(t, []MatrixBlock{{Pos: Position{Row: 3, Col: 2}, Kind: KindL}}, m.Blocks())
	assert.Equal(t, 4, m.Height())
	assert.Equal(t, KindNone, m.KindAt(Position{Row: 1, Col: 2}))
}

func TestKindAtOutOfRange(t *testing.T) {
	m := fillRow(emptyMatrix(), 0)
	assert.Equal(t, KindNone, m.KindAt(Position{Row: -1, Col: 0}))
	assert.Equal(t, KindNone, m.KindAt(Position{Row: 0, Col: -1}))
	assert.Equal(t, KindNone, m.KindAt(Position{Row: 0, Col: 10}))
	assert.Equal(t, KindNone, m.KindAt(Position{Row: 40, Col: 0}))
}
