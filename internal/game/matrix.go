package game

// Matrix is the playfield: a fixed-width grid of locked cells with no upper
// bound on height. A Matrix is never modified once built; rows that a lock
// does not touch are shared with the matrix it was derived from.
type Matrix struct {
	width int
	spawn Position
	// rows[0] is the floor. Trailing rows are never empty.
	rows [][]Kind
}

func NewMatrix(width int, spawn Position) *Matrix {
	return &Matrix{width: width, spawn: spawn}
}

func (m *Matrix) Width() int         { return m.width }
func (m *Matrix) SpawnPos() Position { return m.spawn }

// Height is the number of rows holding at least one locked cell, counting
// the empty rows beneath the highest one.
func (m *Matrix) Height() int {
	return len(m.rows)
}

// KindAt returns the kind locked at pos, or KindNone.
func (m *Matrix) KindAt(pos Position) Kind {
	if pos.Row < 0 || pos.Row >= len(m.rows) || pos.Col < 0 || pos.Col >= m.width {
		return KindNone
	}
	return m.rows[pos.Row][pos.Col]
}

func (m *Matrix) inBounds(pos Position) bool {
	return pos.Row >= 0 && pos.Col >= 0 && pos.Col < m.width
}

// IsPieceValid reports whether every cell of piece is inside the side walls,
// at or above the floor, and free.
func (m *Matrix) IsPieceValid(piece *Piece) bool {
	if piece == nil {
		return false
	}
	for _, off := range piece.proto.states[piece.rotation] {
		pos := piece.origin.Add(off)
		if !m.inBounds(pos) || m.KindAt(pos) != KindNone {
			return false
		}
	}
	return true
}

// Blocks returns every locked cell, bottom row first, left to right.
func (m *Matrix) Blocks() []MatrixBlock {
	var blocks []MatrixBlock
	for r, row := range m.rows {
		for c, k := range row {
			if k != KindNone {
				blocks = append(blocks, MatrixBlock{Pos: Position{Row: r, Col: c}, Kind: k})
			}
		}
	}
	return blocks
}

// LockResult is the outcome of Matrix.LockPiece.
type LockResult struct {
	Matrix *Matrix
	// ClearedRows holds the indices, ascending, of the rows that were full
	// after the lock, measured before they were removed.
	ClearedRows []int
}

func (lr LockResult) Cleared() int {
	return len(lr.ClearedRows)
}

// LockPiece merges the piece into the grid and removes every row that is
// full afterwards, all at once. Cells outside the grid are dropped.
func (m *Matrix) LockPiece(piece *Piece) LockResult {
	next, written := m.place(piece.MatrixBlocks())
	if !written {
		return LockResult{Matrix: m}
	}
	cleared := next.fullRows()
	if len(cleared) > 0 {
		next = next.withoutRows(cleared)
	}
	return LockResult{Matrix: next, ClearedRows: cleared}
}

// WithBlocks returns a matrix with the given cells set. Cells outside the
// grid are ignored and no rows are cleared.
func (m *Matrix) WithBlocks(blocks ...MatrixBlock) *Matrix {
	next, _ := m.place(blocks)
	return next
}

func (m *Matrix) place(blocks []MatrixBlock) (*Matrix, bool) {
	top := len(m.rows)
	for _, b := range blocks {
		if m.inBounds(b.Pos) && b.Kind != KindNone && b.Pos.Row+1 > top {
			top = b.Pos.Row + 1
		}
	}

	rows := make([][]Kind, top)
	copy(rows, m.rows)
	if top > len(m.rows) {
		// New rows start out sharing one blank row until written.
		blank := make([]Kind, m.width)
		for r := len(m.rows); r < top; r++ {
			rows[r] = blank
		}
	}
	copied := make(map[int]bool)
	written := false
	for _, b := range blocks {
		if !m.inBounds(b.Pos) || b.Kind == KindNone {
			continue
		}
		r := b.Pos.Row
		if !copied[r] {
			row := make([]Kind, m.width)
			copy(row, rows[r])
			rows[r] = row
			copied[r] = true
		}
		rows[r][b.Pos.Col] = b.Kind
		written = true
	}
	if !written {
		return m, false
	}
	return &Matrix{width: m.width, spawn: m.spawn, rows: rows}, true
}

func (m *Matrix) fullRows() []int {
	var full []int
	for r, row := range m.rows {
		filled := true
		for _, k := range row {
			if k == KindNone {
				filled = false
				break
			}
		}
		if filled {
			full = append(full, r)
		}
	}
	return full
}

// withoutRows drops the given ascending row indices; the rows above fall
// into the gap in their original order.
func (m *Matrix) withoutRows(drop []int) *Matrix {
	rows := make([][]Kind, 0, len(m.rows)-len(drop))
	i := 0
	for r, row := range m.rows {
		if i < len(drop) && drop[i] == r {
			i++
			continue
		}
		rows = append(rows, row)
	}
	return &Matrix{width: m.width, spawn: m.spawn, rows: trimEmpty(rows)}
}

func trimEmpty(rows [][]Kind) [][]Kind {
	for len(rows) > 0 && isEmptyRow(rows[len(rows)-1]) {
		rows = rows[:len(rows)-1]
	}
	return rows
}

func isEmptyRow(row []Kind) bool {
	for _, k := range row {
		if k != KindNone {
			return false
		}
	}
	return true
}
