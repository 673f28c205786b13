package game

// TetrisSim is one immutable snapshot of a game: the matrix, the falling
// piece, the held prototype (nil when the hold slot is empty) and the queue.
//
// Every method returns a snapshot. When nothing changes the receiver itself
// is returned, so callers can detect a rejected action, or skip redrawing,
// by comparing pointers.
type TetrisSim struct {
	matrix  *Matrix
	falling *Piece
	held    *PiecePrototype
	queue   Generator
}

// NewTetrisSim spawns the queue's first prototype on an otherwise fresh game.
func NewTetrisSim(matrix *Matrix, queue Generator) *TetrisSim {
	return &TetrisSim{
		matrix:  matrix,
		falling: NewPiece(queue.Get(), 0, matrix.SpawnPos()),
		queue:   queue.Next(),
	}
}

func (s *TetrisSim) Matrix() *Matrix            { return s.matrix }
func (s *TetrisSim) FallingPiece() *Piece       { return s.falling }
func (s *TetrisSim) HeldPiece() *PiecePrototype { return s.held }
func (s *TetrisSim) Queue() Generator           { return s.queue }

func (s *TetrisSim) with() *TetrisSim {
	c := *s
	return &c
}

func (s *TetrisSim) SetMatrix(m *Matrix) *TetrisSim {
	if m == s.matrix {
		return s
	}
	next := s.with()
	next.matrix = m
	return next
}

func (s *TetrisSim) SetPiece(p *Piece) *TetrisSim {
	if p == s.falling {
		return s
	}
	next := s.with()
	next.falling = p
	return next
}

// SetValidPiece is SetPiece that also refuses pieces the matrix rejects.
func (s *TetrisSim) SetValidPiece(p *Piece) *TetrisSim {
	if p == s.falling || !s.matrix.IsPieceValid(p) {
		return s
	}
	return s.SetPiece(p)
}

func (s *TetrisSim) SetHeldPiece(pp *PiecePrototype) *TetrisSim {
	if pp == s.held {
		return s
	}
	next := s.with()
	next.held = pp
	return next
}

func (s *TetrisSim) SetQueue(q Generator) *TetrisSim {
	if q == s.queue {
		return s
	}
	next := s.with()
	next.queue = q
	return next
}

func (s *TetrisSim) MovePiece(delta Position) *TetrisSim {
	return s.SetValidPiece(s.falling.Translated(delta))
}

func (s *TetrisSim) HardDrop() *TetrisSim {
	return s.SetValidPiece(GhostPiece(s.falling, s.matrix))
}

func (s *TetrisSim) RotateCW() *TetrisSim {
	return s.SetValidPiece(s.falling.RotatedCW(s.matrix.IsPieceValid))
}

func (s *TetrisSim) RotateCCW() *TetrisSim {
	return s.SetValidPiece(s.falling.RotatedCCW(s.matrix.IsPieceValid))
}

// SpawnPiece puts a fresh piece of pp at the spawn position. It skips the
// validity check on purpose: a spawn onto locked cells is how game over
// shows up in the state.
func (s *TetrisSim) SpawnPiece(pp *PiecePrototype) *TetrisSim {
	return s.SetPiece(NewPiece(pp, 0, s.matrix.SpawnPos()))
}

func (s *TetrisSim) SpawnNext() *TetrisSim {
	return s.SpawnPiece(s.queue.Get()).SetQueue(s.queue.Next())
}

func (s *TetrisSim) LockPiece() *TetrisSim {
	next, _ := s.LockPieceReport()
	return next
}

// LockPieceReport locks the falling piece and also returns what the lock
// did to the matrix.
func (s *TetrisSim) LockPieceReport() (*TetrisSim, LockResult) {
	res := s.matrix.LockPiece(s.falling)
	return s.SetMatrix(res.Matrix), res
}

func (s *TetrisSim) LockPieceAndSpawnNext() *TetrisSim {
	return s.LockPiece().SpawnNext()
}

func (s *TetrisSim) LockPieceAndSpawnNextReport() (*TetrisSim, LockResult) {
	locked, res := s.LockPieceReport()
	return locked.SpawnNext(), res
}

// Swap holds the falling piece's prototype. The first hold of a game brings
// in the next queued piece; later holds bring back the held one and leave
// the queue alone.
func (s *TetrisSim) Swap() *TetrisSim {
	held := s.held
	next := s.SetHeldPiece(s.falling.Prototype())
	if held == nil {
		return next.SpawnNext()
	}
	return next.SpawnPiece(held)
}

// IsGameOver reports whether the falling piece overlaps the matrix, which
// after a spawn means the stack has topped out.
func (s *TetrisSim) IsGameOver() bool {
	return !s.matrix.IsPieceValid(s.falling)
}

// Ghost is where the falling piece would land on a hard drop.
func (s *TetrisSim) Ghost() *Piece {
	return GhostPiece(s.falling, s.matrix)
}

// Preview lists the next n queued prototypes.
func (s *TetrisSim) Preview(n int) []*PiecePrototype {
	return Take(s.queue, n)
}

// GhostPiece drops piece straight down until the next row would be invalid.
// It returns piece itself when it cannot move.
func GhostPiece(piece *Piece, matrix *Matrix) *Piece {
	cur := piece
	for {
		below := cur.Translated(Down)
		if !matrix.IsPieceValid(below) {
			return cur
		}
		cur = below
	}
}
