package game

// Piece is a prototype placed on the board at a rotation and origin. It is
// immutable: every operation returns a new Piece or the receiver itself.
// A Piece carries no validity guarantee; ask the Matrix.
type Piece struct {
	proto    *PiecePrototype
	rotation int
	origin   Position
}

func NewPiece(proto *PiecePrototype, rotation int, origin Position) *Piece {
	return &Piece{
		proto:    proto,
		rotation: normalizeRotation(rotation),
		origin:   origin,
	}
}

func normalizeRotation(r int) int {
	r %= rotationStates
	if r < 0 {
		r += rotationStates
	}
	return r
}

func (p *Piece) Prototype() *PiecePrototype { return p.proto }
func (p *Piece) Kind() Kind                 { return p.proto.kind }
func (p *Piece) Rotation() int              { return p.rotation }
func (p *Piece) Origin() Position           { return p.origin }

// Translated returns the piece moved by delta. No validity check is made.
func (p *Piece) Translated(delta Position) *Piece {
	return &Piece{proto: p.proto, rotation: p.rotation, origin: p.origin.Add(delta)}
}

// RotatedCW returns the first kick candidate of the clockwise rotation that
// isValid accepts, or p when none does.
func (p *Piece) RotatedCW(isValid func(*Piece) bool) *Piece {
	return p.rotated(1, isValid)
}

// RotatedCCW is the counter-clockwise counterpart of RotatedCW.
func (p *Piece) RotatedCCW(isValid func(*Piece) bool) *Piece {
	return p.rotated(-1, isValid)
}

func (p *Piece) rotated(dir int, isValid func(*Piece) bool) *Piece {
	to := normalizeRotation(p.rotation + dir)
	for _, off := range p.proto.kicks.offsets(p.rotation, to) {
		candidate := &Piece{proto: p.proto, rotation: to, origin: p.origin.Add(off)}
		if isValid(candidate) {
			return candidate
		}
	}
	return p
}

// Cells returns the absolute board cells the piece occupies.
func (p *Piece) Cells() []Position {
	offsets := p.proto.states[p.rotation]
	cells := make([]Position, len(offsets))
	for i, off := range offsets {
		cells[i] = p.origin.Add(off)
	}
	return cells
}

func (p *Piece) MatrixBlocks() []MatrixBlock {
	offsets := p.proto.states[p.rotation]
	blocks := make([]MatrixBlock, len(offsets))
	for i, off := range offsets {
		blocks[i] = MatrixBlock{Pos: p.origin.Add(off), Kind: p.proto.kind}
	}
	return blocks
}
