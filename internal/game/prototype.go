package game

import "fmt"

const rotationStates = 4

// PiecePrototype is the static definition of a shape family. Prototypes are
// shared by pointer and never modified after construction.
type PiecePrototype struct {
	kind   Kind
	states [rotationStates][]Position
	kicks  KickTable
}

func (pp *PiecePrototype) Kind() Kind {
	return pp.kind
}

// Offsets returns the cell offsets of the given rotation state.
func (pp *PiecePrototype) Offsets(rotation int) []Position {
	return pp.states[normalizeRotation(rotation)]
}

func (pp *PiecePrototype) String() string {
	return pp.kind.String()
}

// Transition is a rotation from one state index to another.
type Transition struct {
	From int
	To   int
}

// KickTable lists the origin offsets tried, in order, for each rotation
// transition. The first entry is always the zero offset.
type KickTable map[Transition][]Position

var noKick = []Position{{}}

func (kt KickTable) offsets(from, to int) []Position {
	if o, ok := kt[Transition{From: from, To: to}]; ok && len(o) > 0 {
		return o
	}
	return noKick
}

// spawnLayouts holds each shape in its spawn orientation, top row first, inside
// its rotation box.
var spawnLayouts = map[Kind][]string{
	KindI: {
		"....",
		"####",
		"....",
		"....",
	},
	KindO: {
		"##",
		"##",
	},
	KindT: {
		".#.",
		"###",
		"...",
	},
	KindS: {
		".##",
		"##.",
		"...",
	},
	KindZ: {
		"##.",
		".##",
		"...",
	},
	KindJ: {
		"#..",
		"###",
		"...",
	},
	KindL: {
		"..#",
		"###",
		"...",
	},
}

// spawnWidth is the column span every spawn orientation is centred in.
const spawnWidth = 4

// CanonicalOrder is the order of kinds in a PieceSet.
var CanonicalOrder = []Kind{KindI, KindO, KindT, KindS, KindZ, KindJ, KindL}

func newPrototype(kind Kind, kicks KickTable) *PiecePrototype {
	layout := spawnLayouts[kind]
	n := len(layout)

	pp := &PiecePrototype{kind: kind, kicks: kicks}
	var cells []Position
	for y, line := range layout {
		for x, ch := range line {
			if ch == '#' {
				cells = append(cells, Position{Row: n - 1 - y, Col: x})
			}
		}
	}
	pp.states[0] = cells

	// Clockwise quarter turn inside an n x n box: (r, c) -> (n-1-c, r).
	for s := 1; s < rotationStates; s++ {
		prev := pp.states[s-1]
		next := make([]Position, len(prev))
		for i, c := range prev {
			next[i] = Position{Row: n - 1 - c.Col, Col: c.Row}
		}
		pp.states[s] = next
	}

	// Move the whole box so the spawn orientation rests on the origin row and
	// sits centred in spawnWidth columns. All states move together.
	shift := spawnShift(pp.states[0])
	for s := range pp.states {
		for i := range pp.states[s] {
			pp.states[s][i] = pp.states[s][i].Add(shift)
		}
	}
	return pp
}

func spawnShift(cells []Position) Position {
	minRow, minCol, maxCol := cells[0].Row, cells[0].Col, cells[0].Col
	for _, c := range cells {
		minRow = min(minRow, c.Row)
		minCol, maxCol = min(minCol, c.Col), max(maxCol, c.Col)
	}
	width := maxCol - minCol + 1
	return Position{Row: -minRow, Col: (spawnWidth-width)/2 - minCol}
}

// PieceSet is the seven prototypes of one rotation system, in CanonicalOrder.
type PieceSet []*PiecePrototype

// ByKind returns the prototype for kind, or nil.
func (ps PieceSet) ByKind(kind Kind) *PiecePrototype {
	for _, pp := range ps {
		if pp.kind == kind {
			return pp
		}
	}
	return nil
}

// RotationSystem assigns a kick table to each kind.
type RotationSystem struct {
	Name   string
	Kicks  map[Kind]KickTable
	Others KickTable
}

func (rs RotationSystem) tableFor(kind Kind) KickTable {
	if kt, ok := rs.Kicks[kind]; ok {
		return kt
	}
	return rs.Others
}

// Prototypes builds a fresh PieceSet for the rotation system. Prototypes from
// different calls never compare equal.
func (rs RotationSystem) Prototypes() PieceSet {
	set := make(PieceSet, len(CanonicalOrder))
	for i, k := range CanonicalOrder {
		set[i] = newPrototype(k, rs.tableFor(k))
	}
	return set
}

var rotationSystems = map[string]RotationSystem{
	"srs":     SRS,
	"classic": Classic,
}

// LookupRotationSystem resolves a rotation system by its config name.
func LookupRotationSystem(name string) (RotationSystem, error) {
	rs, ok := rotationSystems[name]
	if !ok {
		return RotationSystem{}, fmt.Errorf("unknown rotation system %q", name)
	}
	return rs, nil
}

// Standard is the SRS piece set used when nothing else is configured.
var Standard = SRS.Prototypes()
