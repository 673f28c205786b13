package game

// k builds a kick offset from guideline (x, y) notation, y pointing up.
func k(x, y int) Position {
	return Position{Row: y, Col: x}
}

// srsJLSTZ is the guideline kick table shared by J, L, S, T and Z.
var srsJLSTZ = KickTable{
	{0, 1}: {k(0, 0), k(-1, 0), k(-1, 1), k(0, -2), k(-1, -2)},
	{1, 0}: {k(0, 0), k(1, 0), k(1, -1), k(0, 2), k(1, 2)},
	{1, 2}: {k(0, 0), k(1, 0), k(1, -1), k(0, 2), k(1, 2)},
	{2, 1}: {k(0, 0), k(-1, 0), k(-1, 1), k(0, -2), k(-1, -2)},
	{2, 3}: {k(0, 0), k(1, 0), k(1, 1), k(0, -2), k(1, -2)},
	{3, 2}: {k(0, 0), k(-1, 0), k(-1, -1), k(0, 2), k(-1, 2)},
	{3, 0}: {k(0, 0), k(-1, 0), k(-1, -1), k(0, 2), k(-1, 2)},
	{0, 3}: {k(0, 0), k(1, 0), k(1, 1), k(0, -2), k(1, -2)},
}

var srsI = KickTable{
	{0, 1}: {k(0, 0), k(-2, 0), k(1, 0), k(-2, -1), k(1, 2)},
	{1, 0}: {k(0, 0), k(2, 0), k(-1, 0), k(2, 1), k(-1, -2)},
	{1, 2}: {k(0, 0), k(-1, 0), k(2, 0), k(-1, 2), k(2, -1)},
	{2, 1}: {k(0, 0), k(1, 0), k(-2, 0), k(1, -2), k(-2, 1)},
	{2, 3}: {k(0, 0), k(2, 0), k(-1, 0), k(2, 1), k(-1, -2)},
	{3, 2}: {k(0, 0), k(-2, 0), k(1, 0), k(-2, -1), k(1, 2)},
	{3, 0}: {k(0, 0), k(1, 0), k(-2, 0), k(1, -2), k(-2, 1)},
	{0, 3}: {k(0, 0), k(-1, 0), k(2, 0), k(-1, 2), k(2, -1)},
}

// O never kicks.
var stationary = KickTable{}

// SRS is the guideline Super Rotation System.
var SRS = RotationSystem{
	Name: "srs",
	Kicks: map[Kind]KickTable{
		KindI: srsI,
		KindO: stationary,
	},
	Others: srsJLSTZ,
}

func horizontalKicks() KickTable {
	kt := KickTable{}
	offsets := []Position{k(0, 0), k(-1, 0), k(1, 0), k(-2, 0), k(2, 0)}
	for from := 0; from < rotationStates; from++ {
		kt[Transition{From: from, To: (from + 1) % rotationStates}] = offsets
		kt[Transition{From: from, To: (from + 3) % rotationStates}] = offsets
	}
	return kt
}

// Classic only nudges the piece sideways, one then two columns, left first.
var Classic = RotationSystem{
	Name: "classic",
	Kicks: map[Kind]KickTable{
		KindO: stationary,
	},
	Others: horizontalKicks(),
}
