package geometry

// Piece is one fragment of the cut outline.
//
// Points is the live polygon, mutated by scatter, adaptation and the player.
// OriginalPoints and the Original* fields are snapshots taken at cut time and
// describe the solved placement. len(Points) == len(OriginalPoints) and vertex
// order is preserved by every operation in this module.
type Piece struct {
	Points           []Point `json:"points"`
	OriginalPoints   []Point `json:"originalPoints"`
	Rotation         float64 `json:"rotation"`
	OriginalRotation float64 `json:"originalRotation"`
	X                float64 `json:"x"`
	Y                float64 `json:"y"`
	OriginalX        float64 `json:"originalX"`
	OriginalY        float64 `json:"originalY"`
}

// Center returns the live center of the piece.
func (p Piece) Center() Point { return Point{X: p.X, Y: p.Y} }

// Bounds returns the axis-aligned bounds of the live points.
func (p Piece) Bounds() Bounds { return BoundsOf(p.Points) }

// RotatedBounds returns the bounds of the live points after rotating them
// about the piece center by the piece rotation.
func (p Piece) RotatedBounds() Bounds {
	if p.Rotation == 0 {
		return p.Bounds()
	}
	c := p.Center()
	rotated := make([]Point, len(p.Points))
	for i, pt := range p.Points {
		rotated[i] = Rotate(pt, c, p.Rotation)
	}
	return BoundsOf(rotated)
}

// Clone returns a deep copy of the piece.
func (p Piece) Clone() Piece {
	p.Points = ClonePoints(p.Points)
	p.OriginalPoints = ClonePoints(p.OriginalPoints)
	return p
}

// ClonePieces deep-copies a slice of pieces. A nil slice stays nil.
func ClonePieces(pieces []Piece) []Piece {
	if pieces == nil {
		return nil
	}
	out := make([]Piece, len(pieces))
	for i, p := range pieces {
		out[i] = p.Clone()
	}
	return out
}
