package world

// BlockType identifies a registered block kind. Zero is air.
type BlockType uint16

const BlockTypeAir BlockType = 0

// RGB is a raw 24-bit voxel color, used by worlds that carry per-voxel
// colors instead of block ids.
type RGB struct {
	R, G, B uint8
}

// Voxel is the value stored per cell. A voxel is solid iff its Block is
// non-air; Color is only meaningful on solid voxels in color-mode worlds.
type Voxel struct {
	Block BlockType
	Color RGB
}

// Empty is the value of every cell in a missing chunk.
var Empty = Voxel{}

// Solid reports whether the voxel occupies its cell.
func (v Voxel) Solid() bool {
	return v.Block != BlockTypeAir
}

// Face identifies one of the six axis-aligned sides of a voxel.
type Face int

const (
	FaceNorth  Face = iota // +Z
	FaceSouth              // -Z
	FaceEast               // +X
	FaceWest               // -X
	FaceTop                // +Y
	FaceBottom             // -Y
)

// Normal returns the outward unit normal of the face as integer components.
func (f Face) Normal() (x, y, z int) {
	switch f {
	case FaceNorth:
		return 0, 0, 1
	case FaceSouth:
		return 0, 0, -1
	case FaceEast:
		return 1, 0, 0
	case FaceWest:
		return -1, 0, 0
	case FaceTop:
		return 0, 1, 0
	case FaceBottom:
		return 0, -1, 0
	default:
		return 0, 0, 0
	}
}

func (f Face) String() string {
	switch f {
	case FaceNorth:
		return "north"
	case FaceSouth:
		return "south"
	case FaceEast:
		return "east"
	case FaceWest:
		return "west"
	case FaceTop:
		return "top"
	case FaceBottom:
		return "bottom"
	default:
		return "unknown"
	}
}
