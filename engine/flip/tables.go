package flip

// Corner is a physical storage slot of a page's four corners.
type Corner int

const (
	CornerRightBottom Corner = iota
	CornerRightTop
	CornerLeftTop
	CornerLeftBottom
)

func (c Corner) String() string {
	switch c {
	case CornerRightBottom:
		return "right-bottom"
	case CornerRightTop:
		return "right-top"
	case CornerLeftTop:
		return "left-top"
	case CornerLeftBottom:
		return "left-bottom"
	}
	return "unknown"
}

// CornerRole is the logical part a corner plays relative to the origin
// of the current fold.
type CornerRole int

const (
	RoleOrigin CornerRole = iota
	RoleNext
	RoleDiagonal
	RolePrevious
)

// cornerOrder maps a role to its storage slot, indexed by the corner
// acting as origin.
var cornerOrder = [4][4]Corner{
	CornerRightBottom: {CornerRightBottom, CornerRightTop, CornerLeftTop, CornerLeftBottom},
	CornerRightTop:    {CornerRightTop, CornerRightBottom, CornerLeftBottom, CornerLeftTop},
	CornerLeftTop:     {CornerLeftTop, CornerLeftBottom, CornerRightBottom, CornerRightTop},
	CornerLeftBottom:  {CornerLeftBottom, CornerLeftTop, CornerRightTop, CornerRightBottom},
}

// CornerOf returns the storage slot holding role when origin is the
// origin corner.
func CornerOf(origin Corner, role CornerRole) Corner {
	return cornerOrder[origin][role]
}

// FoldCase classifies where the fold line meets the page border.
type FoldCase int

const (
	// both fold intercepts lie on the origin edges
	FoldWithin FoldCase = iota
	// the Y intercept is past the diagonal edge and clipped to it
	FoldYClipped
	// the X intercept is past the page and clipped to the diagonal side
	FoldXClipped
	// both intercepts are clipped
	FoldBothClipped
	// the fold has lifted the whole page, which shows the second texture
	FoldOutside
)

func (f FoldCase) String() string {
	switch f {
	case FoldWithin:
		return "within"
	case FoldYClipped:
		return "y-clipped"
	case FoldXClipped:
		return "x-clipped"
	case FoldBothClipped:
		return "both-clipped"
	case FoldOutside:
		return "outside"
	}
	return "unknown"
}

// FoldOrder is the emission order of the flat part of a folded page.
// The two fold points are emitted first when FirstCount > 1, then
// Roles[:FirstCount-1] at z 0 with the first texture; the fold points
// again and Roles[FirstCount-1:] follow at z -1 with the second texture.
type FoldOrder struct {
	FirstCount int
	Roles      [4]CornerRole
}

var foldOrders = [5]FoldOrder{
	FoldWithin:      {4, [4]CornerRole{RolePrevious, RoleNext, RoleDiagonal, RoleOrigin}},
	FoldYClipped:    {3, [4]CornerRole{RolePrevious, RoleDiagonal, RoleOrigin, RoleNext}},
	FoldXClipped:    {3, [4]CornerRole{RoleDiagonal, RoleNext, RolePrevious, RoleOrigin}},
	FoldBothClipped: {2, [4]CornerRole{RoleDiagonal, RolePrevious, RoleNext, RoleOrigin}},
	FoldOutside:     {1, [4]CornerRole{RoleOrigin, RoleNext, RolePrevious, RoleDiagonal}},
}

func OrderOf(fold FoldCase) FoldOrder {
	return foldOrders[fold]
}

// HasFoldPoints reports whether the fold points are part of the strip.
func (o FoldOrder) HasFoldPoints() bool {
	return o.FirstCount > 1
}

// FrontRoles are drawn with the first texture.
func (o FoldOrder) FrontRoles() []CornerRole {
	return o.Roles[:o.FirstCount-1]
}

// BackRoles are drawn with the second texture.
func (o FoldOrder) BackRoles() []CornerRole {
	return o.Roles[o.FirstCount-1:]
}
