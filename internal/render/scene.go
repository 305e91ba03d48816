package render

import "crystalview/internal/crystal"

// Marker describes how a point is drawn.
type Marker struct {
	Size      float64 `json:"size"`
	Opacity   float64 `json:"opacity"`
	Color     Color   `json:"color"`
	EdgeColor Color   `json:"edge_color,omitempty"`
}

// Font is a title or label font.
type Font struct {
	Size  int    `json:"size"`
	Color string `json:"color,omitempty"`
}

// Point3 is a labeled atom marker in a 3D scene.
type Point3 struct {
	Position     crystal.Vec3 `json:"position"`
	Label        string       `json:"label"`
	TextPosition string       `json:"text_position"`
	Marker       Marker       `json:"marker"`
}

// Segment is a straight line in a 3D scene.
type Segment struct {
	From  crystal.Vec3 `json:"from"`
	To    crystal.Vec3 `json:"to"`
	Color Color        `json:"color"`
	Width float64      `json:"width"`
}

// Length of the segment; zero for self-segments.
func (s Segment) Length() float64 {
	return s.To.Sub(s.From).Norm()
}

type Axis3 struct {
	Title          string `json:"title"`
	ShowBackground bool   `json:"show_background"`
	Background     string `json:"background"`
}

type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	B int `json:"b"`
	T int `json:"t"`
}

type Layout3 struct {
	Title      string `json:"title"`
	TitleFont  Font   `json:"title_font"`
	X          Axis3  `json:"x"`
	Y          Axis3  `json:"y"`
	Z          Axis3  `json:"z"`
	AspectMode string `json:"aspect_mode"`
	Margin     Margin `json:"margin"`
}

// Scene3D is the point-and-edge diagram of a structure.
type Scene3D struct {
	Points   []Point3  `json:"points"`
	Segments []Segment `json:"segments"`
	Layout   Layout3   `json:"layout"`
}

// Point2 is a marker in a 2D scene.
type Point2 struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Label  string  `json:"label"`
	Marker Marker  `json:"marker"`
}

type LegendEntry struct {
	Label string `json:"label"`
	Color Color  `json:"color"`
}

type Grid struct {
	Color string  `json:"color"`
	Style string  `json:"style"`
	Width float64 `json:"width"`
}

type Legend struct {
	Location string     `json:"location"`
	Anchor   [2]float64 `json:"anchor"`
	FontSize int        `json:"font_size"`
}

type Layout2 struct {
	Title     string `json:"title"`
	TitleFont Font   `json:"title_font"`
	XLabel    string `json:"x_label"`
	YLabel    string `json:"y_label"`
	LabelFont Font   `json:"label_font"`
	Grid      Grid   `json:"grid"`
	Legend    Legend `json:"legend"`
}

// Scene2D is the fractional-coordinate projection of a structure.
type Scene2D struct {
	Points  []Point2      `json:"points"`
	Entries []LegendEntry `json:"legend"`
	Layout  Layout2       `json:"layout"`
}
