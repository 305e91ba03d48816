package render

import "math"

// BBox is an axis-aligned extent in screen or data space.
type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
	set  bool
}

func (b *BBox) extend(x, y float64) {
	if !b.set {
		*b = BBox{MinX: x, MinY: y, MaxX: x, MaxY: y, set: true}
		return
	}
	b.MinX = math.Min(b.MinX, x)
	b.MinY = math.Min(b.MinY, y)
	b.MaxX = math.Max(b.MaxX, x)
	b.MaxY = math.Max(b.MaxY, y)
}

// include widens b so it covers [lo, hi] on both axes.
func (b BBox) include(lo, hi float64) BBox {
	b.extend(lo, lo)
	b.extend(hi, hi)
	return b
}

func (b BBox) Width() float64  { return b.MaxX - b.MinX }
func (b BBox) Height() float64 { return b.MaxY - b.MinY }

// viewport maps a data box onto a micro-pixel grid.
type viewport struct {
	box        BBox
	wMic, hMic int
	scaleX     float64
	scaleY     float64
	offX, offY float64
}

// uniformViewport keeps one scale on both axes and centers the box, so
// equal data lengths stay equal on screen.
func uniformViewport(b BBox, wMic, hMic int, zoom float64) viewport {
	bw, bh := math.Max(b.Width(), 1e-9), math.Max(b.Height(), 1e-9)
	s := math.Min(float64(wMic-1)/bw, float64(hMic-1)/bh) * 0.9 * zoom
	if b.Width() == 0 && b.Height() == 0 {
		s = 1
	}
	return viewport{
		box: b, wMic: wMic, hMic: hMic, scaleX: s, scaleY: s,
		offX: (float64(wMic-1) - b.Width()*s) / 2,
		offY: (float64(hMic-1) - b.Height()*s) / 2,
	}
}

// stretchViewport fills the grid independently on each axis.
func stretchViewport(b BBox, wMic, hMic int) viewport {
	return viewport{
		box: b, wMic: wMic, hMic: hMic,
		scaleX: float64(wMic-1) / math.Max(b.Width(), 1e-9),
		scaleY: float64(hMic-1) / math.Max(b.Height(), 1e-9),
	}
}

// micro returns micro-pixel coordinates with y growing downwards.
func (v viewport) micro(x, y float64) (int, int) {
	mx := v.offX + (x-v.box.MinX)*v.scaleX
	my := float64(v.hMic-1) - (v.offY + (y-v.box.MinY)*v.scaleY)
	return int(math.Round(mx)), int(math.Round(my))
}
