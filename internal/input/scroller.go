package input

// Scroller turns wheel and paging input into an absolute scroll offset, the way a page of
// Sections viewport-high sections would scroll. The offset stays in [0, (Sections-1)*height].
type Scroller struct {
	// LinePixels is how far one wheel notch scrolls.
	LinePixels float64
	Sections   int
	offset     float64
}

// NewScroller returns a scroller for a page of sections sections.
func NewScroller(sections int, linePixels float64) *Scroller {
	return &Scroller{LinePixels: linePixels, Sections: sections}
}

// Max returns the largest offset for a viewport of the given height.
func (s *Scroller) Max(height int) float64 {
	if s.Sections <= 1 || height <= 0 {
		return 0
	}
	return float64(s.Sections-1) * float64(height)
}

// Wheel scrolls by notches; positive notches scroll up as on a page.
func (s *Scroller) Wheel(notches float64, height int) (float64, bool) {
	return s.moveTo(s.offset-notches*s.LinePixels, height)
}

// Page scrolls by whole viewports; positive pages move down.
func (s *Scroller) Page(pages int, height int) (float64, bool) {
	return s.moveTo(s.offset+float64(pages*height), height)
}

// Refit re-clamps the offset after a resize. A non-positive height leaves the offset alone.
func (s *Scroller) Refit(height int) (float64, bool) {
	return s.moveTo(s.offset, height)
}

// Offset returns the current offset.
func (s *Scroller) Offset() float64 { return s.offset }

func (s *Scroller) moveTo(v float64, height int) (float64, bool) {
	if height <= 0 {
		// A minimized window has no page to clamp against; keep the position for when it returns.
		return s.offset, false
	}
	if v < 0 {
		v = 0
	}
	if m := s.Max(height); v > m {
		v = m
	}
	changed := v != s.offset
	s.offset = v
	return v, changed
}
