package debug

import (
	"fmt"
	"runtime"

	"scroll-scene/internal/frame"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fpsFontSize   = 20
	fpsPadding    = 12
	fpsLineHeight = fpsFontSize + 4
	// updateInterval: only refresh overlay text every N frames to reduce allocations.
	updateInterval = 30
)

// Debug holds the runtime overlays. All overlays are off by default.
type Debug struct {
	ShowFPS   bool
	ShowStats bool
	// Stats returns the last tick's frame stats; required for ShowStats.
	Stats        func() frame.Stats
	Sections     int
	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastStats    []string
	lastMemStats runtime.MemStats
}

// New returns a Debug system with all overlays hidden.
func New(stats func() frame.Stats, sections int) *Debug {
	return &Debug{Stats: stats, Sections: sections}
}

// SetShowFPS sets whether FPS and heap use are drawn (top-right, green).
func (d *Debug) SetShowFPS(show bool) {
	d.ShowFPS = show
}

// SetShowStats sets whether scroll, section and rig state are drawn under FPS.
func (d *Debug) SetShowStats(show bool) {
	d.ShowStats = show
}

// Draw renders any enabled overlays. Call after the scene and console in the draw loop.
func (d *Debug) Draw() {
	d.frameCount++
	update := (d.frameCount % updateInterval) == 0
	if d.ShowFPS && d.lastFpsText == "" {
		update = true
	}
	if d.ShowStats && len(d.lastStats) == 0 {
		update = true
	}

	y := int32(fpsPadding)
	if d.ShowFPS {
		if update {
			d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
			runtime.ReadMemStats(&d.lastMemStats)
			d.lastMemText = fmt.Sprintf("Mem: %.2f MiB", float64(d.lastMemStats.Alloc)/(1024*1024))
		}
		y = drawRight(d.lastFpsText, y)
		y = drawRight(d.lastMemText, y)
	}
	if d.ShowStats && d.Stats != nil {
		if update {
			d.lastStats = StatsLines(d.Stats(), d.Sections)
		}
		for _, line := range d.lastStats {
			y = drawRight(line, y)
		}
	}
}

// StatsLines formats frame stats for the overlay.
func StatsLines(s frame.Stats, sections int) []string {
	return []string{
		fmt.Sprintf("Scroll: %.0f px", s.Scroll),
		fmt.Sprintf("Section: %d/%d", s.Section+1, sections),
		fmt.Sprintf("Rig: %.3f, %.3f", s.Rig[0], s.Rig[1]),
		fmt.Sprintf("Target: %.3f, %.3f", s.Target[0], s.Target[1]),
		fmt.Sprintf("Delta: %.1f ms", s.Delta*1000),
	}
}

func drawRight(text string, y int32) int32 {
	if text == "" {
		return y
	}
	screenW := int32(rl.GetScreenWidth())
	w := rl.MeasureText(text, fpsFontSize)
	rl.DrawText(text, screenW-w-fpsPadding, y, fpsFontSize, rl.Green)
	return y + fpsLineHeight
}
