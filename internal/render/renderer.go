package render

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"reelspin/internal/reel"
	repoModel "reelspin/internal/repository/spin_stats_repo/model"
	"reelspin/internal/tween"
)

const (
	// Terminal cells per symbol box
	cellWidth  = 7
	cellHeight = 3
	reelGap    = 1

	originX = 2
	originY = 1

	// Blur above this many screen rows per tick dims the symbol
	blurThreshold = 0.5

	pulseLength = 600 * time.Millisecond
)

var (
	frameStyle  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	buttonStyle = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorGold)
	busyStyle   = tcell.StyleDefault.Foreground(tcell.ColorGray).Background(tcell.ColorDarkSlateGray)

	symbolColors = map[string]tcell.Color{
		"1": tcell.ColorRed,
		"2": tcell.ColorOrange,
		"3": tcell.ColorYellow,
		"4": tcell.ColorGreen,
		"5": tcell.ColorAqua,
		"6": tcell.ColorBlue,
		"7": tcell.ColorPurple,
		"8": tcell.ColorFuchsia,
		"K": tcell.ColorGold,
	}
)

// View is what the renderer reads from the reel controller
type View interface {
	State() reel.State
	Reels() []*reel.Reel
	RowCount() int
	SpinStart() time.Time
}

// Renderer draws reels, status and the spin button onto a tcell screen
type Renderer struct {
	screen tcell.Screen
}

func New(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Layout returns the reel window rectangle for the given view
func Layout(v View) (x, y, w, h int) {
	n := len(v.Reels())
	return originX, originY, n*cellWidth + (n-1)*reelGap, v.RowCount() * cellHeight
}

// Draw renders one frame and shows it
func (r *Renderer) Draw(now time.Time, v View, stats repoModel.SpinStats) {
	r.screen.Clear()

	wx, wy, ww, wh := Layout(v)
	r.drawFrame(wx-1, wy-1, ww+2, wh+2)

	for i, rl := range v.Reels() {
		r.drawReel(wx+i*(cellWidth+reelGap), wy, wh, rl)
	}

	r.drawButton(now, v, wx, wy+wh+2, ww)
	r.drawStatus(v, stats, wx-1, wy+wh+4)

	r.screen.Show()
}

// drawReel places every cell by its scroll slot, cells outside the window are clipped
func (r *Renderer) drawReel(x, top, height int, rl *reel.Reel) {
	blur := math.Abs(rl.MotionBlur()) * cellHeight
	for j := 0; j < rl.Len(); j++ {
		y := top + int(math.Floor(rl.Slot(j)*cellHeight)) + cellHeight/2
		if y < top || y >= top+height {
			continue
		}

		sym := rl.Cell(j).Symbol
		style := symbolStyle(sym)
		if blur > blurThreshold {
			style = style.Dim(true)
			if y-1 >= top {
				r.putString(x+cellWidth/2, y-1, "│", style)
			}
		}
		r.putString(x+(cellWidth-len(sym))/2, y, sym, style)
	}
}

func (r *Renderer) drawFrame(x, y, w, h int) {
	for i := 1; i < w-1; i++ {
		r.screen.SetContent(x+i, y, '─', nil, frameStyle)
		r.screen.SetContent(x+i, y+h-1, '─', nil, frameStyle)
	}
	for j := 1; j < h-1; j++ {
		r.screen.SetContent(x, y+j, '│', nil, frameStyle)
		r.screen.SetContent(x+w-1, y+j, '│', nil, frameStyle)
	}
	r.screen.SetContent(x, y, '┌', nil, frameStyle)
	r.screen.SetContent(x+w-1, y, '┐', nil, frameStyle)
	r.screen.SetContent(x, y+h-1, '└', nil, frameStyle)
	r.screen.SetContent(x+w-1, y+h-1, '┘', nil, frameStyle)
}

// drawButton pulses the label right after a spin starts
func (r *Renderer) drawButton(now time.Time, v View, x, y, w int) {
	label, style := ButtonLabel(now, v)
	r.putString(x+(w-len(label))/2, y, label, style)
}

// ButtonLabel returns the spin button text and style for this frame
func ButtonLabel(now time.Time, v View) (string, tcell.Style) {
	if !v.State().Spinning() {
		return "[ SPIN ]", buttonStyle
	}
	phase := float64(now.Sub(v.SpinStart())) / float64(pulseLength)
	if phase >= 1 || phase < 0 {
		return "[  ..  ]", busyStyle
	}
	pad := int(math.Round(tween.OutQuad(phase) * 2))
	return "[" + strings.Repeat(" ", 3-pad) + "*" + strings.Repeat(" ", 2+pad) + "]", buttonStyle
}

func (r *Renderer) drawStatus(v View, s repoModel.SpinStats, x, y int) {
	line := fmt.Sprintf("%-11s spins %d  settled %d  rejected %d  late %d  avg %s  last%d %s",
		v.State(), s.TotalSpins, s.Settled, s.Rejected, s.Anomalies,
		s.AvgLatency.Round(time.Millisecond), s.WindowSize, s.WindowLatency.Round(time.Millisecond))
	r.putString(x, y, line, statusStyle)
	r.putString(x, y+1, "space spin  q quit", statusStyle)
}

func (r *Renderer) putString(x, y int, s string, style tcell.Style) {
	for _, c := range s {
		r.screen.SetContent(x, y, c, nil, style)
		x++
	}
}

func symbolStyle(sym string) tcell.Style {
	if c, ok := symbolColors[sym]; ok {
		return tcell.StyleDefault.Foreground(c).Bold(true)
	}
	return tcell.StyleDefault
}

