package reel

import "math"

// PropPosition is the tween key for a reel's scroll position
const PropPosition = "position"

// Blur magnitude per row of motion in one tick
const blurFactor = 8

// Cell is one symbol slot on a reel
type Cell struct {
	Symbol string
	// lap counts how many times the cell wrapped past the top of the reel
	lap int
}

// Reel is one vertical column of symbols scrolling by a continuous position.
// Position is written only by the reel's tween
type Reel struct {
	position         float64
	previousPosition float64
	cells            []Cell
}

func newReel(rows int) *Reel {
	return &Reel{cells: make([]Cell, rows)}
}

// Property implements tween.Target
func (r *Reel) Property(key string) float64 {
	if key == PropPosition {
		return r.position
	}
	return 0
}

// SetProperty implements tween.Target
func (r *Reel) SetProperty(key string, v float64) {
	if key == PropPosition {
		r.position = v
	}
}

func (r *Reel) Position() float64 { return r.position }
func (r *Reel) PreviousPosition() float64 { return r.previousPosition }
func (r *Reel) Len() int { return len(r.cells) }
func (r *Reel) Cell(j int) Cell { return r.cells[j] }

// MotionBlur is the vertical blur implied by the last tick's movement
func (r *Reel) MotionBlur() float64 {
	return (r.position - r.previousPosition) * blurFactor
}

// Slot is the continuous scroll slot of cell j in [0, rows)
func (r *Reel) Slot(j int) float64 {
	return floorMod(r.position+float64(j), float64(len(r.cells)))
}

// Row is the visible row of cell j
func (r *Reel) Row(j int) int {
	return int(r.Slot(j))
}

// Offset is the vertical offset of cell j in row units, in [-1, rows-1)
func (r *Reel) Offset(j int) float64 {
	return r.Slot(j) - 1
}

// cellAtRow returns the index of the cell currently showing at row
func (r *Reel) cellAtRow(row int) int {
	for j := range r.cells {
		if r.Row(j) == row {
			return j
		}
	}
	return -1
}

func (r *Reel) lapOf(j int) int {
	return int(math.Floor((r.position + float64(j)) / float64(len(r.cells))))
}

// rowAt is the row cell j occupies when the reel rests at position p
func rowAt(p float64, j, rows int) int {
	return int(floorMod(p+float64(j), float64(rows)))
}

func floorMod(a, b float64) float64 {
	m := math.Mod(a, b)
	if m < 0 {
		m += b
	}
	// Mod of a tiny negative can round up to b
	if m >= b {
		m = 0
	}
	return m
}
