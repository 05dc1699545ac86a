// Package core provides the board, scoring and turn logic for the Blast puzzle game.
// This package is UI-agnostic and deterministic for a given RNG stream.
package core

import "fmt"

// Color is the content of a grid cell: a color index in [0, colors) or Empty.
type Color int8

// Empty marks a cell whose tile was removed and not yet refilled.
const Empty Color = -1

// IsEmpty returns true for the Empty sentinel.
func (c Color) IsEmpty() bool {
	return c == Empty
}

// String returns a short name used in logs and ASCII dumps.
func (c Color) String() string {
	switch c {
	case Empty:
		return "empty"
	case 0:
		return "blue"
	case 1:
		return "green"
	case 2:
		return "purple"
	case 3:
		return "red"
	case 4:
		return "yellow"
	default:
		return fmt.Sprintf("color%d", int(c))
	}
}

// Char returns a single character representation of the color for ASCII rendering.
func (c Color) Char() rune {
	switch c {
	case Empty:
		return '.'
	case 0:
		return 'B'
	case 1:
		return 'G'
	case 2:
		return 'P'
	case 3:
		return 'R'
	case 4:
		return 'Y'
	default:
		if c >= 0 && c < 10 {
			return rune('0' + c)
		}
		return '?'
	}
}

// ParseColor is the inverse of Char.
func ParseColor(r rune) (Color, bool) {
	switch r {
	case '.':
		return Empty, true
	case 'B':
		return 0, true
	case 'G':
		return 1, true
	case 'P':
		return 2, true
	case 'R':
		return 3, true
	case 'Y':
		return 4, true
	}
	if r >= '0' && r <= '9' {
		return Color(r - '0'), true
	}
	return Empty, false
}
