package device

import (
	"strings"
	"sync"
)

const (
	// LCDColumns is the number of characters per row.
	LCDColumns = 16
	// LCDRows is the number of rows.
	LCDRows = 2
)

// LCD is a 16x2 character display. Text past the last column is dropped.
type LCD struct {
	mu       sync.RWMutex
	cells    [LCDRows][LCDColumns]rune
	onChange func(lines [LCDRows]string)
}

// NewLCD returns a blank display.
func NewLCD() *LCD {
	d := new(LCD)
	d.clear()

	return d
}

// OnChange registers fn to be called with the full screen after every change.
// fn runs on the writer's goroutine and must not block.
func (d *LCD) OnChange(fn func(lines [LCDRows]string)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.onChange = fn
}

// Show clears the display and writes line1 and line2 from column 0.
func (d *LCD) Show(line1, line2 string) {
	d.mu.Lock()
	d.clear()
	d.print(0, 0, line1)
	d.print(0, 1, line2)
	lines, fn := d.lines(), d.onChange
	d.mu.Unlock()

	if fn != nil {
		fn(lines)
	}
}

// Put writes glyph at column col of row row. Out-of-range positions are ignored.
func (d *LCD) Put(col, row int, glyph rune) {
	d.mu.Lock()
	d.print(col, row, string(glyph))
	lines, fn := d.lines(), d.onChange
	d.mu.Unlock()

	if fn != nil {
		fn(lines)
	}
}

// Lines returns both rows with trailing blanks removed.
func (d *LCD) Lines() [LCDRows]string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.lines()
}

// Row returns row r padded to the full display width.
func (d *LCD) Row(r int) string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if r < 0 || r >= LCDRows {
		return ""
	}

	return string(d.cells[r][:])
}

func (d *LCD) clear() {
	for r := range d.cells {
		for c := range d.cells[r] {
			d.cells[r][c] = ' '
		}
	}
}

func (d *LCD) print(col, row int, text string) {
	if row < 0 || row >= LCDRows || col < 0 {
		return
	}

	for _, ch := range text {
		if col >= LCDColumns {
			return
		}

		d.cells[row][col] = ch
		col++
	}
}

func (d *LCD) lines() [LCDRows]string {
	var out [LCDRows]string
	for r := range d.cells {
		out[r] = strings.TrimRight(string(d.cells[r][:]), " ")
	}

	return out
}
