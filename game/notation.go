package game

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Column letters skip I to avoid confusion with 1.
const columnLetters = "ABCDEFGHJKLMNOPQRSTUVWXYZ"

// FormatPoint renders p as a vertex such as "D4", or "pass".
func FormatPoint(p Point, size int) string {
	if p == Pass {
		return "pass"
	}
	ns := size + 1
	row, col := int(p)/ns, int(p)%ns
	if row < 1 || row > size || col < 1 || col > size {
		return "pass"
	}
	return string(columnLetters[col-1]) + strconv.Itoa(row)
}

// ParsePoint converts a vertex such as "d4" or "pass" to a point on a board of the
// given size.
func ParsePoint(vertex string, size int) (Point, error) {
	if size < MinSize || size > MaxSize {
		return Pass, errors.Wrapf(ErrInvalidSize, "size %d", size)
	}
	s := strings.ToUpper(strings.TrimSpace(vertex))
	if s == "PASS" {
		return Pass, nil
	}
	if len(s) < 2 {
		return Pass, errors.Wrapf(ErrInvalidVertex, "%q", vertex)
	}

	col := strings.IndexByte(columnLetters, s[0]) + 1
	if col == 0 {
		return Pass, errors.Wrapf(ErrInvalidVertex, "%q: wrong column", vertex)
	}
	row, err := strconv.Atoi(s[1:])
	if err != nil || row < 1 {
		return Pass, errors.Wrapf(ErrInvalidVertex, "%q: wrong row", vertex)
	}
	if col > size || row > size {
		return Pass, errors.Wrapf(ErrInvalidVertex, "%q: off a %dx%d board", vertex, size, size)
	}
	return Point(row*(size+1) + col), nil
}

func (b *Board) Format(p Point) string {
	return FormatPoint(p, b.size)
}

func (b *Board) Parse(vertex string) (Point, error) {
	return ParsePoint(vertex, b.size)
}
