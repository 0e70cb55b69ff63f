package publish

import (
	"strconv"
	"strings"

	"folio-cli/internal/model"
)

// Number formats a 1-based outline path: decimal "1.2.3", roman "I.II.III",
// alpha "A.B.C" and bullet "•".
func Number(style model.IndexStyle, path ...int) string {
	if style == model.IndexBullet {
		return "•"
	}
	parts := make([]string, 0, len(path))
	for _, n := range path {
		switch style {
		case model.IndexRoman:
			parts = append(parts, Roman(n))
		case model.IndexAlpha:
			parts = append(parts, Alpha(n))
		default:
			parts = append(parts, strconv.Itoa(n))
		}
	}
	return strings.Join(parts, ".")
}

var romanTable = []struct {
	v int
	s string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

func Roman(n int) string {
	if n <= 0 {
		return strconv.Itoa(n)
	}
	var b strings.Builder
	for _, r := range romanTable {
		for n >= r.v {
			b.WriteString(r.s)
			n -= r.v
		}
	}
	return b.String()
}

// Alpha is spreadsheet-style: 1=A, 26=Z, 27=AA.
func Alpha(n int) string {
	if n <= 0 {
		return strconv.Itoa(n)
	}
	var out []byte
	for n > 0 {
		n--
		out = append([]byte{byte('A' + n%26)}, out...)
		n /= 26
	}
	return string(out)
}
