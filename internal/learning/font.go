package learning

// glyphW and glyphH are the size of a digit in the guide font.
const (
	glyphW = 5
	glyphH = 7
)

// digitGlyphs is a 5x7 bitmap font for the digits 0-9.
var digitGlyphs = [10][glyphH]string{
	{".###.", "#...#", "#...#", "#...#", "#...#", "#...#", ".###."},
	{"..#..", ".##..", "..#..", "..#..", "..#..", "..#..", ".###."},
	{".###.", "#...#", "....#", "...#.", "..#..", ".#...", "#####"},
	{"#####", "...#.", "..#..", "...#.", "....#", "#...#", ".###."},
	{"...#.", "..##.", ".#.#.", "#..#.", "#####", "...#.", "...#."},
	{"#####", "#....", "####.", "....#", "....#", "#...#", ".###."},
	{"..##.", ".#...", "#....", "####.", "#...#", "#...#", ".###."},
	{"#####", "....#", "...#.", "..#..", ".#...", ".#...", ".#..."},
	{".###.", "#...#", "#...#", ".###.", "#...#", "#...#", ".###."},
	{".###.", "#...#", "#...#", ".####", "....#", "...#.", ".##.."},
}

// glyphAt reports whether pixel (col, row) of digit d is set.
func glyphAt(d, col, row int) bool {
	if d < 0 || d > 9 || col < 0 || col >= glyphW || row < 0 || row >= glyphH {
		return false
	}
	return digitGlyphs[d][row][col] == '#'
}

// BigDigit returns digit d as glyphH rows, drawing set pixels with on
// and clear ones as spaces. Each pixel is two runes wide so the digit
// keeps its shape in a terminal.
func BigDigit(d int, on rune) []string {
	if d < 0 || d > 9 {
		return nil
	}
	rows := make([]string, glyphH)
	for y := range rows {
		line := make([]rune, 0, glyphW*2)
		for x := 0; x < glyphW; x++ {
			r := ' '
			if glyphAt(d, x, y) {
				r = on
			}
			line = append(line, r, r)
		}
		rows[y] = string(line)
	}
	return rows
}
