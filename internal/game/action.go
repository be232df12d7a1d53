package game

import (
	"regexp"
	"strconv"
)

// actionRe matches "[start_row start_col end_row end_col]".
var actionRe = regexp.MustCompile(`\[(\d+)\s(\d+)\s(\d+)\s(\d+)\]`)

// ParseAction extracts every bracketed coordinate group from free text, in
// order of appearance, with repeats removed.
func ParseAction(text string) []Span {
	var out []Span
	seen := make(map[Span]struct{})
	for _, m := range actionRe.FindAllStringSubmatch(text, -1) {
		var n [4]int
		ok := true
		for i := range n {
			v, err := strconv.Atoi(m[i+1])
			if err != nil {
				ok = false // overflow
				break
			}
			n[i] = v
		}
		if !ok {
			continue
		}
		s := Span{StartRow: n[0], StartCol: n[1], EndRow: n[2], EndCol: n[3]}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
