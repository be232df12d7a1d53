// Package assets embeds the default word lists shipped with the binary.
package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed basic.txt hardcore.txt
var FS embed.FS

// readLines returns the non-empty, non-comment lines of an embedded file, lowercased.
func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

// BasicList is the everyday vocabulary used by normal puzzles.
func BasicList() ([]string, error) {
	return readLines("basic.txt")
}

// HardcoreList is the long/rare vocabulary used by hardcore puzzles.
func HardcoreList() ([]string, error) {
	return readLines("hardcore.txt")
}
