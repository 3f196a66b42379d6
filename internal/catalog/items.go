package catalog

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"unicode"
)

// LoadItems reads one practice item per line. Blank lines and lines starting
// with '#' are skipped; repeated items keep their first position.
func LoadItems(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var items []string
	seen := map[string]struct{}{}
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !Writable(line) {
			return nil, fmt.Errorf("line %d: %q has characters that cannot be practiced", lineNo, line)
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		items = append(items, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("item list is empty")
	}
	return items, nil
}

// Writable reports whether item only holds printable, non-control runes.
func Writable(item string) bool {
	if item == "" {
		return false
	}
	for _, r := range item {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}
