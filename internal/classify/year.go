package classify

import (
	"regexp"
	"strconv"
	"time"
)

// yearPattern matches a plausible four-digit year in a filename or
// path segment, e.g. "Protokoll_2019.pdf" or "events/2021/flyer.png".
var yearPattern = regexp.MustCompile(`(19[7-9]\d|20\d{2})`)

// Year derives the category year for a file. Precedence: a year
// embedded in the relative path, then a year supplied by document
// metadata (0 = none), then the modification time. The path is
// checked first because archive trees are usually organized by year
// while mtimes drift with every copy.
func Year(relPath string, metaYear int, modTime time.Time) int {
	if y, ok := YearFromPath(relPath); ok {
		return y
	}
	if plausibleYear(metaYear) {
		return metaYear
	}
	return modTime.Year()
}

// YearFromPath scans a relative path for an embedded year.
// The last match wins: deeper path segments and the filename itself
// are more specific than top-level directories.
func YearFromPath(relPath string) (int, bool) {
	matches := yearPattern.FindAllString(relPath, -1)
	for i := len(matches) - 1; i >= 0; i-- {
		y, err := strconv.Atoi(matches[i])
		if err == nil && plausibleYear(y) {
			return y, true
		}
	}
	return 0, false
}

func plausibleYear(y int) bool {
	return y >= 1970 && y <= time.Now().Year()+1
}
