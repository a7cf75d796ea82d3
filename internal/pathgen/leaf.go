package pathgen

import (
	"fmt"
	"strconv"
)

// BookLeaf formats the series-book leaf component: "{nn:02} - {title}" if
// seriesNumber parses as an integer, "{seriesNumber} - {title}" if it's a
// non-empty non-integer string, else just "{title}".
func BookLeaf(seriesNumber, title string) string {
	if seriesNumber == "" {
		return title
	}
	if n, err := strconv.Atoi(seriesNumber); err == nil {
		return fmt.Sprintf("%02d - %s", n, title)
	}
	return fmt.Sprintf("%s - %s", seriesNumber, title)
}
