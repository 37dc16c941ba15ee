package extract

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/phrazzld/vocaexam/internal/domain"
)

var markerDay = regexp.MustCompile(`day(\d+)`)

// AvailableDays lists the day numbers named by any day marker in ds, ascending
// and without repeats. A marker cell may name several days ("day3 day4").
func AvailableDays(ds domain.Dataset) []int {
	seen := make(map[int]bool)
	days := []int{}
	for _, rec := range ds {
		for _, m := range markerDay.FindAllStringSubmatch(rec.DayMarker.Raw(), -1) {
			d, err := strconv.Atoi(m[1])
			if err != nil || d < 1 || seen[d] {
				continue
			}
			seen[d] = true
			days = append(days, d)
		}
	}
	sort.Ints(days)
	return days
}
