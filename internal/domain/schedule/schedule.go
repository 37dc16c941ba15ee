// Package schedule resolves which study days belong on a target day's exam.
//
// The review schedule follows a forgetting-curve pattern: a day's words come
// back 1, 3, 7, 14, 30, 60 and 120 days after they were first studied. The
// offsets are fixed and shared by every request.
package schedule

// reviewOffsets lists the days before the target that are reviewed with it,
// in the order they are appended to a resolved day list.
var reviewOffsets = [...]int{1, 3, 7, 14, 30, 60, 120}

// ReviewOffsets returns a copy of the fixed review offset table.
func ReviewOffsets() []int {
	offsets := make([]int, len(reviewOffsets))
	copy(offsets, reviewOffsets[:])
	return offsets
}

// ResolveDays returns the study days whose words appear on the exam for
// targetDay: the target itself first, followed by targetDay-o for each review
// offset o in table order, skipping any result that is not positive.
//
// Validating that targetDay is at least 1 is the caller's job.
//
// Examples:
//   - ResolveDays(1) == [1]
//   - ResolveDays(5) == [5 4 2]
//   - ResolveDays(50) == [50 49 47 43 36 20]
func ResolveDays(targetDay int) []int {
	days := make([]int, 0, len(reviewOffsets)+1)
	days = append(days, targetDay)
	for _, offset := range reviewOffsets {
		if day := targetDay - offset; day > 0 {
			days = append(days, day)
		}
	}
	return days
}
