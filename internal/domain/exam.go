package domain

import (
	"math/rand/v2"
)

// DayCount records how many words a study day contributed to an exam before
// cross-day deduplication.
type DayCount struct {
	Day   int `json:"day"`
	Count int `json:"count"`
}

// ExamWordSet is the result of extracting words for a set of study days.
//
// Words holds unique words in first-seen order. DayCounts holds one entry per
// resolved day, in resolution order, with raw pre-deduplication counts, so the
// sum of counts may exceed len(Words).
type ExamWordSet struct {
	Words     []string   `json:"words"`
	DayCounts []DayCount `json:"day_counts"`
}

// Shuffler permutes n elements through swap. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

type globalShuffler struct{}

func (globalShuffler) Shuffle(n int, swap func(i, j int)) {
	rand.Shuffle(n, swap)
}

// Days returns the days of the set in resolution order.
func (s ExamWordSet) Days() []int {
	days := make([]int, len(s.DayCounts))
	for i, dc := range s.DayCounts {
		days[i] = dc.Day
	}
	return days
}

// CountFor returns the raw count recorded for day.
func (s ExamWordSet) CountFor(day int) (int, bool) {
	for _, dc := range s.DayCounts {
		if dc.Day == day {
			return dc.Count, true
		}
	}
	return 0, false
}

// TotalCount returns the sum of the per-day raw counts.
func (s ExamWordSet) TotalCount() int {
	total := 0
	for _, dc := range s.DayCounts {
		total += dc.Count
	}
	return total
}

// Clone returns a deep copy of the set.
func (s ExamWordSet) Clone() ExamWordSet {
	return ExamWordSet{
		Words:     append([]string(nil), s.Words...),
		DayCounts: append([]DayCount(nil), s.DayCounts...),
	}
}

// Shuffle permutes Words in place using rng, or the package-level random
// source when rng is nil. Which words are included and DayCounts are untouched.
func (s *ExamWordSet) Shuffle(rng Shuffler) {
	if rng == nil {
		rng = globalShuffler{}
	}
	words := s.Words
	rng.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})
}
