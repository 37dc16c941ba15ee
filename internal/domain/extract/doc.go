// Package extract pulls the words of study days out of a Dataset.
//
// A Locator finds the rows belonging to one day. MarkerLocator follows the
// day-marker column of labeled data and is the primary strategy;
// PositionLocator slices fixed-size blocks for unlabeled lists. The Extractor
// turns each day's rows into words, records per-day raw counts, and removes
// duplicates across days keeping first occurrences.
package extract
