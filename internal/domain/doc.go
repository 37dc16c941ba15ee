// Package domain contains the core entities of the exam sheet generator:
// the word records read from the source dataset, the dataset itself, and the
// exam word set produced for a target study day. It is independent of any
// specific infrastructure or delivery mechanism.
package domain
