// Package store defines the interfaces through which the application reads
// its word dataset. Sources (spreadsheets, CSV files, SQL tables) live under
// internal/platform and are interchangeable behind DatasetSource.
package store
