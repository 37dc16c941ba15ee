// Package service contains the application use cases for exam sheets.
//
// It orchestrates the pure domain packages (schedule, extract, layout) with
// the infrastructure behind interfaces: the dataset source, the session store,
// the document renderers and the telemetry emitter. Delivery mechanisms such
// as the HTTP API and the CLI call into this package and never touch the
// domain packages directly.
//
// Error handling principles:
//  1. Request validation failures wrap domain.ErrValidation
//  2. Unknown or expired sessions return session.ErrSessionNotFound
//  3. Dataset failures are not errors for exam generation: the exam comes
//     back empty with a warning
//  4. Telemetry failures are logged and otherwise ignored
package service
