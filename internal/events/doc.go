// Package events provides types and interfaces for user action telemetry.
//
// Services emit events without knowing which handlers will process them, so
// telemetry sinks can be swapped without touching exam generation. A failing
// handler never changes the outcome of the request that emitted the event.
//
// The primary components are:
//   - UserActionEvent: a named user action with JSON parameters
//   - EventHandler: interface for components that can handle events
//   - EventEmitter: interface for components that can emit events
//   - LogHandler: writes each event as a USER_ACTION_TRACKING log record
package events
