// Package app contains the navigation state machine driving albumrate.
//
// The Controller owns the two-level browse model (artists, then the
// selected artist's albums) and the rating edit session. Key events are
// delivered as semantic On* calls; the controller mutates list selection,
// runs drill-in lookups against the catalog, and persists committed
// ratings through the store gateway. A second entry point, NewRatedBrowser,
// browses previously rated albums straight from the local database.
//
// All state transitions happen under one lock so the terminal event loop
// and any helper goroutine observe a single writer.
package app
