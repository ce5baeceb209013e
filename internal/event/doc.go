// Package event carries project-creation lifecycle events from the
// orchestrator to subscribers registered before a run starts.
//
// Delivery is synchronous: Publish returns after every handler has run,
// so handlers observe phases in exactly the order they were emitted.
package event
