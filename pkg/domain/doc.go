// Package domain contains the core types of the warden workflow machine:
// the workflow definition (modes and declared transitions), per-mode
// overlays (instructions and tool permissions), the persisted state with
// its append-only history, and the typed errors shared by every layer.
//
// The package has no dependencies outside the standard library so that
// adapters, the engine and the policy matcher can all build on it without
// import cycles.
package domain
