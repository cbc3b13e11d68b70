// Package ports defines the boundary interfaces of the verification core.
// The harness only knows how to advance a clock and emit structured records;
// anything that persists, renders or exports those records lives behind one
// of these interfaces, implemented by an adapter.
package ports
