// Package domain holds the core value types of the decision engine:
// tree nodes, actions, query results and the report records produced by a
// verification session. It has no dependencies and no behavior beyond
// construction and formatting, so every other layer (engine, reference
// model, harness, adapters) can share it without coupling.
package domain
