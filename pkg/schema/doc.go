// Package schema defines the YAML document format for decision trees and
// validates documents structurally before they reach the engine: every
// child index must be in range and every path reachable from the root must
// terminate at a leaf. A document that passes validation converts to a
// domain.Tree the engine can load without surprises.
package schema
