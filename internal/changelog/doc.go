// Package changelog groups classified commits under the release that shipped
// them and renders the result.
//
// This package implements:
//   - Version bucketing: each change belongs to the earliest release at or after it
//   - Group, an insertion-ordered version -> changes mapping (newest release first)
//   - Markdown rendering from embedded templates
//   - Colored terminal previews of a Group
//
// Generate is the single entry point from raw history lines to a Group.
package changelog
