// Package commit turns raw git history lines into typed commit records.
//
// This package implements:
//   - Parsing of the tagged one-line log format emitted by the history feed
//   - Gitmoji shorthand expansion and intent classification (feature, fix, release)
//   - Release marker version extraction
//   - Commit link resolution for known hosting providers
//
// Everything here is a pure transformation over in-memory strings; reading the
// history itself is the job of the git package.
package commit
