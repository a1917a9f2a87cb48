// Package match implements cross-catalog track matching.
//
// Matching works in three layers:
//
//   - [Normalize] converges differently formatted titles of the same
//     recording to one canonical string.
//   - [Score] computes an additive similarity score between a canonical song
//     and a single catalog search candidate.
//   - [Resolver] searches a target catalog, scores the candidates and picks
//     a single winner, or reports the song unmatched.
//
// Scoring constants and the acceptance threshold are a deliberate
// precision/recall tradeoff; stored match data depends on them, so they must
// not drift between releases.
package match
