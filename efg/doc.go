// Package efg provides the extensive-form game representation consumed by the
// QRE solver.
//
// # Reading Guide
//
// Start with these three files to understand the data model:
//   - game.go: the game tree (players, information sets, actions, nodes) and
//     the builder API used to construct games
//   - support.go: supports (the active subset of actions) and the flat
//     player-major indexing shared with the solver's residual/Jacobian layout
//   - profile.go: behavior profiles, realization probabilities, expected
//     action values and their analytic first derivatives
//
// games.go holds convenience constructors for standard test games
// (simultaneous-move matrix games, the centipede).
//
// # Conventions
//
// All indices are zero-based. Within an information set, action 0 is the
// reference action for logit response conditions. Profiles are indexed flat
// over (player, infoset, action) triples in player-major order; a Support
// translates between flat indices and triples.
package efg
