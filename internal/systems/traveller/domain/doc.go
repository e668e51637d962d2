// Package domain contains the classic Traveller career rules.
//
// This package provides the pure rules for resolving a character's military
// career, including:
//
//   - The six characteristics and their UPP encoding
//   - Per-career enlistment, survival, commission, promotion and
//     re-enlistment checks
//   - The four skill tables per career and automatic one-time grants
//   - Aging and mustering-out calculations
//
// Resolvers take the slice of character state they need plus a dice.Roller
// and return a result value; they never mutate a Character. The Apply*
// methods on Character turn results into state changes and keep the audit
// logs consistent with them. Sequencing lives in the engine package.
package domain
