// Package audit records the operation history of characters.
//
// Every engine operation the career service performs is appended as one
// storage.Operation row so a character's career can be reviewed after the
// fact. Emission is best effort from the caller's point of view: a nil
// emitter or store drops operations silently.
package audit
