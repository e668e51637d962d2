// Package errors provides structured error handling with i18n support.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Rule input errors
	CodeUnknownCareer         Code = "UNKNOWN_CAREER"
	CodeUnknownCharacteristic Code = "UNKNOWN_CHARACTERISTIC"
	CodeUnknownSkillTable     Code = "UNKNOWN_SKILL_TABLE"
	CodeDiceInvalidSpec       Code = "DICE_INVALID_SPEC"

	// Character state errors
	CodePhaseMismatch          Code = "PHASE_MISMATCH"
	CodeCareerEnded            Code = "CAREER_ENDED"
	CodeCharacterDeceased      Code = "CHARACTER_DECEASED"
	CodeAlreadyEnlisted        Code = "ALREADY_ENLISTED"
	CodeNotEnlisted            Code = "NOT_ENLISTED"
	CodeNotCommissioned        Code = "NOT_COMMISSIONED"
	CodeCommissionUnavailable  Code = "COMMISSION_UNAVAILABLE"
	CodePromotionCapReached    Code = "PROMOTION_CAP_REACHED"
	CodeCareerStillActive      Code = "CAREER_STILL_ACTIVE"
	CodeSnapshotInvalid        Code = "SNAPSHOT_INVALID"
	CodeSnapshotFormatUnknown  Code = "SNAPSHOT_FORMAT_UNKNOWN"
	CodeSnapshotVersionUnknown Code = "SNAPSHOT_VERSION_UNKNOWN"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// Exit codes reported by command-line hosts.
const (
	ExitInternal     = 1
	ExitInvalidInput = 2
	ExitPrecondition = 3
	ExitNotFound     = 4
)

// ExitCode maps domain codes to process exit codes.
func (c Code) ExitCode() int {
	switch c {
	// Invalid input - unknown names, bad specs, unreadable snapshots
	case CodeUnknownCareer,
		CodeUnknownCharacteristic,
		CodeUnknownSkillTable,
		CodeDiceInvalidSpec,
		CodeSnapshotInvalid,
		CodeSnapshotFormatUnknown,
		CodeSnapshotVersionUnknown:
		return ExitInvalidInput

	// Precondition - character state doesn't allow the operation
	case CodePhaseMismatch,
		CodeCareerEnded,
		CodeCharacterDeceased,
		CodeAlreadyEnlisted,
		CodeNotEnlisted,
		CodeNotCommissioned,
		CodeCommissionUnavailable,
		CodePromotionCapReached,
		CodeCareerStillActive:
		return ExitPrecondition

	case CodeNotFound:
		return ExitNotFound

	default:
		return ExitInternal
	}
}
