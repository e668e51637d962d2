package domain

import (
	"fmt"

	apperrors "github.com/louisbranch/servicerecord/internal/platform/errors"
)

var (
	// ErrUnknownCareer indicates a career name outside the six services.
	ErrUnknownCareer = apperrors.New(apperrors.CodeUnknownCareer, "unknown career")
	// ErrUnknownCharacteristic indicates a characteristic key outside the six.
	ErrUnknownCharacteristic = apperrors.New(apperrors.CodeUnknownCharacteristic, "unknown characteristic")
	// ErrUnknownSkillTable indicates a skill table name outside the four tiers.
	ErrUnknownSkillTable = apperrors.New(apperrors.CodeUnknownSkillTable, "unknown skill table")

	// ErrPhaseMismatch indicates an operation invoked out of term order.
	ErrPhaseMismatch = apperrors.New(apperrors.CodePhaseMismatch, "operation does not match the current term phase")
	// ErrCareerEnded indicates an operation on a character whose career is over.
	ErrCareerEnded = apperrors.New(apperrors.CodeCareerEnded, "career has ended")
	// ErrDeceased indicates an operation on a dead character.
	ErrDeceased = apperrors.New(apperrors.CodeCharacterDeceased, "character is dead")
	// ErrAlreadyEnlisted indicates a second enlistment attempt.
	ErrAlreadyEnlisted = apperrors.New(apperrors.CodeAlreadyEnlisted, "character is already in service")
	// ErrNotEnlisted indicates a term operation before enlistment.
	ErrNotEnlisted = apperrors.New(apperrors.CodeNotEnlisted, "character has not enlisted")
	// ErrNotCommissioned indicates a promotion attempt by a non-officer.
	ErrNotCommissioned = apperrors.New(apperrors.CodeNotCommissioned, "character is not commissioned")
	// ErrCommissionUnavailable indicates a commission attempt the rules do not allow.
	ErrCommissionUnavailable = apperrors.New(apperrors.CodeCommissionUnavailable, "commission is not available")
	// ErrPromotionCapReached indicates the career's promotion limit was reached.
	ErrPromotionCapReached = apperrors.New(apperrors.CodePromotionCapReached, "no further promotions are available")
	// ErrCareerStillActive indicates mustering out before the career ended.
	ErrCareerStillActive = apperrors.New(apperrors.CodeCareerStillActive, "career is still active")
	// ErrInvalidCharacter indicates a character record that breaks an invariant.
	ErrInvalidCharacter = apperrors.New(apperrors.CodeSnapshotInvalid, "character record is invalid")
)

func unknownCareer(name string) error {
	return apperrors.WithMetadata(apperrors.CodeUnknownCareer,
		fmt.Sprintf("unknown career %q", name),
		map[string]string{"Career": name})
}

func unknownCharacteristic(key string) error {
	return apperrors.WithMetadata(apperrors.CodeUnknownCharacteristic,
		fmt.Sprintf("unknown characteristic %q", key),
		map[string]string{"Characteristic": key})
}

func unknownSkillTable(name string) error {
	return apperrors.WithMetadata(apperrors.CodeUnknownSkillTable,
		fmt.Sprintf("unknown skill table %q", name),
		map[string]string{"Table": name})
}

func phaseMismatch(expected, requested Phase) error {
	return apperrors.WithMetadata(apperrors.CodePhaseMismatch,
		fmt.Sprintf("term is in %s phase, not %s", expected, requested),
		map[string]string{"Expected": string(expected), "Requested": string(requested)})
}

func invalidCharacter(format string, args ...any) error {
	return apperrors.Wrap(apperrors.CodeSnapshotInvalid, "character record is invalid", fmt.Errorf(format, args...))
}
