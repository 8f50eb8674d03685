// Package errors provides structured error handling with i18n support.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Round setup errors
	CodeRoundPlayerCountInvalid Code = "ROUND_PLAYER_COUNT_INVALID"
	CodeRoundDuplicatePlayer    Code = "ROUND_DUPLICATE_PLAYER"
	CodeRoundHandicapNegative   Code = "ROUND_HANDICAP_NEGATIVE"
	CodeRoundPlayerUnknown      Code = "ROUND_PLAYER_UNKNOWN"
	CodeRoundCourseInvalid      Code = "ROUND_COURSE_INVALID"

	// Team formation errors
	CodeTeamInvalidTransition  Code = "TEAM_INVALID_TRANSITION"
	CodeTeamFormationClosed    Code = "TEAM_FORMATION_CLOSED"
	CodeTeamCandidateInvalid   Code = "TEAM_CANDIDATE_INVALID"
	CodeTeamAardvarkUnexpected Code = "TEAM_AARDVARK_UNEXPECTED"

	// Wager errors
	CodeWagerClosed                Code = "WAGER_CLOSED"
	CodeWagerPrivilegeExhausted    Code = "WAGER_PRIVILEGE_EXHAUSTED"
	CodeWagerPositionalRestriction Code = "WAGER_POSITIONAL_RESTRICTION"
	CodeWagerInvalidOffer          Code = "WAGER_INVALID_OFFER"
	CodeWagerDoublePending         Code = "WAGER_DOUBLE_PENDING"
	CodeWagerNoPendingDouble       Code = "WAGER_NO_PENDING_DOUBLE"
	CodeWagerOptionUnavailable     Code = "WAGER_OPTION_UNAVAILABLE"
	CodeWagerJoesSpecialValue      Code = "WAGER_JOES_SPECIAL_VALUE"

	// Scoring errors
	CodeScoreMissingPlayer       Code = "SCORE_MISSING_PLAYER"
	CodeScoreUnknownPlayer       Code = "SCORE_UNKNOWN_PLAYER"
	CodeScoreAlreadySubmitted    Code = "SCORE_ALREADY_SUBMITTED"
	CodeScoreFormationIncomplete Code = "SCORE_FORMATION_INCOMPLETE"

	// Phase errors
	CodePhasePlayerCountUnsupported Code = "PHASE_PLAYER_COUNT_UNSUPPORTED"
	CodePhaseOperationUnavailable   Code = "PHASE_OPERATION_UNAVAILABLE"

	// Session errors
	CodeSessionHalted         Code = "SESSION_HALTED"
	CodeSessionComplete       Code = "SESSION_COMPLETE"
	CodeSessionHoleUnresolved Code = "SESSION_HOLE_UNRESOLVED"
	CodeSessionHoleResolved   Code = "SESSION_HOLE_RESOLVED"

	// Internal defects
	CodeInvariantViolation Code = "INVARIANT_VIOLATION"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeRoundPlayerCountInvalid,
		CodeRoundDuplicatePlayer,
		CodeRoundHandicapNegative,
		CodeRoundPlayerUnknown,
		CodeRoundCourseInvalid,
		CodeTeamCandidateInvalid,
		CodeWagerInvalidOffer,
		CodeWagerJoesSpecialValue,
		CodeScoreMissingPlayer,
		CodeScoreUnknownPlayer,
		CodePhasePlayerCountUnsupported:
		return codes.InvalidArgument

	// FailedPrecondition - state doesn't allow operation
	case CodeTeamInvalidTransition,
		CodeTeamFormationClosed,
		CodeTeamAardvarkUnexpected,
		CodeWagerClosed,
		CodeWagerPrivilegeExhausted,
		CodeWagerPositionalRestriction,
		CodeWagerDoublePending,
		CodeWagerNoPendingDouble,
		CodeWagerOptionUnavailable,
		CodeScoreAlreadySubmitted,
		CodeScoreFormationIncomplete,
		CodePhaseOperationUnavailable,
		CodeSessionHalted,
		CodeSessionComplete,
		CodeSessionHoleUnresolved,
		CodeSessionHoleResolved:
		return codes.FailedPrecondition

	// NotFound - resource doesn't exist
	case CodeNotFound:
		return codes.NotFound

	default:
		return codes.Internal
	}
}
