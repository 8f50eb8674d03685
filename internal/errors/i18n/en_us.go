package i18n

import "golang.org/x/text/language"

// Error codes must match the codes defined in internal/errors/codes.go.
const (
	CodeRoundPlayerCountInvalid = "ROUND_PLAYER_COUNT_INVALID"
	CodeRoundDuplicatePlayer    = "ROUND_DUPLICATE_PLAYER"
	CodeRoundHandicapNegative   = "ROUND_HANDICAP_NEGATIVE"
	CodeRoundPlayerUnknown      = "ROUND_PLAYER_UNKNOWN"
	CodeRoundCourseInvalid      = "ROUND_COURSE_INVALID"

	CodeTeamInvalidTransition  = "TEAM_INVALID_TRANSITION"
	CodeTeamFormationClosed    = "TEAM_FORMATION_CLOSED"
	CodeTeamCandidateInvalid   = "TEAM_CANDIDATE_INVALID"
	CodeTeamAardvarkUnexpected = "TEAM_AARDVARK_UNEXPECTED"

	CodeWagerClosed                = "WAGER_CLOSED"
	CodeWagerPrivilegeExhausted    = "WAGER_PRIVILEGE_EXHAUSTED"
	CodeWagerPositionalRestriction = "WAGER_POSITIONAL_RESTRICTION"
	CodeWagerInvalidOffer          = "WAGER_INVALID_OFFER"
	CodeWagerDoublePending         = "WAGER_DOUBLE_PENDING"
	CodeWagerNoPendingDouble       = "WAGER_NO_PENDING_DOUBLE"
	CodeWagerOptionUnavailable     = "WAGER_OPTION_UNAVAILABLE"
	CodeWagerJoesSpecialValue      = "WAGER_JOES_SPECIAL_VALUE"

	CodeScoreMissingPlayer       = "SCORE_MISSING_PLAYER"
	CodeScoreUnknownPlayer       = "SCORE_UNKNOWN_PLAYER"
	CodeScoreAlreadySubmitted    = "SCORE_ALREADY_SUBMITTED"
	CodeScoreFormationIncomplete = "SCORE_FORMATION_INCOMPLETE"

	CodePhasePlayerCountUnsupported = "PHASE_PLAYER_COUNT_UNSUPPORTED"
	CodePhaseOperationUnavailable   = "PHASE_OPERATION_UNAVAILABLE"

	CodeSessionHalted         = "SESSION_HALTED"
	CodeSessionComplete       = "SESSION_COMPLETE"
	CodeSessionHoleUnresolved = "SESSION_HOLE_UNRESOLVED"
	CodeSessionHoleResolved   = "SESSION_HOLE_RESOLVED"

	CodeInvariantViolation = "INVARIANT_VIOLATION"
	CodeNotFound           = "NOT_FOUND"
)

var enUSCatalog = &Catalog{
	locale: "en-US",
	tag:    language.AmericanEnglish,
	messages: map[Code]string{
		// Round setup errors
		CodeRoundPlayerCountInvalid: "A round needs between 4 and 6 players, got {{.Count}}",
		CodeRoundDuplicatePlayer:    "Player {{.PlayerID}} appears more than once",
		CodeRoundHandicapNegative:   "Handicap for {{.PlayerID}} cannot be negative",
		CodeRoundPlayerUnknown:      "Player {{.PlayerID}} is not part of this round",
		CodeRoundCourseInvalid:      "Course data is invalid: {{.Reason}}",

		// Team formation errors
		CodeTeamInvalidTransition:  "That team action is not available right now",
		CodeTeamFormationClosed:    "Teams are locked once play is underway",
		CodeTeamCandidateInvalid:   "{{.PlayerID}} cannot be invited to a team",
		CodeTeamAardvarkUnexpected: "There is no aardvark in this game",

		// Wager errors
		CodeWagerClosed:                "Betting is closed for this hole",
		CodeWagerPrivilegeExhausted:    "{{.PlayerID}} has already used the {{.Privilege}} this round",
		CodeWagerPositionalRestriction: "You cannot double from behind the line of scrimmage",
		CodeWagerInvalidOffer:          "That wager offer is not valid",
		CodeWagerDoublePending:         "A double offer is already on the table",
		CodeWagerNoPendingDouble:       "There is no double offer to respond to",
		CodeWagerOptionUnavailable:     "The option is not in play on this hole",
		CodeWagerJoesSpecialValue:      "Joe's special must be set to {{.Allowed}} quarters",

		// Scoring errors
		CodeScoreMissingPlayer:       "Missing a score for {{.PlayerID}}",
		CodeScoreUnknownPlayer:       "Got a score for {{.PlayerID}}, who is not playing this hole",
		CodeScoreAlreadySubmitted:    "Scores for this hole are already in",
		CodeScoreFormationIncomplete: "Teams must be settled before scores go in",

		// Phase errors
		CodePhasePlayerCountUnsupported: "Games with {{.Count}} players are not supported",
		CodePhaseOperationUnavailable:   "That action only applies during {{.Phase}}",

		// Session errors
		CodeSessionHalted:         "This round has been halted and can no longer change",
		CodeSessionComplete:       "This round is over",
		CodeSessionHoleUnresolved: "Finish the current hole first",
		CodeSessionHoleResolved:   "This hole has already been decided",

		// Internal defects
		CodeInvariantViolation: "Something went wrong settling the hole; the round is frozen",
		CodeNotFound:           "Not found",
	},
}
