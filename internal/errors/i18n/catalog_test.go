package i18n

import "testing"

func TestGetCatalogFallback(t *testing.T) {
	base := GetCatalog("en-US")
	if base == nil {
		t.Fatal("expected base catalog")
	}
	if base.Locale() != "en-US" {
		t.Fatalf("locale = %s", base.Locale())
	}
	if GetCatalog("not-a-locale") != base {
		t.Fatal("expected fallback to en-US catalog for malformed locales")
	}
	if GetCatalog("pt-BR") != base {
		t.Fatal("expected fallback to en-US catalog for unknown locales")
	}
}

func TestFormatSubstitutesMetadata(t *testing.T) {
	cat := GetCatalog("en-US")
	got := cat.Format(CodeRoundPlayerUnknown, map[string]string{"PlayerID": "p3"})
	if got != "Player p3 is not part of this round" {
		t.Fatalf("formatted = %q", got)
	}
}

func TestFormatWithoutMetadataKeepsPlaceholders(t *testing.T) {
	cat := GetCatalog("en-US")
	got := cat.Format(CodeRoundPlayerUnknown, nil)
	if got != "Player {{.PlayerID}} is not part of this round" {
		t.Fatalf("formatted = %q", got)
	}
}

func TestFormatUnknownCodeFallsBack(t *testing.T) {
	cat := GetCatalog("en-US")
	if got := cat.Format("NO_SUCH_CODE", nil); got != fallbackMessage {
		t.Fatalf("formatted = %q", got)
	}
}

func TestCatalogCoversAllCodes(t *testing.T) {
	codes := []Code{
		CodeRoundPlayerCountInvalid,
		CodeRoundDuplicatePlayer,
		CodeRoundHandicapNegative,
		CodeRoundPlayerUnknown,
		CodeRoundCourseInvalid,
		CodeTeamInvalidTransition,
		CodeTeamFormationClosed,
		CodeTeamCandidateInvalid,
		CodeTeamAardvarkUnexpected,
		CodeWagerClosed,
		CodeWagerPrivilegeExhausted,
		CodeWagerPositionalRestriction,
		CodeWagerInvalidOffer,
		CodeWagerDoublePending,
		CodeWagerNoPendingDouble,
		CodeWagerOptionUnavailable,
		CodeWagerJoesSpecialValue,
		CodeScoreMissingPlayer,
		CodeScoreUnknownPlayer,
		CodeScoreAlreadySubmitted,
		CodeScoreFormationIncomplete,
		CodePhasePlayerCountUnsupported,
		CodePhaseOperationUnavailable,
		CodeSessionHalted,
		CodeSessionComplete,
		CodeSessionHoleUnresolved,
		CodeSessionHoleResolved,
		CodeInvariantViolation,
		CodeNotFound,
	}
	for _, code := range codes {
		if _, ok := enUSCatalog.messages[code]; !ok {
			t.Fatalf("en-US catalog is missing %s", code)
		}
	}
}
