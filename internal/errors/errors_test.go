package errors

import (
	"errors"
	"fmt"
	"testing"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestErrorMatchesByCode(t *testing.T) {
	err := New(CodeWagerClosed, "the betting window is shut")
	if !errors.Is(err, New(CodeWagerClosed, "different message")) {
		t.Fatal("errors with the same code should match")
	}
	if errors.Is(err, New(CodeWagerInvalidOffer, "the betting window is shut")) {
		t.Fatal("errors with different codes should not match")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := Wrap(CodeInvariantViolation, "append failed", cause)
	if !errors.Is(err, cause) {
		t.Fatal("wrapped cause should be reachable via errors.Is")
	}
	if err.Error() != "append failed" {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"nil", nil, CodeUnknown},
		{"plain error", fmt.Errorf("boom"), CodeUnknown},
		{"domain error", New(CodeSessionComplete, "round is over"), CodeSessionComplete},
		{"wrapped domain error", fmt.Errorf("op: %w", New(CodeWagerClosed, "shut")), CodeWagerClosed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.want {
				t.Fatalf("GetCode = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestIsCode(t *testing.T) {
	err := WithMetadata(CodeRoundPlayerUnknown, "no such player",
		map[string]string{"PlayerID": "p9"})
	if !IsCode(err, CodeRoundPlayerUnknown) {
		t.Fatal("expected code match")
	}
	if IsCode(nil, CodeRoundPlayerUnknown) {
		t.Fatal("nil error must not match any code")
	}
}

func TestGetMetadata(t *testing.T) {
	err := WithMetadata(CodeRoundPlayerUnknown, "no such player",
		map[string]string{"PlayerID": "p9"})
	meta := GetMetadata(err)
	if meta["PlayerID"] != "p9" {
		t.Fatalf("metadata = %v", meta)
	}
	if GetMetadata(fmt.Errorf("boom")) != nil {
		t.Fatal("plain errors carry no metadata")
	}
}

func TestGRPCCodeMapping(t *testing.T) {
	tests := []struct {
		code Code
		want codes.Code
	}{
		{CodeRoundPlayerCountInvalid, codes.InvalidArgument},
		{CodeWagerInvalidOffer, codes.InvalidArgument},
		{CodeWagerClosed, codes.FailedPrecondition},
		{CodeSessionHalted, codes.FailedPrecondition},
		{CodeNotFound, codes.NotFound},
		{CodeInvariantViolation, codes.Internal},
		{CodeUnknown, codes.Internal},
	}
	for _, tt := range tests {
		if got := tt.code.GRPCCode(); got != tt.want {
			t.Fatalf("%s maps to %s, want %s", tt.code, got, tt.want)
		}
	}
}

func TestHandleErrorBuildsLocalizedStatus(t *testing.T) {
	err := WithMetadata(CodeRoundPlayerUnknown, "no such player",
		map[string]string{"PlayerID": "p9"})

	st, ok := status.FromError(HandleError(err, ""))
	if !ok {
		t.Fatal("expected a grpc status")
	}
	if st.Code() != codes.InvalidArgument {
		t.Fatalf("status code = %s", st.Code())
	}
	if st.Message() != "no such player" {
		t.Fatalf("status message = %q", st.Message())
	}

	var info *errdetails.ErrorInfo
	var localized *errdetails.LocalizedMessage
	for _, detail := range st.Details() {
		switch d := detail.(type) {
		case *errdetails.ErrorInfo:
			info = d
		case *errdetails.LocalizedMessage:
			localized = d
		}
	}
	if info == nil || info.Reason != string(CodeRoundPlayerUnknown) || info.Domain != Domain {
		t.Fatalf("error info = %+v", info)
	}
	if info.Metadata["PlayerID"] != "p9" {
		t.Fatalf("error info metadata = %v", info.Metadata)
	}
	if localized == nil || localized.Locale != "en-US" {
		t.Fatalf("localized message = %+v", localized)
	}
	if localized.Message != "Player p9 is not part of this round" {
		t.Fatalf("localized text = %q", localized.Message)
	}
}

func TestHandleErrorUnknown(t *testing.T) {
	st, ok := status.FromError(HandleError(fmt.Errorf("boom"), "en-US"))
	if !ok {
		t.Fatal("expected a grpc status")
	}
	if st.Code() != codes.Internal {
		t.Fatalf("status code = %s", st.Code())
	}
	if len(st.Details()) != 0 {
		t.Fatal("unknown errors carry no details")
	}
}

func TestHandleErrorNil(t *testing.T) {
	if HandleError(nil, "en-US") != nil {
		t.Fatal("nil in, nil out")
	}
}
