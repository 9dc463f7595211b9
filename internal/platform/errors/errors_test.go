package errors

import (
	"errors"
	"fmt"
	"testing"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	err := WithMetadata(CodeTeamFull, "team is full", map[string]string{"TeamID": "t1"})
	if !errors.Is(err, WithMetadata(CodeTeamFull, "other message", nil)) {
		t.Fatal("expected errors.Is to match on code")
	}
	if errors.Is(err, WithMetadata(CodeTeamDisbanded, "team is full", nil)) {
		t.Fatal("expected different codes not to match")
	}
	if errors.Is(err, fmt.Errorf("team is full")) {
		t.Fatal("expected plain error not to match")
	}
}

func TestGRPCCodeMapping(t *testing.T) {
	tests := []struct {
		code Code
		want codes.Code
	}{
		{CodeDateEndBeforeStart, codes.InvalidArgument},
		{CodeScoreOutOfRange, codes.InvalidArgument},
		{CodeSubmissionClosed, codes.FailedPrecondition},
		{CodeTeamFull, codes.FailedPrecondition},
		{CodeAccountOwnsEvents, codes.FailedPrecondition},
		{CodeTeamLeaderRequired, codes.PermissionDenied},
		{CodeRoleRevokeSelf, codes.PermissionDenied},
		{CodeRateLimited, codes.ResourceExhausted},
		{CodeUnknown, codes.Internal},
		{Code("NOT_A_CODE"), codes.Internal},
	}
	for _, tt := range tests {
		if got := tt.code.GRPCCode(); got != tt.want {
			t.Fatalf("GRPCCode(%s) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestKnownCodesAreUnique(t *testing.T) {
	seen := map[Code]bool{}
	for _, code := range KnownCodes() {
		if seen[code] {
			t.Fatalf("duplicate code %s", code)
		}
		seen[code] = true
	}
	if len(seen) == 0 {
		t.Fatal("expected known codes")
	}
}

func TestToGRPCStatusAttachesDetails(t *testing.T) {
	err := WithMetadata(CodeSubmissionReadOnly, "submission period has ended", map[string]string{"Field": "submission"})
	grpcErr := err.ToGRPCStatus("pt-BR", "O período de envio terminou")

	st, ok := status.FromError(grpcErr)
	if !ok {
		t.Fatal("expected grpc status")
	}
	if st.Code() != codes.FailedPrecondition {
		t.Fatalf("code = %v, want FailedPrecondition", st.Code())
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
	if info == nil || info.Reason != string(CodeSubmissionReadOnly) || info.Domain != Domain {
		t.Fatalf("unexpected error info: %+v", info)
	}
	if localized == nil || localized.Locale != "pt-BR" {
		t.Fatalf("unexpected localized message: %+v", localized)
	}
}
