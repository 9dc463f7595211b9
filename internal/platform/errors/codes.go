// Package errors provides structured error handling with i18n support.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Event date errors
	CodeDateInvalidStart      Code = "DATE_INVALID_START"
	CodeDateInvalidEnd        Code = "DATE_INVALID_END"
	CodeDateEndBeforeStart    Code = "DATE_END_BEFORE_START"
	CodeDateEndInPast         Code = "DATE_END_IN_PAST"
	CodeDateDurationTooShort  Code = "DATE_DURATION_TOO_SHORT"
	CodeDateStartInPast       Code = "DATE_START_IN_PAST"
	CodeDateDurationLong      Code = "DATE_DURATION_LONG"
	CodeDateStartFarFuture    Code = "DATE_START_FAR_FUTURE"
	CodeDateEventEnded        Code = "DATE_EVENT_ENDED"
	CodeDateStartFrozen       Code = "DATE_START_FROZEN"
	CodeDateEndShortened      Code = "DATE_END_SHORTENED"
	CodeDateStatusLocked      Code = "DATE_STATUS_LOCKED"

	// Timeline errors
	CodeTimelineWindowInverted       Code = "TIMELINE_WINDOW_INVERTED"
	CodeTimelineWindowOutsideEvent   Code = "TIMELINE_WINDOW_OUTSIDE_EVENT"
	CodeTimelineWindowOverlap        Code = "TIMELINE_WINDOW_OVERLAP"
	CodeTimelineResultsBeforeJudging Code = "TIMELINE_RESULTS_BEFORE_JUDGING"

	// Team errors
	CodeTeamNameLength          Code = "TEAM_NAME_LENGTH"
	CodeTeamInvalidSize         Code = "TEAM_INVALID_SIZE"
	CodeTeamSizeAboveLimit      Code = "TEAM_SIZE_ABOVE_LIMIT"
	CodeTeamSingleMember        Code = "TEAM_SINGLE_MEMBER"
	CodeTeamRequesterHasTeam    Code = "TEAM_REQUESTER_HAS_TEAM"
	CodeTeamAlreadyMember       Code = "TEAM_ALREADY_MEMBER"
	CodeTeamFull                Code = "TEAM_FULL"
	CodeTeamDisbanded           Code = "TEAM_DISBANDED"
	CodeTeamLastSlot            Code = "TEAM_LAST_SLOT"
	CodeTeamLeaderCannotLeave   Code = "TEAM_LEADER_CANNOT_LEAVE"
	CodeTeamNotMember           Code = "TEAM_NOT_MEMBER"
	CodeTeamSubmissionLocked    Code = "TEAM_SUBMISSION_LOCKED"
	CodeTeamEventEnded          Code = "TEAM_EVENT_ENDED"
	CodeTeamJudgingUnderway     Code = "TEAM_JUDGING_UNDERWAY"
	CodeTeamLeaderRequired      Code = "TEAM_LEADER_REQUIRED"
	CodeTeamHasSubmission       Code = "TEAM_HAS_SUBMISSION"
	CodeTeamMembersRemoved      Code = "TEAM_MEMBERS_REMOVED"
	CodeTeamSelfTransfer        Code = "TEAM_SELF_TRANSFER"
	CodeTeamTransferTarget      Code = "TEAM_TRANSFER_TARGET_INVALID"
	CodeTeamInvalidInviteEmail  Code = "TEAM_INVALID_INVITE_EMAIL"
	CodeTeamInvitePending       Code = "TEAM_INVITE_PENDING"
	CodeTeamInviteOverCapacity  Code = "TEAM_INVITE_OVER_CAPACITY"
	CodeTeamSizeExceeded        Code = "TEAM_SIZE_EXCEEDED"
	CodeTeamLeaderCount         Code = "TEAM_LEADER_COUNT"
	CodeTeamRosterRequired      Code = "TEAM_ROSTER_REQUIRED"

	// Submission errors
	CodeSubmissionNotOpen             Code = "SUBMISSION_NOT_OPEN"
	CodeSubmissionClosed              Code = "SUBMISSION_CLOSED"
	CodeSubmissionReadOnly            Code = "SUBMISSION_READ_ONLY"
	CodeSubmissionClosedByOrganizer   Code = "SUBMISSION_CLOSED_BY_ORGANIZER"
	CodeSubmissionEventEnded          Code = "SUBMISSION_EVENT_ENDED"
	CodeSubmissionClosingSoon         Code = "SUBMISSION_CLOSING_SOON"
	CodeSubmissionNameLength          Code = "SUBMISSION_NAME_LENGTH"
	CodeSubmissionDescriptionLength   Code = "SUBMISSION_DESCRIPTION_LENGTH"
	CodeSubmissionURLInvalid          Code = "SUBMISSION_URL_INVALID"
	CodeSubmissionURLScheme           Code = "SUBMISSION_URL_SCHEME"
	CodeSubmissionURLTooLong          Code = "SUBMISSION_URL_TOO_LONG"
	CodeSubmissionURLPrivateHost      Code = "SUBMISSION_URL_PRIVATE_HOST"
	CodeSubmissionURLProvider         Code = "SUBMISSION_URL_PROVIDER_MISMATCH"
	CodeSubmissionTooManyTechnologies Code = "SUBMISSION_TOO_MANY_TECHNOLOGIES"
	CodeSubmissionEmptyTechnology     Code = "SUBMISSION_EMPTY_TECHNOLOGY"
	CodeSubmissionDuplicateTechnology Code = "SUBMISSION_DUPLICATE_TECHNOLOGY"
	CodeSubmissionPlaceholder         Code = "SUBMISSION_PLACEHOLDER_CONTENT"
	CodeSubmissionLeaderRequired      Code = "SUBMISSION_LEADER_REQUIRED"
	CodeSubmissionOwnerConflict       Code = "SUBMISSION_OWNER_CONFLICT"
	CodeSubmissionOwnerMissing        Code = "SUBMISSION_OWNER_MISSING"
	CodeSubmissionDisqualified        Code = "SUBMISSION_DISQUALIFIED"
	CodeSubmissionInvalidTransition   Code = "SUBMISSION_INVALID_TRANSITION"
	CodeSubmissionWithdrawn           Code = "SUBMISSION_WITHDRAWN"
	CodeSubmissionInitialStatus       Code = "SUBMISSION_INITIAL_STATUS"

	// Judging errors
	CodeScoreNotNumber          Code = "SCORE_NOT_NUMBER"
	CodeScoreOutOfRange         Code = "SCORE_OUT_OF_RANGE"
	CodeScorePrecision          Code = "SCORE_PRECISION"
	CodeScoreExtreme            Code = "SCORE_EXTREME"
	CodeScoreRequiredMissing    Code = "SCORE_REQUIRED_MISSING"
	CodeScoreUnknownCriterion   Code = "SCORE_UNKNOWN_CRITERION"
	CodeFeedbackTooLong         Code = "FEEDBACK_TOO_LONG"
	CodeFeedbackFlagged         Code = "FEEDBACK_FLAGGED"
	CodeOverallOutOfRange       Code = "OVERALL_SCORE_OUT_OF_RANGE"
	CodeOverallDivergence       Code = "OVERALL_SCORE_DIVERGENCE"
	CodeCriterionInvalidRange   Code = "CRITERION_INVALID_RANGE"
	CodeCriterionInvalidWeight  Code = "CRITERION_INVALID_WEIGHT"
	CodeCriterionDuplicate      Code = "CRITERION_DUPLICATE"
	CodeCriteriaEmpty           Code = "CRITERIA_EMPTY"
	CodeBatchEmpty              Code = "SCORE_BATCH_EMPTY"
	CodeBatchTooLarge           Code = "SCORE_BATCH_TOO_LARGE"
	CodeBatchDuplicate          Code = "SCORE_BATCH_DUPLICATE"
	CodeBatchMissingSubmission  Code = "SCORE_BATCH_MISSING_SUBMISSION"

	// Account errors
	CodeAccountOwnsEvents          Code = "ACCOUNT_OWNS_EVENTS"
	CodeAccountLeadsTeam           Code = "ACCOUNT_LEADS_TEAM"
	CodeAccountIsAdmin             Code = "ACCOUNT_IS_ADMIN"
	CodeAccountOrganizerDuties     Code = "ACCOUNT_ORGANIZER_DUTIES"
	CodeAccountRegistrationsCancel Code = "ACCOUNT_REGISTRATIONS_CANCELLED"
	CodeAccountSubmissionsAnon     Code = "ACCOUNT_SUBMISSIONS_ANONYMIZED"
	CodeAccountJudgeRemoved        Code = "ACCOUNT_JUDGE_ASSIGNMENTS_REMOVED"
	CodeAccountCoOrganizerRemoved  Code = "ACCOUNT_CO_ORGANIZER_ROLES_REMOVED"
	CodeRoleRevokeForbidden        Code = "ROLE_REVOKE_FORBIDDEN"
	CodeRoleRevokeSelf             Code = "ROLE_REVOKE_SELF"
	CodeRoleTargetMismatch         Code = "ROLE_TARGET_MISMATCH"
	CodeRoleLastAdmin              Code = "ROLE_LAST_ADMIN"
	CodeRoleOwnsEvents             Code = "ROLE_OWNS_EVENTS"
	CodeRoleCoOrganizer            Code = "ROLE_CO_ORGANIZER"
	CodeOwnershipForbidden         Code = "OWNERSHIP_FORBIDDEN"
	CodeOwnershipSameOwner         Code = "OWNERSHIP_SAME_OWNER"
	CodeOwnershipRecipientRole     Code = "OWNERSHIP_RECIPIENT_ROLE"
	CodeOwnershipRecipientMissing  Code = "OWNERSHIP_RECIPIENT_MISSING"

	// Email errors
	CodeEmailInvalid       Code = "EMAIL_INVALID"
	CodeEmailDisposable    Code = "EMAIL_DISPOSABLE"
	CodeEmailUndeliverable Code = "EMAIL_UNDELIVERABLE"
	CodeEmailRoleAddress   Code = "EMAIL_ROLE_ADDRESS"

	// Admission errors
	CodeRateLimited Code = "RATE_LIMITED"
)

var knownCodes = []Code{
	CodeDateInvalidStart, CodeDateInvalidEnd, CodeDateEndBeforeStart, CodeDateEndInPast,
	CodeDateDurationTooShort, CodeDateStartInPast, CodeDateDurationLong, CodeDateStartFarFuture,
	CodeDateEventEnded, CodeDateStartFrozen, CodeDateEndShortened, CodeDateStatusLocked,
	CodeTimelineWindowInverted, CodeTimelineWindowOutsideEvent, CodeTimelineWindowOverlap,
	CodeTimelineResultsBeforeJudging,

	CodeTeamNameLength, CodeTeamInvalidSize, CodeTeamSizeAboveLimit, CodeTeamSingleMember,
	CodeTeamRequesterHasTeam, CodeTeamAlreadyMember, CodeTeamFull, CodeTeamDisbanded,
	CodeTeamLastSlot, CodeTeamLeaderCannotLeave, CodeTeamNotMember, CodeTeamSubmissionLocked,
	CodeTeamEventEnded, CodeTeamJudgingUnderway, CodeTeamLeaderRequired, CodeTeamHasSubmission,
	CodeTeamMembersRemoved, CodeTeamSelfTransfer, CodeTeamTransferTarget, CodeTeamInvalidInviteEmail,
	CodeTeamInvitePending, CodeTeamInviteOverCapacity, CodeTeamSizeExceeded, CodeTeamLeaderCount,
	CodeTeamRosterRequired,

	CodeSubmissionNotOpen, CodeSubmissionClosed, CodeSubmissionReadOnly, CodeSubmissionClosedByOrganizer,
	CodeSubmissionEventEnded, CodeSubmissionClosingSoon, CodeSubmissionNameLength,
	CodeSubmissionDescriptionLength, CodeSubmissionURLInvalid, CodeSubmissionURLScheme,
	CodeSubmissionURLTooLong, CodeSubmissionURLPrivateHost, CodeSubmissionURLProvider,
	CodeSubmissionTooManyTechnologies, CodeSubmissionEmptyTechnology, CodeSubmissionDuplicateTechnology,
	CodeSubmissionPlaceholder, CodeSubmissionLeaderRequired, CodeSubmissionOwnerConflict,
	CodeSubmissionOwnerMissing, CodeSubmissionDisqualified, CodeSubmissionInvalidTransition,
	CodeSubmissionWithdrawn, CodeSubmissionInitialStatus,

	CodeScoreNotNumber, CodeScoreOutOfRange, CodeScorePrecision, CodeScoreExtreme,
	CodeScoreRequiredMissing, CodeScoreUnknownCriterion, CodeFeedbackTooLong, CodeFeedbackFlagged,
	CodeOverallOutOfRange, CodeOverallDivergence, CodeCriterionInvalidRange, CodeCriterionInvalidWeight,
	CodeCriterionDuplicate, CodeCriteriaEmpty, CodeBatchEmpty, CodeBatchTooLarge, CodeBatchDuplicate,
	CodeBatchMissingSubmission,

	CodeAccountOwnsEvents, CodeAccountLeadsTeam, CodeAccountIsAdmin, CodeAccountOrganizerDuties,
	CodeAccountRegistrationsCancel, CodeAccountSubmissionsAnon, CodeAccountJudgeRemoved,
	CodeAccountCoOrganizerRemoved, CodeRoleRevokeForbidden, CodeRoleRevokeSelf, CodeRoleTargetMismatch,
	CodeRoleLastAdmin, CodeRoleOwnsEvents, CodeRoleCoOrganizer, CodeOwnershipForbidden,
	CodeOwnershipSameOwner, CodeOwnershipRecipientRole, CodeOwnershipRecipientMissing,

	CodeEmailInvalid, CodeEmailDisposable, CodeEmailUndeliverable, CodeEmailRoleAddress,

	CodeRateLimited,
}

// KnownCodes returns every code emitted by the lifecycle guards.
func KnownCodes() []Code {
	out := make([]Code, len(knownCodes))
	copy(out, knownCodes)
	return out
}

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// FailedPrecondition - lifecycle state doesn't allow operation
	case CodeDateEventEnded,
		CodeDateStartFrozen,
		CodeDateEndShortened,
		CodeDateStatusLocked,
		CodeTeamFull,
		CodeTeamDisbanded,
		CodeTeamRequesterHasTeam,
		CodeTeamAlreadyMember,
		CodeTeamLeaderCannotLeave,
		CodeTeamSubmissionLocked,
		CodeTeamEventEnded,
		CodeTeamSizeExceeded,
		CodeTeamLeaderCount,
		CodeSubmissionNotOpen,
		CodeSubmissionClosed,
		CodeSubmissionReadOnly,
		CodeSubmissionClosedByOrganizer,
		CodeSubmissionEventEnded,
		CodeSubmissionDisqualified,
		CodeSubmissionInvalidTransition,
		CodeAccountOwnsEvents,
		CodeAccountLeadsTeam,
		CodeAccountIsAdmin,
		CodeAccountOrganizerDuties,
		CodeRoleOwnsEvents,
		CodeEmailUndeliverable:
		return codes.FailedPrecondition

	// PermissionDenied - actor lacks authority for the operation
	case CodeTeamLeaderRequired,
		CodeTeamNotMember,
		CodeSubmissionLeaderRequired,
		CodeRoleRevokeForbidden,
		CodeRoleRevokeSelf,
		CodeOwnershipForbidden:
		return codes.PermissionDenied

	// ResourceExhausted - admission gate refused
	case CodeRateLimited:
		return codes.ResourceExhausted

	case CodeUnknown:
		return codes.Internal
	}

	for _, known := range knownCodes {
		if known == c {
			return codes.InvalidArgument
		}
	}
	return codes.Internal
}
