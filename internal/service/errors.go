package service

import (
	"github.com/sanisamoj/Borai-sub000/internal/pkg/apperr"
)

var (
	ErrPresenceAlreadyMarked    = apperr.New(apperr.KindAlreadyExists, "presence already marked")
	ErrUserAlreadyVoted         = apperr.New(apperr.KindAlreadyExists, "user already voted")
	ErrUserHasAlreadyUpvoted    = apperr.New(apperr.KindAlreadyExists, "user has already upvoted")
	ErrFollowRequestAlreadySent = apperr.New(apperr.KindAlreadyExists, "follow request already sent")
	ErrAlreadyFollowing         = apperr.New(apperr.KindAlreadyExists, "already following")
	ErrNickAlreadyInUse         = apperr.New(apperr.KindAlreadyExists, "nick already in use")
	ErrInsigniaAlreadyExists    = apperr.New(apperr.KindAlreadyExists, "insignia already exists")

	ErrUserNotFound          = apperr.New(apperr.KindNotFound, "user not found")
	ErrEventNotFound         = apperr.New(apperr.KindNotFound, "event not found")
	ErrCommentNotFound       = apperr.New(apperr.KindNotFound, "comment not found")
	ErrInsigniaNotFound      = apperr.New(apperr.KindNotFound, "insignia not found")
	ErrPresenceNotFound      = apperr.New(apperr.KindNotFound, "unable to complete: presence not found")
	ErrFollowRequestNotFound = apperr.New(apperr.KindNotFound, "follow request not found")
	ErrInsigniaNotVisible    = apperr.New(apperr.KindNotFound, "insignia is not visible")

	ErrEventNotEnded                         = apperr.New(apperr.KindInvalidState, "event not ended")
	ErrCommentsCannotExceedLevelOneResponses = apperr.New(apperr.KindInvalidState, "comments cannot exceed level one responses")
	ErrVisibleLimitReached                   = apperr.New(apperr.KindInvalidState, "visible insignias limit reached")
	ErrCannotRemoveUpIfNotMade               = apperr.New(apperr.KindInvalidState, "cannot remove up if not made")
	ErrUserDidNotAttendEvent                 = apperr.New(apperr.KindInvalidState, "user did not attend event")

	ErrCommentNotOwned = apperr.New(apperr.KindUnauthorized, "unable to complete: comment belongs to another user")
	ErrNotOwned        = apperr.New(apperr.KindUnauthorized, "insignia not owned")
	ErrNotEventCreator = apperr.New(apperr.KindUnauthorized, "only the event creator can do this")
	ErrAdminOnly       = apperr.New(apperr.KindUnauthorized, "admin only")

	ErrInvalidRating         = apperr.New(apperr.KindInvalidInput, "rating must be between 1 and 5")
	ErrUnknownCriteria       = apperr.New(apperr.KindInvalidInput, "unknown insignia criteria")
	ErrInvalidPoints         = apperr.New(apperr.KindInvalidInput, "points must be greater than zero")
	ErrCannotFollowYourself  = apperr.New(apperr.KindInvalidInput, "cannot follow yourself")
	ErrInvalidPage           = apperr.New(apperr.KindInvalidInput, "invalid page")
	ErrInvalidEventStatus    = apperr.New(apperr.KindInvalidInput, "invalid event status")
	ErrInvalidPresenceStatus = apperr.New(apperr.KindInvalidInput, "invalid presence status")
)
