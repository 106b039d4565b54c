package order

import (
	"fmt"
	"strings"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/apperr"
)

var (
	ErrInvalidStatus        = fmt.Errorf("%w: status must be one of Pending, Confirmed, Shipped", apperr.ErrInvalid)
	ErrTransitionNotAllowed = fmt.Errorf("%w: status change not allowed", apperr.ErrConflict)
)

// TransitionPolicy decides which status changes an admin may make.
type TransitionPolicy interface {
	Allow(from, to Status) bool
}

// PermissivePolicy allows any status to follow any other, including moving
// a shipped order back to pending.
type PermissivePolicy struct{}

func (PermissivePolicy) Allow(_, _ Status) bool { return true }

// StrictPolicy only moves forward one step at a time. Setting the current
// status again is allowed.
type StrictPolicy struct{}

var strictNext = map[Status]Status{
	StatusPending:   StatusConfirmed,
	StatusConfirmed: StatusShipped,
}

func (StrictPolicy) Allow(from, to Status) bool {
	return from == to || strictNext[from] == to
}

// PolicyFromName maps the configured policy name. Unknown names fall back to
// permissive.
func PolicyFromName(name string) TransitionPolicy {
	if strings.EqualFold(strings.TrimSpace(name), "strict") {
		return StrictPolicy{}
	}
	return PermissivePolicy{}
}
