package capability

import "homefind/internal/entity"

// Authority decides whether a caller's capability set permits an action.
// Pure decision function, no side effects. Callers must branch on the
// result; a false return is a denial, not an error.
type Authority struct{}

func NewAuthority() *Authority {
	return &Authority{}
}

// Authorize fails closed: a nil (unauthenticated) or inactive user is
// denied regardless of granted capabilities. The check passes only when
// the user's granted set is a superset of the required set.
func (a *Authority) Authorize(user *entity.User, required ...entity.Capability) bool {
	if user == nil || !user.IsActive {
		return false
	}

	granted := make(map[entity.Capability]struct{}, len(user.Capabilities))
	for _, c := range user.Capabilities {
		granted[c] = struct{}{}
	}

	for _, c := range required {
		if _, ok := granted[c]; !ok {
			return false
		}
	}
	return true
}
