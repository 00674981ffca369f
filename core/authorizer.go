package core

import (
	"github.com/clawnch/ledger/ledger/types"
)

// Authorizer decides whether caller may perform a privileged operation on
// resource. It is consulted in addition to the authority stored in the ledger.
type Authorizer interface {
	IsAuthorized(caller types.AccountID, resource types.AccountID) bool
}

// AuthorizerFunc adapts a function to the Authorizer interface.
type AuthorizerFunc func(caller, resource types.AccountID) bool

func (f AuthorizerFunc) IsAuthorized(caller, resource types.AccountID) bool {
	return f(caller, resource)
}

// AllowAll defers entirely to the stored authority.
var AllowAll Authorizer = AuthorizerFunc(func(caller, resource types.AccountID) bool { return true })

// DenyAll rejects every privileged call, e.g. for a read-only node.
var DenyAll Authorizer = AuthorizerFunc(func(caller, resource types.AccountID) bool { return false })

// NewAllowlist authorizes only the listed callers.
func NewAllowlist(callers ...types.AccountID) Authorizer {
	allowed := make(map[types.AccountID]struct{}, len(callers))
	for _, c := range callers {
		allowed[c] = struct{}{}
	}
	return AuthorizerFunc(func(caller, resource types.AccountID) bool {
		_, ok := allowed[caller]
		return ok
	})
}
