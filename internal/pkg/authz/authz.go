// Package authz wraps a casbin enforcer behind the narrow contract the
// payroll core needs: every mutating operation asks IsAllowed before
// touching the store, and a deny short-circuits with ErrForbidden.
package authz

import (
	"context"
	"errors"
	"strings"

	"github.com/casbin/casbin/v2"
	fileadapter "github.com/casbin/casbin/v2/persist/file-adapter"
)

var ErrForbidden = errors.New("operation not permitted")

// Modules and actions mirror the policy file vocabulary.
const (
	ModulePayroll   = "payroll"
	ModuleEmployees = "employees"

	ActionRead    = "read"
	ActionWrite   = "write"
	ActionApprove = "approve"
	ActionDelete  = "delete"
)

type Service interface {
	// IsAllowed reports whether user may perform action on module within
	// tenant. Errors are reserved for enforcer failures, not denials.
	IsAllowed(ctx context.Context, userID, tenantID, module, action string) (bool, error)
}

type Authorizer struct {
	enforcer *casbin.Enforcer
}

func NewAuthorizer(modelPath, policyPath string) (*Authorizer, error) {
	adapter := fileadapter.NewAdapter(policyPath)
	enforcer, err := casbin.NewEnforcer(modelPath)
	if err != nil {
		return nil, err
	}
	enforcer.SetAdapter(adapter)
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, err
	}
	return &Authorizer{enforcer: enforcer}, nil
}

func (a *Authorizer) IsAllowed(ctx context.Context, userID, tenantID, module, action string) (bool, error) {
	return a.enforcer.Enforce(subject(userID), domain(tenantID), module, action)
}

func subject(userID string) string {
	return "user:" + strings.TrimSpace(userID)
}

func domain(tenantID string) string {
	return strings.ToLower(strings.TrimSpace(tenantID))
}
