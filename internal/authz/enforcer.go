package authz

import "github.com/casbin/casbin/v2"

// NewEnforcer loads the RBAC model and the role policy. Roles come from the
// JWT claim; policies map role -> resource -> action.
func NewEnforcer(modelPath, policyPath string) (*casbin.Enforcer, error) {
	return casbin.NewEnforcer(modelPath, policyPath)
}
