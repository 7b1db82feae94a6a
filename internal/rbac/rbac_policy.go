package rbac

import (
	"github.com/cha0jun/leavey/internal/domain"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const modelText = `[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// roleHierarchy lists (member, inherited role). An admin can do anything a
// manager can, and a manager anything a contractor can.
var roleHierarchy = [][]string{
	{string(domain.RoleAdmin), string(domain.RoleManager)},
	{string(domain.RoleManager), string(domain.RoleContractor)},
}

var rolePolicies = [][]string{
	{string(domain.RoleContractor), domain.ResourceLeave, domain.ActionCreate},
	{string(domain.RoleContractor), domain.ResourceLeave, domain.ActionRead},
	{string(domain.RoleContractor), domain.ResourceLeave, domain.ActionUpdate},
	{string(domain.RoleContractor), domain.ResourceCategory, domain.ActionRead},
	{string(domain.RoleContractor), domain.ResourceUser, domain.ActionRead},
	{string(domain.RoleContractor), domain.ResourceUser, domain.ActionUpdate},
	{string(domain.RoleContractor), domain.ResourceDocument, domain.ActionCreate},
	{string(domain.RoleContractor), domain.ResourceDocument, domain.ActionRead},
	{string(domain.RoleContractor), domain.ResourceAudit, domain.ActionReadHistory},

	{string(domain.RoleManager), domain.ResourceLeave, domain.ActionReadAll},
	{string(domain.RoleManager), domain.ResourceLeave, domain.ActionProcess},
	{string(domain.RoleManager), domain.ResourceFinance, domain.ActionRead},

	{string(domain.RoleAdmin), domain.ResourceLeave, domain.ActionSyncRetry},
	{string(domain.RoleAdmin), domain.ResourceCategory, domain.ActionManage},
	{string(domain.RoleAdmin), domain.ResourceUser, domain.ActionManage},
	{string(domain.RoleAdmin), domain.ResourceAudit, domain.ActionReadAll},
}

// NewEnforcer builds an in-memory enforcer loaded with the static role policies.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	if _, err := e.AddGroupingPolicies(roleHierarchy); err != nil {
		return nil, err
	}
	if _, err := e.AddPolicies(rolePolicies); err != nil {
		return nil, err
	}
	return e, nil
}
