package rbac

import "github.com/casbin/casbin/v2"

// Static role policy. Unlike tenant-configurable permission tables, the
// role set here is fixed (employee, manager, admin/hr) so the policy lives
// in code and loads once at startup.
var rolePolicies = [][3]string{
	{RoleEmployee, "clock", "create"},
	{RoleEmployee, "clock", "read"},
	{RoleEmployee, "clock", "update"},
	{RoleEmployee, "time_entry", "create"},
	{RoleEmployee, "time_entry", "read"},
	{RoleEmployee, "time_entry", "delete"},
	{RoleEmployee, "timesheet", "read"},
	{RoleEmployee, "timesheet", "submit"},
	{RoleEmployee, "pay_stub", "read"},

	{RoleManager, "timesheet", "approve"},
	{RoleManager, "timesheet", "list_pending"},

	{RoleHR, "employee", "create"},
	{RoleHR, "employee", "read"},
	{RoleHR, "employee", "update"},
	{RoleHR, "compensation", "create"},
	{RoleHR, "compensation", "read"},
	{RoleHR, "benefits", "create"},
	{RoleHR, "benefits", "read"},
	{RoleHR, "benefits", "update"},
	{RoleHR, "payroll", "create"},
	{RoleHR, "payroll", "read"},
	{RoleHR, "payroll", "run"},
	{RoleHR, "pay_stub", "reverse"},
}

// Role inheritance: manager and hr act as employees; admin acts as hr.
var roleGroups = [][2]string{
	{RoleManager, RoleEmployee},
	{RoleHR, RoleEmployee},
	{RoleHR, RoleManager},
	{RoleAdmin, RoleHR},
}

func loadPolicies(e *casbin.Enforcer) error {
	for _, p := range rolePolicies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return err
		}
	}
	for _, g := range roleGroups {
		if _, err := e.AddGroupingPolicy(g[0], g[1]); err != nil {
			return err
		}
	}
	return nil
}
