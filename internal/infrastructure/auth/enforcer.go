package auth

import (
	_ "embed"
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

//go:embed model.conf
var modelText string

// Roles known to the policy
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

const apiPrefix = "/api/v1"

// writable lists the resources a plain user may create and modify
var writable = []string{
	"invoices", "manual-invoices", "quotations", "manual-quotations", "purchases", "pre-purchases",
	"customers", "vendors", "leads", "shipping", "expenses", "upload",
}

// DefaultPolicies returns the built-in role policies as (sub, obj, act) triples
func DefaultPolicies() [][]string {
	p := [][]string{
		{RoleAdmin, "/*", ".*"},
		{RoleUser, apiPrefix + "/*", "GET"},
		{RoleUser, apiPrefix + "/products*", "POST|PUT|PATCH"},
		{RoleUser, apiPrefix + "/categories*", "POST"},
		{RoleUser, apiPrefix + "/auth/*", "POST|PUT"},
	}
	for _, r := range writable {
		p = append(p, []string{RoleUser, apiPrefix + "/" + r + "*", "POST|PUT|PATCH|DELETE"})
	}
	return p
}

// NewEnforcer builds the role enforcer. With a database the policies are
// persisted through the GORM adapter and seeded when missing; without one
// they are kept in memory.
func NewEnforcer(db *gorm.DB) (*casbin.SyncedEnforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}

	var enforcer *casbin.SyncedEnforcer
	if db != nil {
		adapter, err := gormadapter.NewAdapterByDB(db)
		if err != nil {
			return nil, fmt.Errorf("failed to create casbin adapter: %w", err)
		}
		enforcer, err = casbin.NewSyncedEnforcer(m, adapter)
		if err != nil {
			return nil, err
		}
		enforcer.EnableAutoSave(true)
		if err := enforcer.LoadPolicy(); err != nil {
			return nil, err
		}
	} else {
		enforcer, err = casbin.NewSyncedEnforcer(m)
		if err != nil {
			return nil, err
		}
	}

	if err := seedPolicies(enforcer); err != nil {
		return nil, err
	}
	return enforcer, nil
}

func seedPolicies(e *casbin.SyncedEnforcer) error {
	for _, p := range DefaultPolicies() {
		// AddPolicy reports false without error for an existing rule
		if _, err := e.AddPolicy(p); err != nil {
			return fmt.Errorf("failed to seed policy %v: %w", p, err)
		}
	}
	return nil
}
