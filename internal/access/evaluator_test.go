package access

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/gym-dashboard/internal/models"
)

func TestRoleAllowed_TableTests(t *testing.T) {
	tests := []struct {
		name    string
		role    models.Role
		allowed []models.Role
		want    bool
	}{
		{
			name:    "nil set allows everyone",
			role:    models.RoleMember,
			allowed: nil,
			want:    true,
		},
		{
			name:    "empty set allows everyone",
			role:    models.RoleStaff,
			allowed: []models.Role{},
			want:    true,
		},
		{
			name:    "role in set",
			role:    models.RoleOwner,
			allowed: []models.Role{models.RoleOwner, models.RoleSuperAdmin},
			want:    true,
		},
		{
			name:    "role not in set",
			role:    models.RoleStaff,
			allowed: []models.Role{models.RoleOwner, models.RoleSuperAdmin},
			want:    false,
		},
		{
			name:    "super admin does not bypass role restriction",
			role:    models.RoleSuperAdmin,
			allowed: []models.Role{models.RoleOwner},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RoleAllowed(tt.role, tt.allowed))
		})
	}
}

func TestHasFeature_TableTests(t *testing.T) {
	tests := []struct {
		name     string
		features models.FeatureSet
		role     models.Role
		key      string
		want     bool
	}{
		{
			name:     "empty key means no feature dependency",
			features: models.FeatureSet{"crm": false},
			role:     models.RoleStaff,
			key:      "",
			want:     true,
		},
		{
			name:     "super admin bypasses disabled feature",
			features: models.FeatureSet{"crm": false},
			role:     models.RoleSuperAdmin,
			key:      "crm",
			want:     true,
		},
		{
			name:     "unloaded set fails open",
			features: models.FeatureSet{},
			role:     models.RoleStaff,
			key:      "crm",
			want:     true,
		},
		{
			name:     "nil set fails open",
			features: nil,
			role:     models.RoleStaff,
			key:      "crm",
			want:     true,
		},
		{
			name:     "disabled feature fails closed",
			features: models.FeatureSet{"crm": false},
			role:     models.RoleStaff,
			key:      "crm",
			want:     false,
		},
		{
			name:     "enabled feature",
			features: models.FeatureSet{"crm": true},
			role:     models.RoleStaff,
			key:      "crm",
			want:     true,
		},
		{
			name:     "unknown key on loaded set fails closed",
			features: models.FeatureSet{"crm": true},
			role:     models.RoleStaff,
			key:      "inventory",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasFeature(tt.features, tt.role, tt.key))
		})
	}
}

func TestCanAccess_TableTests(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	gymUID := "c9f0b1ae-0000-0000-0000-000000000001"

	owner := &models.User{UUID: "u1", Username: "owner", Role: models.RoleOwner, GymUID: &gymUID}
	staff := &models.User{UUID: "u2", Username: "staff", Role: models.RoleStaff, GymUID: &gymUID}
	member := &models.User{UUID: "u3", Username: "member", Role: models.RoleMember, GymUID: &gymUID}
	superAdmin := &models.User{UUID: "u4", Username: "root", Role: models.RoleSuperAdmin}

	activeSub := &models.SubscriptionRecord{
		Status:  models.RawStatusActive,
		EndDate: timePtr(now.AddDate(0, 1, 0)),
	}
	expiredSub := &models.SubscriptionRecord{Status: models.RawStatusExpired}

	tests := []struct {
		name     string
		user     *models.User
		features models.FeatureSet
		sub      *models.SubscriptionRecord
		entry    models.MenuEntry
		want     bool
	}{
		{
			name:  "nil user sees entry without subscription requirement",
			user:  nil,
			entry: models.MenuEntry{Path: "/dashboard"},
			want:  true,
		},
		{
			name:  "nil user denied subscription gated entry",
			user:  nil,
			entry: models.MenuEntry{Path: "/billing", RequiresSubscription: true},
			want:  false,
		},
		{
			name:  "role restriction fails closed",
			user:  staff,
			entry: models.MenuEntry{Path: "/settings", AllowedRoles: []models.Role{models.RoleOwner}},
			want:  false,
		},
		{
			name:     "super admin bypasses feature and subscription checks",
			user:     superAdmin,
			features: models.FeatureSet{"reports": false},
			sub:      nil,
			entry: models.MenuEntry{
				Path:                 "/reports",
				RequiredFeature:      "reports",
				RequiresSubscription: true,
			},
			want: true,
		},
		{
			name:  "super admin still needs the role when restricted",
			user:  superAdmin,
			entry: models.MenuEntry{Path: "/members", AllowedRoles: []models.Role{models.RoleOwner, models.RoleStaff}},
			want:  false,
		},
		{
			name:  "member bypasses subscription gate with nil record",
			user:  member,
			sub:   nil,
			entry: models.MenuEntry{Path: "/classes", RequiresSubscription: true},
			want:  true,
		},
		{
			name:     "staff with enabled feature and no subscription requirement",
			user:     staff,
			features: models.FeatureSet{"inventory": true},
			sub:      nil,
			entry:    models.MenuEntry{Path: "/inventory", RequiredFeature: "inventory"},
			want:     true,
		},
		{
			name:     "staff with disabled feature",
			user:     staff,
			features: models.FeatureSet{"inventory": false},
			entry:    models.MenuEntry{Path: "/inventory", RequiredFeature: "inventory"},
			want:     false,
		},
		{
			name:  "owner with nil subscription denied gated entry",
			user:  owner,
			sub:   nil,
			entry: models.MenuEntry{Path: "/billing", RequiresSubscription: true},
			want:  false,
		},
		{
			name:  "owner with active subscription",
			user:  owner,
			sub:   activeSub,
			entry: models.MenuEntry{Path: "/billing", RequiresSubscription: true},
			want:  true,
		},
		{
			name: "owner in grace period keeps access",
			user: owner,
			sub: &models.SubscriptionRecord{
				Status:  models.RawStatusActive,
				EndDate: timePtr(now.Add(-24 * time.Hour)),
			},
			entry: models.MenuEntry{Path: "/billing", RequiresSubscription: true},
			want:  true,
		},
		{
			name:  "owner with expired subscription denied",
			user:  owner,
			sub:   expiredSub,
			entry: models.MenuEntry{Path: "/billing", RequiresSubscription: true},
			want:  false,
		},
		{
			name: "owner with pending subscription denied",
			user: owner,
			sub:  &models.SubscriptionRecord{Status: models.RawStatusPending},
			entry: models.MenuEntry{
				Path:                 "/billing",
				RequiresSubscription: true,
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanAccess(tt.user, tt.features, tt.sub, tt.entry, now))
		})
	}
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func TestEvaluator_UsesInjectedClock(t *testing.T) {
	end := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	record := &models.SubscriptionRecord{
		Status:  models.RawStatusActive,
		EndDate: &end,
	}

	before := NewEvaluator(fixedClock{now: end.Add(-time.Hour)})
	after := NewEvaluator(fixedClock{now: end.Add(time.Hour)})

	assert.Equal(t, models.StateActive, before.ResolveStatus(record).State)
	assert.Equal(t, models.StateGrace, after.ResolveStatus(record).State)
}
