// Package menu содержит статическое описание навигационного меню
// дашборда. Список задаётся один раз и определяет порядок пунктов;
// фильтрацией по правам занимается пакет access.
package menu

import "github.com/magabrotheeeer/gym-dashboard/internal/models"

var entries = []models.MenuEntry{
	{Path: "/dashboard", Label: "Dashboard"},
	{Path: "/members", Label: "Members",
		AllowedRoles: []models.Role{models.RoleSuperAdmin, models.RoleOwner, models.RoleStaff}},
	{Path: "/crm", Label: "CRM",
		AllowedRoles:    []models.Role{models.RoleSuperAdmin, models.RoleOwner, models.RoleStaff},
		RequiredFeature: "crm"},
	{Path: "/classes", Label: "Class Schedule",
		RequiredFeature:      "scheduling",
		RequiresSubscription: true},
	{Path: "/inventory", Label: "Inventory",
		AllowedRoles:    []models.Role{models.RoleSuperAdmin, models.RoleOwner, models.RoleStaff},
		RequiredFeature: "inventory"},
	{Path: "/reports", Label: "Reports",
		AllowedRoles:         []models.Role{models.RoleSuperAdmin, models.RoleOwner},
		RequiredFeature:      "reports",
		RequiresSubscription: true},
	{Path: "/billing", Label: "Billing",
		AllowedRoles:         []models.Role{models.RoleSuperAdmin, models.RoleOwner},
		RequiresSubscription: true},
	{Path: "/staff", Label: "Staff",
		AllowedRoles: []models.Role{models.RoleSuperAdmin, models.RoleOwner}},
	{Path: "/settings", Label: "Settings",
		AllowedRoles: []models.Role{models.RoleSuperAdmin, models.RoleOwner}},
	{Path: "/my-subscription", Label: "My Subscription",
		AllowedRoles: []models.Role{models.RoleSuperAdmin, models.RoleOwner}},
	{Path: "/admin", Label: "Administration",
		AllowedRoles: []models.Role{models.RoleSuperAdmin}},
}

// Entries возвращает копию полного списка пунктов меню в порядке показа.
func Entries() []models.MenuEntry {
	result := make([]models.MenuEntry, len(entries))
	copy(result, entries)
	return result
}

// FindByPath возвращает пункт меню по пути маршрута.
func FindByPath(path string) (models.MenuEntry, bool) {
	for _, entry := range entries {
		if entry.Path == path {
			return entry, true
		}
	}
	return models.MenuEntry{}, false
}
