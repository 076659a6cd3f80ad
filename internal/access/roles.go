package access

import "github.com/magabrotheeeer/gym-dashboard/internal/models"

// RoleAllowed проверяет вхождение роли в множество разрешённых.
// Nil или пустое множество означает отсутствие ограничения по роли.
func RoleAllowed(role models.Role, allowed []models.Role) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
