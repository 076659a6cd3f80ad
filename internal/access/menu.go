package access

import (
	"time"

	"github.com/magabrotheeeer/gym-dashboard/internal/models"
)

// BuildMenu фильтрует список пунктов меню по CanAccess, сохраняя исходный
// порядок. Порядок пунктов принадлежит статическому описанию меню,
// вычислитель его не меняет.
func BuildMenu(entries []models.MenuEntry, user *models.User, features models.FeatureSet, sub *models.SubscriptionRecord, now time.Time) []models.MenuEntry {
	result := make([]models.MenuEntry, 0, len(entries))
	for _, entry := range entries {
		if CanAccess(user, features, sub, entry, now) {
			result = append(result, entry)
		}
	}
	return result
}
