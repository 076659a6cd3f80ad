package access

import "github.com/magabrotheeeer/gym-dashboard/internal/models"

// HasFeature сообщает, доступна ли фича key пользователю с ролью role
// при фичефлагах features.
//
// Пустой key — пункт не зависит от фич. Супер-администратор видит все фичи.
// Пустое множество флагов трактуется как "ещё не загружено" и разрешает всё,
// чтобы меню не мигало во время загрузки. Для загруженного множества
// неизвестный ключ выключен.
func HasFeature(features models.FeatureSet, role models.Role, key string) bool {
	if key == "" {
		return true
	}
	if role == models.RoleSuperAdmin {
		return true
	}
	if len(features) == 0 {
		return true
	}
	return features[key]
}
