package access

import (
	"time"

	"github.com/magabrotheeeer/gym-dashboard/internal/models"
)

// AllowsAccess сообщает, проходит ли состояние подписки гейт "требуется
// подписка": доступ сохраняется в active, trial и grace.
func AllowsAccess(state models.LifecycleState) bool {
	switch state {
	case models.StateActive, models.StateTrial, models.StateGrace:
		return true
	}
	return false
}

// CanAccess решает, доступен ли пункт entry пользователю user при
// фичефлагах features и записи подписки sub на момент времени now.
//
// Проверки выполняются по порядку с остановкой на первом отказе:
// пользователь, роль, фича, подписка. Роль super_admin обходит проверки
// фич и подписки, но не проверку роли. Роль member всегда считается
// обладающей активной подпиской — биллингом участники не владеют.
func CanAccess(user *models.User, features models.FeatureSet, sub *models.SubscriptionRecord, entry models.MenuEntry, now time.Time) bool {
	// Сессия ещё не загружена: видны только пункты без требования подписки.
	if user == nil {
		return !entry.RequiresSubscription
	}
	if !RoleAllowed(user.Role, entry.AllowedRoles) {
		return false
	}
	if !HasFeature(features, user.Role, entry.RequiredFeature) {
		return false
	}
	if entry.RequiresSubscription &&
		user.Role != models.RoleSuperAdmin && user.Role != models.RoleMember {
		return AllowsAccess(ResolveStatus(sub, now).State)
	}
	return true
}

// Evaluator связывает чистые функции пакета с источником времени.
type Evaluator struct {
	clock Clock
}

// NewEvaluator создает Evaluator с заданным источником времени.
func NewEvaluator(clock Clock) *Evaluator {
	return &Evaluator{clock: clock}
}

// CanAccess вызывает CanAccess с текущим временем.
func (e *Evaluator) CanAccess(user *models.User, features models.FeatureSet, sub *models.SubscriptionRecord, entry models.MenuEntry) bool {
	return CanAccess(user, features, sub, entry, e.clock.Now())
}

// ResolveStatus вызывает ResolveStatus с текущим временем.
func (e *Evaluator) ResolveStatus(sub *models.SubscriptionRecord) models.ResolvedStatus {
	return ResolveStatus(sub, e.clock.Now())
}

// BuildMenu вызывает BuildMenu с текущим временем.
func (e *Evaluator) BuildMenu(entries []models.MenuEntry, user *models.User, features models.FeatureSet, sub *models.SubscriptionRecord) []models.MenuEntry {
	return BuildMenu(entries, user, features, sub, e.clock.Now())
}
