package access

import (
	"time"

	"github.com/magabrotheeeer/gym-dashboard/internal/models"
)

// DecisionKind вид решения стадии route guard.
type DecisionKind string

// Возможные решения стадии.
const (
	// DecisionRender маршрут можно показывать.
	DecisionRender DecisionKind = "render"
	// DecisionRedirect доступ запрещён, требуется переход на RedirectPath.
	DecisionRedirect DecisionKind = "redirect"
	// DecisionPending данные ещё загружаются, решение не принято.
	DecisionPending DecisionKind = "pending"
)

// Decision решение стадии guard. Warning заполняется стадией подписки
// вместе с DecisionRender и не блокирует показ маршрута.
type Decision struct {
	Kind         DecisionKind `json:"kind"`
	RedirectPath string       `json:"redirect_path,omitempty"`
	Reason       string       `json:"reason,omitempty"`
	Warning      string       `json:"warning,omitempty"`
}

// Render решение "показывать".
func Render() Decision {
	return Decision{Kind: DecisionRender}
}

// RenderWithWarning решение "показывать" с неблокирующим предупреждением.
func RenderWithWarning(warning string) Decision {
	return Decision{Kind: DecisionRender, Warning: warning}
}

// Redirect решение "перенаправить" с указанием причины.
func Redirect(path, reason string) Decision {
	return Decision{Kind: DecisionRedirect, RedirectPath: path, Reason: reason}
}

// Pending решение "данные ещё загружаются".
func Pending() Decision {
	return Decision{Kind: DecisionPending}
}

// GuardInput уже разрешённое состояние, передаваемое стадиям guard.
// Флаги *Loading отражают незавершённые фоновые загрузки: пока флаг
// установлен, соответствующая стадия возвращает Pending.
type GuardInput struct {
	User                *models.User
	UserLoading         bool
	Features            models.FeatureSet
	Subscription        *models.SubscriptionRecord
	SubscriptionLoading bool
	Entry               models.MenuEntry
	Now                 time.Time
}

// GuardStage одна стадия проверки маршрута. Стадии независимы и
// компонуются слоем маршрутизации в порядке роль -> фича -> подписка.
type GuardStage interface {
	Evaluate(in GuardInput) Decision
}

// RoleStage проверяет аутентификацию и вхождение роли в разрешённое
// множество пункта.
type RoleStage struct {
	LoginPath  string // Куда отправлять неаутентифицированного пользователя
	DeniedPath string // Куда отправлять при недостаточной роли
}

// Evaluate реализует GuardStage.
func (s RoleStage) Evaluate(in GuardInput) Decision {
	if in.UserLoading {
		return Pending()
	}
	if in.User == nil {
		return Redirect(s.LoginPath, "not authenticated")
	}
	if !RoleAllowed(in.User.Role, in.Entry.AllowedRoles) {
		return Redirect(s.DeniedPath, "role not permitted")
	}
	return Render()
}

// FeatureStage проверяет, включена ли фича пункта для зала пользователя.
type FeatureStage struct {
	DeniedPath string
}

// Evaluate реализует GuardStage.
func (s FeatureStage) Evaluate(in GuardInput) Decision {
	if in.UserLoading {
		return Pending()
	}
	var role models.Role
	if in.User != nil {
		role = in.User.Role
	}
	if !HasFeature(in.Features, role, in.Entry.RequiredFeature) {
		return Redirect(s.DeniedPath, "feature disabled")
	}
	return Render()
}

// SubscriptionStage проверяет состояние подписки и перенаправляет на
// страницу управления подпиской в состояниях expired, cancelled и none.
// Сама страница управления исключена из перенаправления, иначе возник бы
// цикл редиректов.
type SubscriptionStage struct {
	ManagePath  string   // Страница управления подпиской, цель редиректа
	ExemptPaths []string // Дополнительные пути, исключённые из редиректа
}

// Evaluate реализует GuardStage.
func (s SubscriptionStage) Evaluate(in GuardInput) Decision {
	if in.User != nil &&
		(in.User.Role == models.RoleSuperAdmin || in.User.Role == models.RoleMember) {
		return Render()
	}
	if !in.Entry.RequiresSubscription {
		return Render()
	}
	if in.SubscriptionLoading {
		return Pending()
	}

	resolved := ResolveStatus(in.Subscription, in.Now)
	switch resolved.State {
	case models.StateExpired, models.StateCancelled, models.StateNone:
		if !s.exempt(in.Entry.Path) {
			return Redirect(s.ManagePath, "subscription "+string(resolved.State))
		}
	}
	return RenderWithWarning(resolved.Warning)
}

func (s SubscriptionStage) exempt(path string) bool {
	if path == s.ManagePath {
		return true
	}
	for _, p := range s.ExemptPaths {
		if p == path {
			return true
		}
	}
	return false
}

// EvaluateStages прогоняет вход через стадии по порядку. Первое решение,
// отличное от Render, останавливает проход. Предупреждение последней
// стадии сохраняется в итоговом Render.
func EvaluateStages(in GuardInput, stages ...GuardStage) Decision {
	result := Render()
	for _, stage := range stages {
		decision := stage.Evaluate(in)
		if decision.Kind != DecisionRender {
			return decision
		}
		if decision.Warning != "" {
			result.Warning = decision.Warning
		}
	}
	return result
}
