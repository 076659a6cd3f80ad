package access

import (
	"fmt"
	"time"

	"github.com/magabrotheeeer/gym-dashboard/internal/models"
)

const (
	// GracePeriod период после окончания подписки, в течение которого
	// доступ сохраняется с предупреждением.
	GracePeriod = 3 * 24 * time.Hour

	// WarningWindow окно до окончания подписки, в котором показывается
	// предупреждение о скором истечении.
	WarningWindow = 7 * 24 * time.Hour
)

// ResolveStatus вычисляет каноническое состояние подписки на момент now.
//
// Функция тотальна: для любой записи (включая nil и записи с неизвестным
// статусом) возвращается определённое состояние, ошибки невозможны.
// Неизвестный статус трактуется как active: блокировать зал из-за нового
// значения на стороне биллинга нельзя, вызывающий код логирует такие записи.
func ResolveStatus(record *models.SubscriptionRecord, now time.Time) models.ResolvedStatus {
	if record == nil {
		return models.ResolvedStatus{State: models.StateNone}
	}

	switch record.Status {
	case models.RawStatusExpired:
		return models.ResolvedStatus{State: models.StateExpired}
	case models.RawStatusCancelled:
		return models.ResolvedStatus{State: models.StateCancelled}
	case models.RawStatusPending:
		return models.ResolvedStatus{State: models.StatePending}
	case models.RawStatusActive, models.RawStatusTrial:
	default:
		return models.ResolvedStatus{State: models.StateActive}
	}

	kind := "subscription"
	end := record.EndDate
	if record.Status == models.RawStatusTrial {
		kind = "trial"
		end = record.TrialEndsAt
	}
	// Отсутствующая или нулевая граничная дата — подписка без срока.
	if end == nil || end.IsZero() {
		return models.ResolvedStatus{State: models.LifecycleState(record.Status)}
	}

	if end.Before(now) {
		graceEnd := end.Add(GracePeriod)
		if now.Before(graceEnd) {
			days := ceilDays(graceEnd.Sub(now))
			return models.ResolvedStatus{
				State:   models.StateGrace,
				Warning: fmt.Sprintf("expired, %d day(s) grace period remaining", days),
			}
		}
		return models.ResolvedStatus{State: models.StateExpired}
	}

	resolved := models.ResolvedStatus{State: models.LifecycleState(record.Status)}
	if days := ceilDays(end.Sub(now)); days > 0 && time.Duration(days)*24*time.Hour <= WarningWindow {
		resolved.Warning = fmt.Sprintf("%s expires in %d day(s)", kind, days)
	}
	return resolved
}

// ceilDays округляет длительность вверх до целых суток: частично
// прошедший день считается целиком.
func ceilDays(d time.Duration) int {
	const day = 24 * time.Hour
	return int((d + day - 1) / day)
}
