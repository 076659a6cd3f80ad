package models

import "time"

// RawStatus статус подписки, как его хранит биллинг.
type RawStatus string

// Известные значения статуса. Бэкенд биллинга владеет этим множеством,
// поэтому неизвестные значения допустимы и обрабатываются отдельно.
const (
	RawStatusActive    RawStatus = "active"
	RawStatusTrial     RawStatus = "trial"
	RawStatusExpired   RawStatus = "expired"
	RawStatusCancelled RawStatus = "cancelled"
	RawStatusPending   RawStatus = "pending"
)

// Known сообщает, входит ли статус в известное множество значений.
func (s RawStatus) Known() bool {
	switch s {
	case RawStatusActive, RawStatusTrial, RawStatusExpired, RawStatusCancelled, RawStatusPending:
		return true
	}
	return false
}

// SubscriptionRecord запись подписки зала. EndDate и TrialEndsAt могут быть
// nil — это означает отсутствие граничной даты. Запись принадлежит биллингу,
// здесь она только читается.
type SubscriptionRecord struct {
	Status      RawStatus  `json:"status"`        // Статус подписки
	StartDate   time.Time  `json:"start_date"`    // Дата начала подписки
	EndDate     *time.Time `json:"end_date"`      // Дата окончания оплаченного периода
	TrialEndsAt *time.Time `json:"trial_ends_at"` // Дата окончания пробного периода
}

// LifecycleState каноническое состояние жизненного цикла подписки,
// вычисляемое из записи подписки и текущего времени.
type LifecycleState string

// Полное множество состояний жизненного цикла.
const (
	StateActive    LifecycleState = "active"
	StateTrial     LifecycleState = "trial"
	StateGrace     LifecycleState = "grace"
	StateExpired   LifecycleState = "expired"
	StateCancelled LifecycleState = "cancelled"
	StatePending   LifecycleState = "pending"
	StateNone      LifecycleState = "none"
	StateError     LifecycleState = "error"
)

// ResolvedStatus результат вычисления состояния подписки. Никогда не
// сохраняется — пересчитывается при каждом обращении. Warning пустая строка,
// если предупреждения нет.
type ResolvedStatus struct {
	State   LifecycleState `json:"state"`
	Warning string         `json:"warning,omitempty"`
}

// ExpiryNotice данные для уведомления об истекающей подписке зала,
// публикуемые планировщиком в очередь.
type ExpiryNotice struct {
	GymUID     string    `json:"gym_uid"`
	GymName    string    `json:"gym_name"`
	OwnerEmail string    `json:"owner_email"`
	Status     RawStatus `json:"status"`
	EndDate    time.Time `json:"end_date"`
}
