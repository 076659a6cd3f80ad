package models

// FeatureSet фичефлаги зала: ключ фичи -> включена ли она. Множество
// ключей открытое, неизвестный ключ считается выключенным. Пустое
// множество означает "ещё не загружено".
type FeatureSet map[string]bool

// FeatureFlag одна запись фичефлага для выдачи наружу.
type FeatureFlag struct {
	Key     string `json:"key"`
	Enabled bool   `json:"enabled"`
}

// DummyFeatureUpdate используется для приёма изменения фичефлага из JSON-запроса.
type DummyFeatureUpdate struct {
	Enabled *bool `json:"enabled" validate:"required"` // Новое значение флага
}

// MenuEntry статическое описание пункта меню или маршрута. Описания
// задаются один раз при старте и не изменяются.
//
// AllowedRoles nil или пустой — ограничения по роли нет. RequiredFeature
// пустая строка — пункт не зависит от фичефлагов.
type MenuEntry struct {
	Path                 string `json:"path"`
	Label                string `json:"label"`
	AllowedRoles         []Role `json:"allowed_roles,omitempty"`
	RequiredFeature      string `json:"required_feature,omitempty"`
	RequiresSubscription bool   `json:"requires_subscription,omitempty"`
}
