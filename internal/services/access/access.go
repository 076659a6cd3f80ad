// Package services содержит бизнес-логику вычисления прав доступа:
// загрузку фичефлагов и записи подписки через кеш и выдачу решений
// вычислителя наружу.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/magabrotheeeer/gym-dashboard/internal/access"
	"github.com/magabrotheeeer/gym-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/gym-dashboard/internal/menu"
	"github.com/magabrotheeeer/gym-dashboard/internal/metrics"
	"github.com/magabrotheeeer/gym-dashboard/internal/models"
)

const cacheTTL = 5 * time.Minute

// Repository определяет методы хранилища, нужные для вычисления доступа.
type Repository interface {
	// GetFeatureFlags возвращает фичефлаги зала.
	GetFeatureFlags(ctx context.Context, gymUID string) (models.FeatureSet, error)
	// GetCurrentSubscription возвращает последнюю запись подписки зала,
	// (nil, nil) — если подписка никогда не создавалась.
	GetCurrentSubscription(ctx context.Context, gymUID string) (*models.SubscriptionRecord, error)
	// UpsertFeatureFlag устанавливает значение фичефлага зала.
	UpsertFeatureFlag(ctx context.Context, gymUID, key string, enabled bool) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// GuardConfig пути перенаправления для стадий route guard.
type GuardConfig struct {
	ManageSubscriptionPath string
	LoginPath              string
	DeniedPath             string
	ExemptPaths            []string
}

// AccessService отвечает на вопросы о доступе: меню, решение по маршруту,
// состояние подписки, фичефлаги. Данные читаются через кеш; ошибки
// загрузки не пробрасываются наружу, а разрешаются политикой fail-open.
type AccessService struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
	clock access.Clock
	guard GuardConfig
}

// NewAccessService создает новый экземпляр AccessService.
func NewAccessService(repo Repository, cache Cache, log *slog.Logger, clock access.Clock, guard GuardConfig) *AccessService {
	return &AccessService{
		repo:  repo,
		cache: cache,
		log:   log,
		clock: clock,
		guard: guard,
	}
}

// Menu возвращает пункты меню, видимые пользователю, в порядке показа.
func (s *AccessService) Menu(ctx context.Context, user *models.User) []models.MenuEntry {
	features := s.featureFlags(ctx, user)
	sub := s.subscription(ctx, user)
	return access.BuildMenu(menu.Entries(), user, features, sub, s.clock.Now())
}

// CheckPath возвращает решение route guard для маршрута path.
// Второй результат false, если маршрут не описан в меню.
func (s *AccessService) CheckPath(ctx context.Context, user *models.User, path string) (access.Decision, bool) {
	entry, ok := menu.FindByPath(path)
	if !ok {
		return access.Decision{}, false
	}

	in := access.GuardInput{
		User:         user,
		Features:     s.featureFlags(ctx, user),
		Subscription: s.subscription(ctx, user),
		Entry:        entry,
		Now:          s.clock.Now(),
	}
	decision := access.EvaluateStages(in,
		access.RoleStage{LoginPath: s.guard.LoginPath, DeniedPath: s.guard.DeniedPath},
		access.FeatureStage{DeniedPath: s.guard.DeniedPath},
		access.SubscriptionStage{
			ManagePath:  s.guard.ManageSubscriptionPath,
			ExemptPaths: s.guard.ExemptPaths,
		},
	)
	metrics.AccessDecisions.WithLabelValues(decisionOutcome(decision)).Inc()
	return decision, true
}

// SubscriptionStatus возвращает вычисленное состояние подписки зала
// пользователя для показа баннера.
func (s *AccessService) SubscriptionStatus(ctx context.Context, user *models.User) models.ResolvedStatus {
	resolved := access.ResolveStatus(s.subscription(ctx, user), s.clock.Now())
	metrics.SubscriptionStates.WithLabelValues(string(resolved.State)).Inc()
	return resolved
}

// ListFeatures возвращает фичефлаги зала, отсортированные по ключу.
func (s *AccessService) ListFeatures(ctx context.Context, gymUID string) ([]models.FeatureFlag, error) {
	const op = "services.access.ListFeatures"
	features, err := s.repo.GetFeatureFlags(ctx, gymUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]models.FeatureFlag, 0, len(features))
	for key, enabled := range features {
		result = append(result, models.FeatureFlag{Key: key, Enabled: enabled})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Key < result[j].Key })
	return result, nil
}

// SetFeature устанавливает значение фичефлага зала и инвалидирует кеш.
func (s *AccessService) SetFeature(ctx context.Context, gymUID, key string, enabled bool) error {
	const op = "services.access.SetFeature"
	if _, err := s.repo.UpsertFeatureFlag(ctx, gymUID, key, enabled); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	cacheKey := featuresCacheKey(gymUID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate features cache", slog.String("key", cacheKey), sl.Err(err))
	}
	return nil
}

// featureFlags загружает фичефлаги зала пользователя через кеш.
// Ошибка загрузки разрешается в пустое множество: пока флаги неизвестны,
// доступ к фичам открыт.
func (s *AccessService) featureFlags(ctx context.Context, user *models.User) models.FeatureSet {
	if user == nil || user.GymUID == nil {
		return models.FeatureSet{}
	}
	gymUID := *user.GymUID

	var cached models.FeatureSet
	cacheKey := featuresCacheKey(gymUID)
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read features cache", slog.String("key", cacheKey), sl.Err(err))
	}
	if found {
		return cached
	}

	features, err := s.repo.GetFeatureFlags(ctx, gymUID)
	if err != nil {
		s.log.Error("failed to load feature flags, failing open", slog.String("gym_uid", gymUID), sl.Err(err))
		return models.FeatureSet{}
	}
	if len(features) > 0 {
		if err := s.cache.Set(cacheKey, features, cacheTTL); err != nil {
			s.log.Warn("failed to cache feature flags", slog.String("key", cacheKey), sl.Err(err))
		}
	}
	return features
}

// subscription загружает запись подписки зала пользователя через кеш.
// Ошибка загрузки разрешается в запись со статусом active: временный сбой
// биллинга не должен блокировать зал. Отсутствие записи — это nil, не ошибка.
func (s *AccessService) subscription(ctx context.Context, user *models.User) *models.SubscriptionRecord {
	if user == nil || user.GymUID == nil {
		return nil
	}
	gymUID := *user.GymUID

	var cached models.SubscriptionRecord
	cacheKey := subscriptionCacheKey(gymUID)
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read subscription cache", slog.String("key", cacheKey), sl.Err(err))
	}
	if found {
		return &cached
	}

	record, err := s.repo.GetCurrentSubscription(ctx, gymUID)
	if err != nil {
		s.log.Error("failed to load subscription, failing open", slog.String("gym_uid", gymUID), sl.Err(err))
		return &models.SubscriptionRecord{Status: models.RawStatusActive}
	}
	if record == nil {
		return nil
	}
	if !record.Status.Known() {
		s.log.Warn("unrecognized subscription status, treating as active",
			slog.String("gym_uid", gymUID), slog.String("status", string(record.Status)))
	}
	if err := s.cache.Set(cacheKey, record, cacheTTL); err != nil {
		s.log.Warn("failed to cache subscription", slog.String("key", cacheKey), sl.Err(err))
	}
	return record
}

func decisionOutcome(decision access.Decision) string {
	switch {
	case decision.Kind == access.DecisionRender:
		return metrics.OutcomeAllowed
	case decision.Reason == "role not permitted" || decision.Reason == "not authenticated":
		return metrics.OutcomeDeniedRole
	case decision.Reason == "feature disabled":
		return metrics.OutcomeDeniedFeature
	default:
		return metrics.OutcomeDeniedSubscription
	}
}

func featuresCacheKey(gymUID string) string {
	return fmt.Sprintf("features:%s", gymUID)
}

func subscriptionCacheKey(gymUID string) string {
	return fmt.Sprintf("subscription:%s", gymUID)
}
