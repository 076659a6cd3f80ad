// Package services содержит планировщик уведомлений о подписках:
// периодически находит залы, подписка которых скоро истекает или уже
// находится в льготном периоде, и публикует уведомления в RabbitMQ.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/gym-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/gym-dashboard/internal/models"
	"github.com/magabrotheeeer/gym-dashboard/internal/rabbitmq"
)

// SubscriptionRepository определяет выборки планировщика.
type SubscriptionRepository interface {
	FindSubscriptionsEnteringWarningWindow(ctx context.Context) ([]*models.ExpiryNotice, error)
	FindSubscriptionsInGrace(ctx context.Context) ([]*models.ExpiryNotice, error)
}

// Publisher публикует сообщение в exchange с ключом маршрутизации.
type Publisher interface {
	Publish(exchange, routingKey string, message any) error
}

// SchedulerService периодически находит залы с истекающими подписками
// и публикует уведомления.
type SchedulerService struct {
	repo      SubscriptionRepository
	publisher Publisher
	log       *slog.Logger
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(repo SubscriptionRepository, publisher Publisher, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// RunExpiryWarnings запускает цикл поиска подписок, входящих в окно
// предупреждения. Блокирует до отмены контекста.
func (s *SchedulerService) RunExpiryWarnings(ctx context.Context) {
	s.publishExpiryWarnings(ctx)

	ticker := time.NewTicker(12 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.publishExpiryWarnings(ctx)
		}
	}
}

func (s *SchedulerService) publishExpiryWarnings(ctx context.Context) {
	s.log.Info("starting scan for subscriptions entering warning window")
	notices, err := s.repo.FindSubscriptionsEnteringWarningWindow(ctx)
	if err != nil {
		s.log.Error("failed to find expiring subscriptions", sl.Err(err))
		return
	}
	if len(notices) == 0 {
		s.log.Info("no expiring subscriptions found")
		return
	}
	s.log.Info("found expiring subscriptions", "count", len(notices))
	for _, notice := range notices {
		err = s.publisher.Publish(rabbitmq.NotificationsExchange, rabbitmq.RoutingKeyExpiryWarning, notice)
		if err != nil {
			s.log.Error("failed to publish message", sl.Err(err))
		}
	}
}

// RunGraceReminders запускает цикл поиска подписок в льготном периоде.
// Блокирует до отмены контекста.
func (s *SchedulerService) RunGraceReminders(ctx context.Context) {
	s.publishGraceReminders(ctx)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.publishGraceReminders(ctx)
		}
	}
}

func (s *SchedulerService) publishGraceReminders(ctx context.Context) {
	s.log.Info("starting scan for subscriptions in grace period")
	notices, err := s.repo.FindSubscriptionsInGrace(ctx)
	if err != nil {
		s.log.Error("failed to find subscriptions in grace period", sl.Err(err))
		return
	}
	if len(notices) == 0 {
		s.log.Info("no subscriptions in grace period found")
		return
	}
	s.log.Info("found subscriptions in grace period", "count", len(notices))
	for _, notice := range notices {
		err = s.publisher.Publish(rabbitmq.NotificationsExchange, rabbitmq.RoutingKeyGrace, notice)
		if err != nil {
			s.log.Error("failed to publish message", sl.Err(err))
		}
	}
}
