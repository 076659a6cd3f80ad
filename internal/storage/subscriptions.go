package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/gym-dashboard/internal/models"
)

// GetCurrentSubscription возвращает последнюю запись подписки зала.
// Если подписка никогда не создавалась, возвращает (nil, nil) —
// отсутствие записи не является ошибкой.
func (s *Storage) GetCurrentSubscription(ctx context.Context, gymUID string) (*models.SubscriptionRecord, error) {
	const op = "storage.GetCurrentSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT status, start_date, end_date, trial_ends_at
			  FROM subscriptions
			  WHERE gym_uid = $1
			  ORDER BY id DESC
			  LIMIT 1`
	row := s.DB.QueryRowContext(ctx, query, gymUID)

	var record models.SubscriptionRecord
	var endDate, trialEndsAt sql.NullTime
	if err := row.Scan(&record.Status, &record.StartDate, &endDate, &trialEndsAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if endDate.Valid {
		record.EndDate = &endDate.Time
	}
	if trialEndsAt.Valid {
		record.TrialEndsAt = &trialEndsAt.Time
	}
	return &record, nil
}

// CreateSubscription вставляет новую запись подписки зала и возвращает её ID.
func (s *Storage) CreateSubscription(ctx context.Context, gymUID string, record models.SubscriptionRecord) (int, error) {
	const op = "storage.CreateSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscriptions (gym_uid, status, start_date, end_date, trial_ends_at)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		gymUID, record.Status, record.StartDate, record.EndDate, record.TrialEndsAt).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// FindSubscriptionsEnteringWarningWindow находит подписки залов, граничная
// дата которых наступает в ближайшие семь дней.
func (s *Storage) FindSubscriptionsEnteringWarningWindow(ctx context.Context) ([]*models.ExpiryNotice, error) {
	const op = "storage.FindSubscriptionsEnteringWarningWindow"
	return s.findNotices(ctx, op,
		`boundary BETWEEN CURRENT_DATE AND CURRENT_DATE + INTERVAL '7 days'`)
}

// FindSubscriptionsInGrace находит подписки залов в льготном периоде:
// граничная дата прошла не более трёх дней назад.
func (s *Storage) FindSubscriptionsInGrace(ctx context.Context) ([]*models.ExpiryNotice, error) {
	const op = "storage.FindSubscriptionsInGrace"
	return s.findNotices(ctx, op,
		`boundary BETWEEN CURRENT_DATE - INTERVAL '3 days' AND CURRENT_DATE - INTERVAL '1 day'`)
}

func (s *Storage) findNotices(ctx context.Context, op, boundaryFilter string) ([]*models.ExpiryNotice, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT gym_uid, gym_name, owner_email, status, boundary FROM (
			      SELECT DISTINCT ON (sub.gym_uid)
			          sub.gym_uid,
			          g.name AS gym_name,
			          u.email AS owner_email,
			          sub.status,
			          CASE WHEN sub.status = 'trial' THEN sub.trial_ends_at
			               ELSE sub.end_date END AS boundary
			      FROM subscriptions sub
			      JOIN gyms g ON g.uid = sub.gym_uid
			      JOIN users u ON u.gym_uid = sub.gym_uid AND u.role = 'owner'
			      WHERE sub.status IN ('active', 'trial')
			      ORDER BY sub.gym_uid, sub.id DESC
			  ) latest
			  WHERE boundary IS NOT NULL AND ` + boundaryFilter
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ExpiryNotice
	for rows.Next() {
		var notice models.ExpiryNotice
		if err = rows.Scan(&notice.GymUID, &notice.GymName, &notice.OwnerEmail,
			&notice.Status, &notice.EndDate); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &notice)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
