package storage

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/gym-dashboard/internal/models"
)

// GetFeatureFlags возвращает фичефлаги зала. Для зала без единой записи
// возвращается пустое множество.
func (s *Storage) GetFeatureFlags(ctx context.Context, gymUID string) (models.FeatureSet, error) {
	const op = "storage.GetFeatureFlags"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT key, enabled
			  FROM feature_flags
			  WHERE gym_uid = $1`
	rows, err := s.DB.QueryContext(ctx, query, gymUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make(models.FeatureSet)
	for rows.Next() {
		var key string
		var enabled bool
		if err := rows.Scan(&key, &enabled); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result[key] = enabled
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpsertFeatureFlag устанавливает значение фичефлага зала и возвращает
// количество затронутых строк.
func (s *Storage) UpsertFeatureFlag(ctx context.Context, gymUID, key string, enabled bool) (int, error) {
	const op = "storage.UpsertFeatureFlag"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO feature_flags (gym_uid, key, enabled)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (gym_uid, key) DO UPDATE SET enabled = EXCLUDED.enabled`
	result, err := s.DB.ExecContext(ctx, query, gymUID, key, enabled)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
