// Package services содержит логику бизнес-уровня для работы
// с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/gym-dashboard/internal/lib/jwt"
	"github.com/magabrotheeeer/gym-dashboard/internal/lib/password"
	"github.com/magabrotheeeer/gym-dashboard/internal/models"
)

// TrialLength длительность пробного периода нового зала.
const TrialLength = 30 * 24 * time.Hour

// UserRepository описывает контракт для работы с пользователями и залами.
type UserRepository interface {
	// RegisterGym сохраняет новый зал и возвращает его UID.
	RegisterGym(ctx context.Context, name string) (string, error)
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)
	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	// CreateSubscription сохраняет запись подписки зала.
	CreateSubscription(ctx context.Context, gymUID string, record models.SubscriptionRecord) (int, error)
}

// AuthService отвечает за регистрацию, авторизацию и валидацию JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
	clock    func() time.Time
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
		clock:    time.Now,
	}
}

// Register создает новый зал с владельцем и пробной подпиской на 30 дней.
// Возвращает UID созданного пользователя.
func (s *AuthService) Register(ctx context.Context, req models.DummyRegister) (string, error) {
	const op = "services.auth.Register"

	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	gymUID, err := s.users.RegisterGym(ctx, req.GymName)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: hashed,
		Role:         models.RoleOwner,
		GymUID:       &gymUID,
	}
	userUID, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	now := s.clock().UTC()
	trialEndsAt := now.Add(TrialLength)
	_, err = s.users.CreateSubscription(ctx, gymUID, models.SubscriptionRecord{
		Status:      models.RawStatusTrial,
		StartDate:   now,
		TrialEndsAt: &trialEndsAt,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return userUID, nil
}

// Login проверяет пароль пользователя и генерирует JWT.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (token string, role models.Role, err error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return "", "", errors.New("invalid credentials")
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", "", errors.New("invalid credentials")
	}
	gymUID := ""
	if user.GymUID != nil {
		gymUID = *user.GymUID
	}
	token, err = s.jwtMaker.GenerateToken(user.Username, string(user.Role), user.UUID, gymUID)
	if err != nil {
		return "", "", err
	}
	return token, user.Role, nil
}

// ValidateToken проверяет JWT и возвращает пользователя из claims.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*models.User, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Username: claims.Username,
		Role:     models.Role(claims.Role),
		UUID:     claims.UserUID,
	}
	if claims.GymUID != "" {
		gymUID := claims.GymUID
		user.GymUID = &gymUID
	}
	return user, nil
}
