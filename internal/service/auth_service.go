package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"sports-portal/internal/approval"
	"sports-portal/internal/jwt"
	"sports-portal/internal/metrics"
	"sports-portal/internal/model"
	"sports-portal/internal/repository"
	"sports-portal/internal/validation"
)

const minPasswordLength = 6

type TokenPair struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	User         *model.User `json:"user"`
}

type ChangePasswordInput struct {
	OldPassword        string `json:"old_password"`
	NewPassword        string `json:"new_password"`
	ConfirmNewPassword string `json:"confirm_new_password"`
}

type AuthService interface {
	LoginPlayer(ctx context.Context, email, password string) (*TokenPair, error)
	RefreshToken(ctx context.Context, refreshTokenString string) (newAccessToken string, err error)
	LogoutUser(ctx context.Context, refreshTokenString string) error
	ChangePassword(ctx context.Context, userID uuid.UUID, in ChangePasswordInput) error
}

type authService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	tokens    *jwt.Manager
}

func NewAuthService(userRepo repository.UserRepository, tokenRepo repository.TokenRepository, tokens *jwt.Manager) AuthService {
	return &authService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		tokens:    tokens,
	}
}

func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// LoginPlayer checks credentials first and the approval gate second. Only an
// approved, active player gets tokens; every other account gets *approval.DeniedError.
func (s *authService) LoginPlayer(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	outcome := approval.CheckLogin(user.Subject())
	metrics.LoginOutcomes.WithLabelValues(outcome.String()).Inc()
	if outcome != approval.OutcomeAllowed {
		slog.InfoContext(ctx, "login denied", slog.String("user_id", user.ID.String()), slog.String("outcome", outcome.String()))
		return nil, &approval.DeniedError{Outcome: outcome}
	}

	accessToken, refreshToken, err := s.tokens.GenerateTokens(user)
	if err != nil {
		return nil, err
	}

	refreshTokenModel := &model.RefreshToken{
		UserID:    user.ID,
		TokenHash: hashToken(refreshToken),
		ExpiresAt: time.Now().Add(s.tokens.RefreshTTL()),
	}
	if err := s.tokenRepo.Create(ctx, refreshTokenModel); err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		slog.WarnContext(ctx, "failed to record last login", slog.String("user_id", user.ID.String()), slog.Any("error", err))
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken, User: user}, nil
}

// RefreshToken re-runs the approval gate, so a player declined after login stops
// receiving access tokens.
func (s *authService) RefreshToken(ctx context.Context, refreshTokenString string) (string, error) {
	claims, err := s.tokens.ValidateToken(refreshTokenString)
	if err != nil {
		return "", ErrTokenInvalid
	}

	if _, err := s.tokenRepo.FindValid(ctx, hashToken(refreshTokenString)); err != nil {
		return "", ErrTokenInvalid
	}

	userID, err := jwt.Subject(claims)
	if err != nil {
		return "", ErrTokenInvalid
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return "", ErrTokenInvalid
	}

	if outcome := approval.CheckLogin(user.Subject()); outcome != approval.OutcomeAllowed {
		return "", &approval.DeniedError{Outcome: outcome}
	}

	return s.tokens.GenerateAccessToken(user)
}

func (s *authService) LogoutUser(ctx context.Context, refreshTokenString string) error {
	return s.tokenRepo.Delete(ctx, hashToken(refreshTokenString))
}

// ChangePassword is limited to approved players and signs the player out everywhere.
func (s *authService) ChangePassword(ctx context.Context, userID uuid.UUID, in ChangePasswordInput) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if !approval.CanUseFeatures(user.Subject()) {
		return ErrNotApproved
	}

	var errs validation.Errors
	if in.OldPassword == "" {
		errs.Add(&validation.MissingFieldError{Field: "old_password"})
	} else if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.OldPassword)) != nil {
		errs.Add(&validation.MismatchError{Field: "old_password", Other: "the current password"})
	}
	if len(in.NewPassword) < minPasswordLength {
		errs.Add(&validation.FormatError{Field: "new_password", Expected: "at least 6 characters"})
	}
	if in.NewPassword != "" && in.ConfirmNewPassword != "" && in.NewPassword != in.ConfirmNewPassword {
		errs.Add(&validation.MismatchError{Field: "confirm_new_password", Other: "new_password"})
	}
	if err := errs.Err(); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, string(hashed)); err != nil {
		return err
	}

	return s.tokenRepo.DeleteByUser(ctx, userID)
}
