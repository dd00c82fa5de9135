package auth

import (
	"context"
	"errors"
	"os"
	"time"

	autherrors "go-gym/internal/auth/errors"
	"go-gym/internal/user"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock

type Service interface {
	Login(ctx context.Context, email, password string) (LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (LoginResponse, error)
	GetMe(ctx context.Context, userID string) (ProfileResponse, error)
}

type service struct {
	users  user.Repository
	logger *zap.Logger
}

func NewService(users user.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{users: users, logger: l}
}

func (s *service) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoginResponse{}, autherrors.ErrInvalidCredentials
		}
		return LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		s.logger.Warn("login rejected, wrong password", zap.String("email", email))
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	if !u.IsActive {
		return LoginResponse{}, autherrors.ErrUserInactive
	}

	tokens, err := s.issueTokens(u)
	if err != nil {
		s.logger.Error("failed to sign tokens", zap.Error(err))
		return LoginResponse{}, autherrors.ErrTokenGeneration
	}

	s.logger.Info("user logged in",
		zap.String("user_id", u.ID.String()),
		zap.String("role", u.Role),
	)

	return LoginResponse{User: mapToProfile(u), Tokens: tokens}, nil
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidRefreshToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return LoginResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return LoginResponse{}, autherrors.ErrInvalidRefreshToken
	}
	if tokenType, _ := claims["token_type"].(string); tokenType != "refresh" {
		return LoginResponse{}, autherrors.ErrInvalidRefreshToken
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return LoginResponse{}, autherrors.ErrInvalidRefreshToken
	}

	// Role and branch come from the database, not the old token, so a
	// role change takes effect on the next refresh.
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return LoginResponse{}, autherrors.ErrInvalidRefreshToken
	}
	if !u.IsActive {
		return LoginResponse{}, autherrors.ErrUserInactive
	}

	tokens, err := s.issueTokens(u)
	if err != nil {
		s.logger.Error("failed to sign tokens", zap.Error(err))
		return LoginResponse{}, autherrors.ErrTokenGeneration
	}

	return LoginResponse{User: mapToProfile(u), Tokens: tokens}, nil
}

func (s *service) GetMe(ctx context.Context, userID string) (ProfileResponse, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProfileResponse{}, autherrors.ErrUserNotFound
		}
		return ProfileResponse{}, err
	}
	return mapToProfile(u), nil
}

func (s *service) issueTokens(u *user.User) (TokenPair, error) {
	now := time.Now()
	secret := []byte(os.Getenv("JWT_SECRET"))

	accessClaims := jwt.MapClaims{
		"user_id": u.ID.String(),
		"role":    u.Role,
		"name":    u.Name,
		"iat":     now.Unix(),
		"exp":     now.Add(accessTokenTTL).Unix(),
	}
	if u.BranchID != nil {
		accessClaims["branch_id"] = u.BranchID.String()
	}
	if u.StaffID != nil {
		accessClaims["staff_id"] = u.StaffID.String()
	}
	if u.MemberID != nil {
		accessClaims["member_id"] = u.MemberID.String()
	}

	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString(secret)
	if err != nil {
		return TokenPair{}, err
	}

	refreshClaims := jwt.MapClaims{
		"user_id":    u.ID.String(),
		"token_type": "refresh",
		"iat":        now.Unix(),
		"exp":        now.Add(refreshTokenTTL).Unix(),
	}

	refresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(secret)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func mapToProfile(u *user.User) ProfileResponse {
	resp := ProfileResponse{
		ID:       u.ID.String(),
		Name:     u.Name,
		Email:    u.Email,
		Role:     u.Role,
		IsActive: u.IsActive,
	}
	if u.BranchID != nil {
		resp.BranchID = u.BranchID.String()
	}
	if u.StaffID != nil {
		resp.StaffID = u.StaffID.String()
	}
	if u.MemberID != nil {
		resp.MemberID = u.MemberID.String()
	}
	return resp
}
