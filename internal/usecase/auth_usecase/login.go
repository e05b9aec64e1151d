package auth

import (
	"context"
	"errors"
	"time"

	"github.com/LamineSayad1/agriconnect/internal/domain/model"
	"github.com/LamineSayad1/agriconnect/internal/repository"
)

// アクセストークンを発行する約束（JWT実装はcmd側）
type TokenIssuer interface {
	Issue(userID string, userType model.UserType, now time.Time) (token string, expiresAt time.Time, err error)
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	Profile     model.Profile
	AccessToken string
	ExpiresAt   time.Time
}

type LoginUsecase struct {
	profileRepo repository.ProfileRepository
	verifier    PasswordVerifier
	issuer      TokenIssuer
	clock       Clock
}

// DI
func NewLoginUsecase(
	profileRepo repository.ProfileRepository,
	verifier PasswordVerifier,
	issuer TokenIssuer,
	clock Clock,
) *LoginUsecase {
	return &LoginUsecase{
		profileRepo: profileRepo,
		verifier:    verifier,
		issuer:      issuer,
		clock:       clock,
	}
}

// ログイン実行
func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	var out LoginOutput

	if in.Email == "" || in.Password == "" {
		return out, ErrInvalidCredentials
	}

	profile, err := u.profileRepo.FindByEmail(ctx, in.Email)
	if errors.Is(err, repository.ErrNotFound) {
		// 存在しないユーザーでも同じエラー（列挙攻撃対策）
		return out, ErrInvalidCredentials
	}
	if err != nil {
		return out, err
	}

	if !u.verifier.Verify(in.Password, profile.PasswordHash) {
		return out, ErrInvalidCredentials
	}

	token, expiresAt, err := u.issuer.Issue(profile.ID, profile.UserType, u.clock.Now())
	if err != nil {
		return out, err
	}

	out.Profile = profile
	out.AccessToken = token
	out.ExpiresAt = expiresAt
	return out, nil
}
