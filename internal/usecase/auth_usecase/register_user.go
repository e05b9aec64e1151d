package auth

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/LamineSayad1/agriconnect/internal/domain/model"
	"github.com/LamineSayad1/agriconnect/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// 会員登録の入力
type RegisterUserInput struct {
	Email    string
	Password string
	FullName string
	UserType string
}

// 会員登録の出力
type RegisterUserOutput struct {
	Profile model.Profile
}

var (
	// 入力が不正
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrInvalidFullName    = errors.New("invalid full name")
	ErrInvalidUserType    = errors.New("invalid user type")

	// 競合
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ログイン失敗
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

// UUID 等のIDを作る約束
type IDGenerator interface {
	NewID() string
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// RegisterUserUsecaseは会員登録の処理。
type RegisterUserUsecase struct {
	profileRepo repository.ProfileRepository
	hasher      PasswordHasher
	idGen       IDGenerator
	clock       Clock
}

// DI
func NewRegisterUserUsecase(
	profileRepo repository.ProfileRepository,
	hasher PasswordHasher,
	idGen IDGenerator,
	clock Clock,
) *RegisterUserUsecase {
	return &RegisterUserUsecase{
		profileRepo: profileRepo,
		hasher:      hasher,
		idGen:       idGen,
		clock:       clock,
	}
}

// 会員登録実行
func (u *RegisterUserUsecase) Execute(ctx context.Context, in RegisterUserInput) (RegisterUserOutput, error) {
	var out RegisterUserOutput

	// emailの形式チェック
	if !isValidEmailFormat(in.Email) {
		return out, ErrInvalidEmailFormat
	}

	// password の長さチェック（最小8文字）
	if len(in.Password) < 8 {
		return out, ErrPasswordTooShort
	}

	fullName := strings.TrimSpace(in.FullName)
	if fullName == "" || len(fullName) > 255 {
		return out, ErrInvalidFullName
	}

	// ロールは farmer / buyer / supplier のどれか
	userType := model.UserType(strings.TrimSpace(in.UserType))
	switch userType {
	case model.UserTypeFarmer, model.UserTypeBuyer, model.UserTypeSupplier:
	default:
		return out, ErrInvalidUserType
	}

	// email重複チェック
	_, err := u.profileRepo.FindByEmail(ctx, in.Email)
	if err == nil {
		return out, ErrEmailAlreadyExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return out, err
	}

	// パスワードをハッシュ化
	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return out, err
	}

	now := u.clock.Now()
	profile := model.Profile{
		ID:           u.idGen.NewID(),
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: hashed, // ハッシュを保存（平文は保存しない）
		FullName:     fullName,
		UserType:     userType,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// DBへ保存
	if err := u.profileRepo.Create(ctx, profile); err != nil {
		return out, err
	}

	out.Profile = profile
	return out, nil
}

// メールチェック
func isValidEmailFormat(email string) bool {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return false
	}
	_, err := mail.ParseAddress(trimmed)
	return err == nil
}

// bcryptハッシュ化
type BcryptPasswordHasher struct {
	cost int
}

// DI
func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost}
}

func (h *BcryptPasswordHasher) Hash(plain string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// bcryptハッシュと平文を比較
type BcryptPasswordVerifier struct{}

// DI
func NewBcryptPasswordVerifier() *BcryptPasswordVerifier {
	return &BcryptPasswordVerifier{}
}

func (v *BcryptPasswordVerifier) Verify(plain string, hashed string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	return err == nil
}
