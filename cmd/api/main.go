package main

import (
	"context"
	"log"
	"time"

	"github.com/LamineSayad1/agriconnect/internal/cart"
	"github.com/LamineSayad1/agriconnect/internal/config"
	"github.com/LamineSayad1/agriconnect/internal/domain/model"
	"github.com/LamineSayad1/agriconnect/internal/handler"
	"github.com/LamineSayad1/agriconnect/internal/infra/db"
	"github.com/LamineSayad1/agriconnect/internal/infra/redisx"
	infraRepo "github.com/LamineSayad1/agriconnect/internal/infra/repository"
	"github.com/LamineSayad1/agriconnect/internal/server"
	"github.com/LamineSayad1/agriconnect/internal/usecase"
	auth "github.com/LamineSayad1/agriconnect/internal/usecase/auth_usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func newJWTIssuer(cfg config.Config) *jwtIssuer {
	//アクセストークン
	return &jwtIssuer{
		secret:    []byte(cfg.JWTSecret),
		accessTTL: 15 * time.Minute,
	}
}

func (i *jwtIssuer) Issue(userID string, userType model.UserType, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":       userID,
		"user_type": string(userType),
		"iat":       now.Unix(),
		"exp":       expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	// .envはローカル用。なければ環境変数だけで動く
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}
	if err := gormDB.AutoMigrate(
		&model.Profile{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.Review{},
		&model.InventoryAdjustment{},
	); err != nil {
		log.Fatal(err)
	}

	//カート保存用Redis
	rdb := redisx.New(cfg)
	if err := redisx.Ping(context.Background(), rdb); err != nil {
		log.Fatal(err)
	}
	cartStore := cart.NewRedisStore(rdb)

	//Repository（GORM実装）生成
	profileRepo := infraRepo.NewProfileGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	inventoryRepo := infraRepo.NewInventoryGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}

	//bcrypt（会員登録：Hash / ログイン：Verify）
	hasher := auth.NewBcryptPasswordHasher(12)
	verifier := auth.NewBcryptPasswordVerifier()

	//JWT issuer
	issuer := newJWTIssuer(cfg)

	//Usecase生成
	registerUC := auth.NewRegisterUserUsecase(profileRepo, hasher, idGen, clock)
	loginUC := auth.NewLoginUsecase(profileRepo, verifier, issuer, clock)
	productUC := usecase.NewProductUsecase(productRepo, inventoryRepo, idGen)
	cartUC := usecase.NewCartUsecase(cartStore, productRepo)
	checkoutUC := usecase.NewCheckoutUsecase(txManager, productRepo, cartStore, idGen, clock)
	orderUC := usecase.NewOrderUsecase(txManager)
	reviewUC := usecase.NewReviewUsecase(txManager, idGen, clock)
	profileUC := usecase.NewProfileUsecase(profileRepo, productRepo)

	//Handler生成
	deps := server.Deps{
		Cfg:     cfg,
		Auth:    handler.NewAuthHandler(registerUC, loginUC),
		Product: handler.NewProductHandler(productUC),
		Cart:    handler.NewCartHandler(cartUC),
		Order:   handler.NewOrderHandler(checkoutUC, orderUC),
		Review:  handler.NewReviewHandler(reviewUC),
		Profile: handler.NewProfileHandler(profileUC),
	}

	//Server起動
	if err := server.Start(":"+cfg.Port, deps); err != nil {
		log.Fatal(err)
	}
}
