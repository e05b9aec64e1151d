package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/LamineSayad1/agriconnect/internal/domain/model"
	repo "github.com/LamineSayad1/agriconnect/internal/repository"
)

type ProfileUsecase struct {
	profileRepo repo.ProfileRepository
	productRepo repo.ProductRepository
}

func NewProfileUsecase(profileRepo repo.ProfileRepository, productRepo repo.ProductRepository) *ProfileUsecase {
	return &ProfileUsecase{
		profileRepo: profileRepo,
		productRepo: productRepo,
	}
}

type UpdateProfileInput struct {
	FullName        string
	FarmName        string
	FarmDescription string
	FarmLocation    string
	Phone           string
	AvatarURL       string
	ShippingAddress string
}

// 販売者の公開プロフィール（商品つき）
type SellerProfileOutput struct {
	Profile  model.Profile   `json:"profile"`
	Products []model.Product `json:"products"`
}

func (u *ProfileUsecase) GetMe(ctx context.Context, userID string) (model.Profile, error) {
	if userID == "" {
		return model.Profile{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	p, err := u.profileRepo.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Profile{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Profile{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

func (u *ProfileUsecase) UpdateMe(ctx context.Context, userID string, in UpdateProfileInput) (model.Profile, error) {
	if userID == "" {
		return model.Profile{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	fullName := strings.TrimSpace(in.FullName)
	if fullName == "" || len(fullName) > 255 {
		return model.Profile{}, NewHTTPError(http.StatusBadRequest, "invalid full_name")
	}

	p, err := u.profileRepo.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Profile{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Profile{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	p.FullName = fullName
	p.FarmName = strings.TrimSpace(in.FarmName)
	p.FarmDescription = in.FarmDescription
	p.FarmLocation = strings.TrimSpace(in.FarmLocation)
	p.Phone = strings.TrimSpace(in.Phone)
	p.AvatarURL = strings.TrimSpace(in.AvatarURL)
	p.ShippingAddress = in.ShippingAddress

	if err := u.profileRepo.Update(ctx, p); err != nil {
		return model.Profile{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

// 販売者の公開ページ（farmer-profile / supplier-profile 画面）
func (u *ProfileUsecase) GetSellerProfile(ctx context.Context, sellerID string) (SellerProfileOutput, error) {
	if sellerID == "" {
		return SellerProfileOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.profileRepo.FindByID(ctx, sellerID)
	if errors.Is(err, repo.ErrNotFound) {
		return SellerProfileOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return SellerProfileOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.UserType.IsSeller() {
		return SellerProfileOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	//メールは公開しない
	p.Email = ""

	products, err := u.productRepo.ListBySellerID(ctx, sellerID)
	if err != nil {
		return SellerProfileOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//公開中の商品だけ
	visible := make([]model.Product, 0, len(products))
	for _, pr := range products {
		if pr.IsAvailable {
			visible = append(visible, pr)
		}
	}

	return SellerProfileOutput{Profile: p, Products: visible}, nil
}
