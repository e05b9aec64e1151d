package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/LamineSayad1/agriconnect/internal/domain/model"
	"github.com/LamineSayad1/agriconnect/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newProfileUC() (*usecase.ProfileUsecase, *ProfileRepoMock, *ProductRepoMock) {
	profRepo := new(ProfileRepoMock)
	prodRepo := new(ProductRepoMock)
	return usecase.NewProfileUsecase(profRepo, prodRepo), profRepo, prodRepo
}

func TestUpdateMe_FullNameRequired(t *testing.T) {
	uc, _, _ := newProfileUC()

	_, err := uc.UpdateMe(context.Background(), "user-1", usecase.UpdateProfileInput{FullName: "  "})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestUpdateMe_Success(t *testing.T) {
	ctx := context.Background()
	uc, profRepo, _ := newProfileUC()

	profRepo.On("FindByID", mock.Anything, "user-1").Return(model.Profile{ID: "user-1", UserType: model.UserTypeFarmer}, nil)
	profRepo.On("Update", mock.Anything, mock.MatchedBy(func(p model.Profile) bool {
		return p.FullName == "Aya Tanaka" && p.FarmName == "Green Hill"
	})).Return(nil)

	p, err := uc.UpdateMe(ctx, "user-1", usecase.UpdateProfileInput{
		FullName: " Aya Tanaka ",
		FarmName: " Green Hill ",
	})
	assert.NoError(t, err)
	assert.Equal(t, "Aya Tanaka", p.FullName)
}

// 公開ページではメールを出さず、公開中の商品だけ返す
func TestGetSellerProfile_HidesEmailAndUnavailableProducts(t *testing.T) {
	ctx := context.Background()
	uc, profRepo, prodRepo := newProfileUC()

	profRepo.On("FindByID", mock.Anything, sellerA).Return(model.Profile{
		ID:       sellerA,
		Email:    "farmer@example.com",
		UserType: model.UserTypeFarmer,
	}, nil)

	hidden := availableProduct(prodRice, sellerA, "Rice", "12.00")
	hidden.IsAvailable = false
	prodRepo.On("ListBySellerID", mock.Anything, sellerA).Return([]model.Product{
		availableProduct(prodTea, sellerA, "Tea", "3.00"),
		hidden,
	}, nil)

	out, err := uc.GetSellerProfile(ctx, sellerA)
	assert.NoError(t, err)
	assert.Equal(t, "", out.Profile.Email)
	assert.Equal(t, 1, len(out.Products))
	assert.Equal(t, prodTea, out.Products[0].ID)
}

// buyerのプロフィールは販売者ページとして公開しない
func TestGetSellerProfile_BuyerNotFound(t *testing.T) {
	ctx := context.Background()
	uc, profRepo, _ := newProfileUC()

	profRepo.On("FindByID", mock.Anything, "buyer-9").Return(model.Profile{
		ID:       "buyer-9",
		UserType: model.UserTypeBuyer,
	}, nil)

	_, err := uc.GetSellerProfile(ctx, "buyer-9")
	assertHTTPStatus(t, err, http.StatusNotFound)
}
