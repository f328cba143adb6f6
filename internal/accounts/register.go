package accounts

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/stridekart/backend/pkg/config"
	"github.com/stridekart/backend/pkg/db"
	"github.com/stridekart/backend/pkg/db/models"
	"github.com/stridekart/backend/pkg/enums"
	pkgerrors "github.com/stridekart/backend/pkg/errors"
	"github.com/stridekart/backend/pkg/identity"
	"github.com/stridekart/backend/pkg/security"
)

// RegisterService handles the onboarding transactions.
type RegisterService interface {
	RegisterCustomer(ctx context.Context, req RegisterCustomerRequest) (*AccountDTO, error)
	RegisterVendor(ctx context.Context, req RegisterVendorRequest) (*AccountDTO, error)
}

type identityVerifier interface {
	Verify(ctx context.Context, idToken string) (*identity.Claims, error)
}

// RegisterServiceParams packages the dependencies for the registration flows.
type RegisterServiceParams struct {
	DB             *db.Client
	Identity       identityVerifier
	PasswordConfig config.PasswordConfig
}

type registerService struct {
	db          *db.Client
	identity    identityVerifier
	passwordCfg config.PasswordConfig
}

// NewRegisterService builds a registration service with the provided dependencies.
func NewRegisterService(params RegisterServiceParams) (RegisterService, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	if params.Identity == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "identity verifier required")
	}
	return &registerService{
		db:          params.DB,
		identity:    params.Identity,
		passwordCfg: params.PasswordConfig,
	}, nil
}

// RegisterCustomer verifies the provider token server-side, then creates the
// account and customer profile in one transaction.
func (s *registerService) RegisterCustomer(ctx context.Context, req RegisterCustomerRequest) (*AccountDTO, error) {
	claims, err := verifyIdentityToken(ctx, s.identity, req.IDToken)
	if err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(claims.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "identity token carries no verified email")
	}
	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "phone is required")
	}

	var account *models.Account
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)

		if err := ensureEmailFree(ctx, repo, email); err != nil {
			return err
		}
		taken, err := repo.CustomerPhoneExists(ctx, phone)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check phone")
		}
		if taken {
			return pkgerrors.New(pkgerrors.CodeConflict, "phone already registered")
		}
		if _, err := repo.FindCustomerProfileByExternalUID(ctx, claims.Subject); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "identity already registered")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check identity uid")
		}

		account = &models.Account{
			ID:        newID(),
			Email:     email,
			FirstName: strings.TrimSpace(req.FirstName),
			LastName:  strings.TrimSpace(req.LastName),
			Role:      enums.RoleUser,
		}
		if err := repo.CreateAccount(ctx, account); err != nil {
			return classifyCreateError(err, "create account")
		}

		uid := claims.Subject
		profile := &models.CustomerProfile{
			ID:          newID(),
			AccountID:   account.ID,
			Phone:       phone,
			ExternalUID: &uid,
		}
		if err := repo.CreateCustomerProfile(ctx, profile); err != nil {
			return classifyCreateError(err, "create customer profile")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	dto := FromAccountModel(account)
	return &dto, nil
}

// RegisterVendor creates the account, vendor profile and optional bank detail
// in one transaction; any failure leaves no partial record behind.
func (s *registerService) RegisterVendor(ctx context.Context, req RegisterVendorRequest) (*AccountDTO, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	shopName := strings.TrimSpace(req.ShopName)
	if shopName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop name is required")
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var account *models.Account
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)

		if err := ensureEmailFree(ctx, repo, email); err != nil {
			return err
		}
		taken, err := repo.ShopNameExists(ctx, shopName)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check shop name")
		}
		if taken {
			return pkgerrors.New(pkgerrors.CodeConflict, "shop name already registered")
		}

		account = &models.Account{
			ID:           newID(),
			Email:        email,
			PasswordHash: &passwordHash,
			FirstName:    strings.TrimSpace(req.FirstName),
			LastName:     strings.TrimSpace(req.LastName),
			Role:         enums.RoleVendor,
		}
		if err := repo.CreateAccount(ctx, account); err != nil {
			return classifyCreateError(err, "create account")
		}

		profile := &models.VendorProfile{
			ID:              newID(),
			AccountID:       account.ID,
			ShopName:        shopName,
			ShopAddress:     strings.TrimSpace(req.ShopAddress),
			BusinessPhone:   strings.TrimSpace(req.BusinessPhone),
			Description:     optionalString(req.Description),
			TaxDocumentPath: req.TaxDocumentPath,
			IDDocumentPath:  req.IDDocumentPath,
		}
		if err := repo.CreateVendorProfile(ctx, profile); err != nil {
			return classifyCreateError(err, "create vendor profile")
		}

		if req.Bank != nil {
			detail := &models.BankDetail{
				ID:              newID(),
				VendorProfileID: profile.ID,
				AccountNumber:   req.Bank.AccountNumber,
				IFSCCode:        req.Bank.IFSCCode,
				BeneficiaryName: req.Bank.BeneficiaryName,
			}
			if err := repo.CreateBankDetail(ctx, detail); err != nil {
				return classifyCreateError(err, "create bank detail")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	dto := FromAccountModel(account)
	return &dto, nil
}

func ensureEmailFree(ctx context.Context, repo *Repository, email string) error {
	if _, err := repo.FindAccountByEmail(ctx, email); err == nil {
		return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check account email")
	}
	return nil
}

func optionalString(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func classifyCreateError(err error, action string) error {
	if db.IsUniqueViolation(err, "") {
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "already registered")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, action)
}

func verifyIdentityToken(ctx context.Context, verifier identityVerifier, idToken string) (*identity.Claims, error) {
	claims, err := verifier.Verify(ctx, strings.TrimSpace(idToken))
	if err != nil {
		if errors.Is(err, identity.ErrTokenExpired) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "identity token expired, sign in again")
		}
		if errors.Is(err, identity.ErrTokenInvalid) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "identity token rejected")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "identity provider unavailable")
	}
	return claims, nil
}
