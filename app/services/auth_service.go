package services

import (
	"context"

	"github.com/shashiranjanraj/suby/app/models"
	"github.com/shashiranjanraj/suby/pkg/apperr"
	"github.com/shashiranjanraj/suby/pkg/auth"
)

// AuthService owns vendor registration and login. The firm and product
// stores feed the resolved vendor view returned on login.
type AuthService struct {
	vendors  VendorStore
	firms    FirmStore
	products ProductStore
	tokens   *auth.JWT
}

func NewAuthService(vendors VendorStore, firms FirmStore, products ProductStore, tokens *auth.JWT) *AuthService {
	return &AuthService{vendors: vendors, firms: firms, products: products, tokens: tokens}
}

// RegisterInput carries the validated registration fields.
type RegisterInput struct {
	Username string `json:"username" validate:"required,min=2,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// Register creates a vendor account with a bcrypt-hashed password and an
// empty firm list. Email matching is exact; duplicates are rejected.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) error {
	_, err := s.vendors.FindByEmail(ctx, in.Email)
	if err == nil {
		return apperr.Conflict("Vendor already exists").WithStatus(400)
	}
	if !apperr.IsNotFound(err) {
		return err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return apperr.Dependency("password hash failed", err)
	}

	v := models.Vendor{
		Username: in.Username,
		Email:    in.Email,
		Password: hash,
	}
	return s.vendors.Create(ctx, &v)
}

// LoginResult is the successful login payload.
type LoginResult struct {
	Token  string     `json:"token"`
	Vendor VendorView `json:"vendor"`
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password produce the same error so callers cannot test for
// registered accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	v, err := s.vendors.FindByEmail(ctx, email)
	if err != nil {
		if apperr.IsNotFound(err) {
			return LoginResult{}, apperr.Auth("Invalid credentials")
		}
		return LoginResult{}, err
	}

	if !auth.CheckPassword(v.Password, password) {
		return LoginResult{}, apperr.Auth("Invalid credentials")
	}

	token, err := s.tokens.GenerateToken(v.ID.Hex())
	if err != nil {
		return LoginResult{}, apperr.Dependency("token issue failed", err)
	}

	view, err := resolveVendorView(ctx, v, s.firms, s.products)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Token: token, Vendor: view}, nil
}
