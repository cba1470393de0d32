package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"gstbooks/internal/config"
	"gstbooks/internal/domain"
	"gstbooks/internal/port"
)

// Claims represents the JWT claims with organization context.
type Claims struct {
	jwt.RegisteredClaims
	OrganizationID uuid.UUID       `json:"organization_id"`
	BranchID       uuid.UUID       `json:"branch_id"`
	UserID         uuid.UUID       `json:"user_id"`
	Email          string          `json:"email"`
	Role           domain.UserRole `json:"role"`
}

// TokenPair holds access and refresh tokens.
type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// LoginInput is the DTO for login requests.
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// RefreshInput is the DTO for token refresh requests.
type RefreshInput struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RegisterInput is the DTO for organization sign-up. Registration
// seeds the organization, its head-office branch and the first admin
// user in one transaction.
type RegisterInput struct {
	OrganizationName string `json:"organization_name" binding:"required"`
	GSTIN            string `json:"gstin" binding:"required"`
	StateCode        string `json:"state_code" binding:"required,len=2"`
	Email            string `json:"email" binding:"required,email"`
	Password         string `json:"password" binding:"required,min=8"`
	FullName         string `json:"full_name" binding:"required"`
}

// RegisterOutput reports the seeded identities.
type RegisterOutput struct {
	OrganizationID uuid.UUID `json:"organization_id"`
	BranchID       uuid.UUID `json:"branch_id"`
	UserID         uuid.UUID `json:"user_id"`
}

// AuthService defines the authentication contract.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input LoginInput) (*TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	userRepo   port.UserRepository
	orgRepo    port.OrganizationRepository
	branchRepo port.BranchRepository
	txm        port.TxManager
	cfg        config.JWTConfig
}

// NewAuthService creates a new AuthService implementation.
func NewAuthService(
	userRepo port.UserRepository,
	orgRepo port.OrganizationRepository,
	branchRepo port.BranchRepository,
	txm port.TxManager,
	cfg config.JWTConfig,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		orgRepo:    orgRepo,
		branchRepo: branchRepo,
		txm:        txm,
		cfg:        cfg,
	}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth.Register: %w", err)
	}

	var out RegisterOutput
	err = s.txm.WithinTx(ctx, func(ctx context.Context) error {
		org := &domain.Organization{
			Name:      input.OrganizationName,
			GSTIN:     input.GSTIN,
			StateCode: input.StateCode,
			IsActive:  true,
		}
		if err := s.orgRepo.Create(ctx, org); err != nil {
			return err
		}

		branch := &domain.Branch{
			OrganizationID: org.ID,
			Name:           "Head Office",
			IsHeadOffice:   true,
		}
		if err := s.branchRepo.Create(ctx, branch); err != nil {
			return err
		}

		user := &domain.User{
			OrganizationID: org.ID,
			BranchID:       branch.ID,
			Email:          input.Email,
			PasswordHash:   string(hash),
			FullName:       input.FullName,
			Role:           domain.RoleAdmin,
			IsActive:       true,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return err
		}

		out = RegisterOutput{
			OrganizationID: org.ID,
			BranchID:       branch.ID,
			UserID:         user.ID,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateGSTIN) || errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("auth.Register: %w", err)
	}
	return &out, nil
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*TokenPair, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("auth.Login: %w", err)
	}
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	org, err := s.orgRepo.GetByID(ctx, user.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("auth.Login: %w", err)
	}
	if !org.IsActive {
		return nil, domain.ErrOrganizationInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return s.generateTokenPair(user)
}

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.validateTokenString(refreshToken, "refresh")
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.userRepo.GetByID(ctx, claims.OrganizationID, claims.UserID)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	return s.generateTokenPair(user)
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	return s.validateTokenString(tokenString, "access")
}

func (s *authService) generateTokenPair(user *domain.User) (*TokenPair, error) {
	now := time.Now()
	accessExpiry := now.Add(s.cfg.AccessTokenExpiry)
	refreshExpiry := now.Add(s.cfg.RefreshTokenExpiry)

	accessClaims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(accessExpiry),
			ID:        uuid.New().String(),
			Audience:  jwt.ClaimStrings{"access"},
		},
		OrganizationID: user.OrganizationID,
		BranchID:       user.BranchID,
		UserID:         user.ID,
		Email:          user.Email,
		Role:           user.Role,
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims)
	accessTokenString, err := accessToken.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("signing access token: %w", err)
	}

	refreshClaims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(refreshExpiry),
			ID:        uuid.New().String(),
			Audience:  jwt.ClaimStrings{"refresh"},
		},
		OrganizationID: user.OrganizationID,
		BranchID:       user.BranchID,
		UserID:         user.ID,
		Email:          user.Email,
		Role:           user.Role,
	}

	refreshTokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims)
	refreshTokenString, err := refreshTokenObj.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("signing refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessTokenString,
		RefreshToken: refreshTokenString,
		ExpiresAt:    accessExpiry,
	}, nil
}

func (s *authService) validateTokenString(tokenString, audience string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}
	if !token.Valid {
		return nil, domain.ErrUnauthorized
	}

	// Validate audience
	aud, _ := claims.GetAudience()
	found := false
	for _, a := range aud {
		if a == audience {
			found = true
			break
		}
	}
	if !found {
		return nil, domain.ErrUnauthorized
	}

	return claims, nil
}
