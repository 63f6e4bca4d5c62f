package businessflow

import (
	"context"
	"strings"

	"github.com/adwave/asp-platform/app/dto"
	"github.com/adwave/asp-platform/app/services"
	"github.com/adwave/asp-platform/config"
	"github.com/adwave/asp-platform/models"
	"github.com/adwave/asp-platform/repository"
	"github.com/adwave/asp-platform/utils"
	"golang.org/x/crypto/bcrypt"
)

// LoginFlow handles user authentication
type LoginFlow interface {
	Login(ctx context.Context, request *dto.LoginRequest, metadata *ClientMetadata) (*dto.LoginResponse, error)
	ResolvePrincipal(ctx context.Context, userID uint, userType string) (*Principal, error)
}

// LoginFlowImpl implements the login business flow
type LoginFlowImpl struct {
	userRepo       repository.UserRepository
	advertiserRepo repository.AdvertiserRepository
	publisherRepo  repository.PublisherRepository
	tokenService   services.TokenService
	jwtConfig      config.JWTConfig
}

// NewLoginFlow creates a new login flow instance
func NewLoginFlow(
	userRepo repository.UserRepository,
	advertiserRepo repository.AdvertiserRepository,
	publisherRepo repository.PublisherRepository,
	tokenService services.TokenService,
	jwtConfig config.JWTConfig,
) LoginFlow {
	return &LoginFlowImpl{
		userRepo:       userRepo,
		advertiserRepo: advertiserRepo,
		publisherRepo:  publisherRepo,
		tokenService:   tokenService,
		jwtConfig:      jwtConfig,
	}
}

// Login authenticates a user with email and password
func (lf *LoginFlowImpl) Login(ctx context.Context, request *dto.LoginRequest, metadata *ClientMetadata) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(request.Email))

	user, err := lf.userRepo.ByEmail(ctx, email)
	if err != nil {
		return nil, NewBusinessError("USER_LOOKUP_FAILED", "Failed to lookup user", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if user.Status != models.UserStatusActive {
		return nil, ErrAccountInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(request.Password)); err != nil {
		return nil, ErrIncorrectPassword
	}

	displayName, err := lf.displayName(ctx, user)
	if err != nil {
		return nil, err
	}

	accessToken, refreshToken, err := lf.tokenService.GenerateTokens(user.ID, user.UserType)
	if err != nil {
		return nil, NewBusinessError("TOKEN_GENERATION_FAILED", "Failed to generate tokens", err)
	}

	response := &dto.LoginResponse{
		Success: true,
		Message: "Login successful",
	}
	response.Data.AccessToken = accessToken
	response.Data.RefreshToken = refreshToken
	response.Data.TokenType = "Bearer"
	response.Data.ExpiresIn = int(lf.jwtConfig.AccessTokenTTL.Seconds())
	response.Data.ExpiresAt = utils.UTCNow().Add(lf.jwtConfig.AccessTokenTTL)
	response.SetUserInfo(user.ID, user.Email, user.UserType, displayName, user.Status.String(), user.CreatedAt)

	return response, nil
}

// ResolvePrincipal loads the role profile behind an authenticated user id.
// The returned principal is what flows dispatch on.
func (lf *LoginFlowImpl) ResolvePrincipal(ctx context.Context, userID uint, userType string) (*Principal, error) {
	principal := &Principal{UserID: userID, UserType: userType}

	switch userType {
	case models.UserTypeAdvertiser:
		advertiser, err := lf.advertiserRepo.ByUserID(ctx, userID)
		if err != nil {
			return nil, NewBusinessError("PROFILE_LOOKUP_FAILED", "Failed to lookup advertiser profile", err)
		}
		if advertiser == nil {
			return nil, ErrProfileNotFound
		}
		principal.AdvertiserID = &advertiser.ID
	case models.UserTypePublisher:
		publisher, err := lf.publisherRepo.ByUserID(ctx, userID)
		if err != nil {
			return nil, NewBusinessError("PROFILE_LOOKUP_FAILED", "Failed to lookup publisher profile", err)
		}
		if publisher == nil {
			return nil, ErrProfileNotFound
		}
		principal.PublisherID = &publisher.ID
	case models.UserTypeAdmin:
		// Admins have no role profile beyond the user row.
	default:
		return nil, ErrAccessDenied
	}

	return principal, nil
}

func (lf *LoginFlowImpl) displayName(ctx context.Context, user *models.User) (string, error) {
	switch user.UserType {
	case models.UserTypeAdvertiser:
		advertiser, err := lf.advertiserRepo.ByUserID(ctx, user.ID)
		if err != nil {
			return "", NewBusinessError("PROFILE_LOOKUP_FAILED", "Failed to lookup advertiser profile", err)
		}
		if advertiser != nil {
			return advertiser.CompanyName, nil
		}
	case models.UserTypePublisher:
		publisher, err := lf.publisherRepo.ByUserID(ctx, user.ID)
		if err != nil {
			return "", NewBusinessError("PROFILE_LOOKUP_FAILED", "Failed to lookup publisher profile", err)
		}
		if publisher != nil {
			if publisher.CompanyName != nil && *publisher.CompanyName != "" {
				return *publisher.CompanyName, nil
			}
			name := ""
			if publisher.FirstName != nil {
				name = *publisher.FirstName
			}
			if publisher.LastName != nil {
				if name != "" {
					name += " "
				}
				name += *publisher.LastName
			}
			if name != "" {
				return name, nil
			}
		}
	case models.UserTypeAdmin:
		return "Administrator", nil
	}
	return user.Email, nil
}
