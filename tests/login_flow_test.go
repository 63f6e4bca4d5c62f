// Package tests contains integration tests that run against a real PostgreSQL instance
package tests

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/adwave/asp-platform/app/dto"
	businessflow "github.com/adwave/asp-platform/business_flow"
	"github.com/adwave/asp-platform/config"
	"github.com/adwave/asp-platform/models"
	"github.com/adwave/asp-platform/repository"
	testingutil "github.com/adwave/asp-platform/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginFlow(t *testing.T) {
	withDB(t, func(testDB *testingutil.TestDB) {
		fixtures := testingutil.NewTestFixtures(testDB)

		userRepo := repository.NewUserRepository(testDB.DB)
		advertiserRepo := repository.NewAdvertiserRepository(testDB.DB)
		publisherRepo := repository.NewPublisherRepository(testDB.DB)

		tokenService := newTestTokenService(t)

		loginFlow := businessflow.NewLoginFlow(
			userRepo,
			advertiserRepo,
			publisherRepo,
			tokenService,
			config.JWTConfig{AccessTokenTTL: 1 * time.Hour},
		)

		metadata := businessflow.NewClientMetadata("127.0.0.1", "Test User Agent")

		t.Run("SuccessfulAdvertiserLogin", func(t *testing.T) {
			advertiser, err := fixtures.CreateTestAdvertiser()
			require.NoError(t, err)

			loginReq := &dto.LoginRequest{
				Email:    advertiser.User.Email,
				Password: testingutil.TestPassword,
			}

			result, err := loginFlow.Login(context.Background(), loginReq, metadata)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.True(t, result.Success)
			assert.NotEmpty(t, result.Data.AccessToken)
			assert.NotEmpty(t, result.Data.RefreshToken)
			assert.Equal(t, "Bearer", result.Data.TokenType)
			assert.Equal(t, 3600, result.Data.ExpiresIn)
			assert.True(t, result.Data.ExpiresAt.After(time.Now()))

			assert.Equal(t, advertiser.User.ID, result.Data.User.ID)
			assert.Equal(t, advertiser.User.Email, result.Data.User.Email)
			assert.Equal(t, models.UserTypeAdvertiser, result.Data.User.UserType)
			assert.Equal(t, advertiser.CompanyName, result.Data.User.DisplayName)

			// The issued token resolves back to the same user
			claims, err := tokenService.ValidateToken(result.Data.AccessToken)
			require.NoError(t, err)
			assert.Equal(t, advertiser.User.ID, claims.UserID)
			assert.Equal(t, models.UserTypeAdvertiser, claims.UserType)
		})

		t.Run("SuccessfulPublisherLogin", func(t *testing.T) {
			publisher, err := fixtures.CreateTestPublisher()
			require.NoError(t, err)

			loginReq := &dto.LoginRequest{
				Email:    publisher.User.Email,
				Password: testingutil.TestPassword,
			}

			result, err := loginFlow.Login(context.Background(), loginReq, metadata)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.True(t, result.Success)
			assert.Equal(t, models.UserTypePublisher, result.Data.User.UserType)
			assert.Equal(t, "Taro Yamada", result.Data.User.DisplayName)
		})

		t.Run("EmailIsCaseInsensitive", func(t *testing.T) {
			publisher, err := fixtures.CreateTestPublisher()
			require.NoError(t, err)

			loginReq := &dto.LoginRequest{
				Email:    "  " + strings.ToUpper(publisher.User.Email) + "  ",
				Password: testingutil.TestPassword,
			}

			result, err := loginFlow.Login(context.Background(), loginReq, metadata)
			require.NoError(t, err)
			assert.True(t, result.Success)
		})

		t.Run("UserNotFound", func(t *testing.T) {
			loginReq := &dto.LoginRequest{
				Email:    "nonexistent@example.com",
				Password: testingutil.TestPassword,
			}

			result, err := loginFlow.Login(context.Background(), loginReq, metadata)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, businessflow.IsUserNotFound(err))
		})

		t.Run("IncorrectPassword", func(t *testing.T) {
			publisher, err := fixtures.CreateTestPublisher()
			require.NoError(t, err)

			loginReq := &dto.LoginRequest{
				Email:    publisher.User.Email,
				Password: "WrongPass456!",
			}

			result, err := loginFlow.Login(context.Background(), loginReq, metadata)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, businessflow.IsIncorrectPassword(err))
		})

		t.Run("SuspendedAccountCannotLogin", func(t *testing.T) {
			publisher, err := fixtures.CreateTestPublisher()
			require.NoError(t, err)
			require.NoError(t, userRepo.UpdateStatus(context.Background(), publisher.UserID, models.UserStatusSuspended))

			loginReq := &dto.LoginRequest{
				Email:    publisher.User.Email,
				Password: testingutil.TestPassword,
			}

			result, err := loginFlow.Login(context.Background(), loginReq, metadata)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, businessflow.IsAccountInactive(err))
		})
	})
}

func TestResolvePrincipal(t *testing.T) {
	withDB(t, func(testDB *testingutil.TestDB) {
		fixtures := testingutil.NewTestFixtures(testDB)

		userRepo := repository.NewUserRepository(testDB.DB)
		advertiserRepo := repository.NewAdvertiserRepository(testDB.DB)
		publisherRepo := repository.NewPublisherRepository(testDB.DB)

		loginFlow := businessflow.NewLoginFlow(
			userRepo,
			advertiserRepo,
			publisherRepo,
			newTestTokenService(t),
			config.JWTConfig{AccessTokenTTL: 1 * time.Hour},
		)

		t.Run("AdvertiserPrincipal", func(t *testing.T) {
			advertiser, err := fixtures.CreateTestAdvertiser()
			require.NoError(t, err)

			principal, err := loginFlow.ResolvePrincipal(context.Background(), advertiser.UserID, models.UserTypeAdvertiser)
			require.NoError(t, err)
			require.NotNil(t, principal)
			assert.True(t, principal.IsAdvertiser())
			require.NotNil(t, principal.AdvertiserID)
			assert.Equal(t, advertiser.ID, *principal.AdvertiserID)
			assert.Nil(t, principal.PublisherID)
		})

		t.Run("PublisherPrincipal", func(t *testing.T) {
			publisher, err := fixtures.CreateTestPublisher()
			require.NoError(t, err)

			principal, err := loginFlow.ResolvePrincipal(context.Background(), publisher.UserID, models.UserTypePublisher)
			require.NoError(t, err)
			require.NotNil(t, principal)
			assert.True(t, principal.IsPublisher())
			require.NotNil(t, principal.PublisherID)
			assert.Equal(t, publisher.ID, *principal.PublisherID)
		})

		t.Run("AdminHasNoRoleProfile", func(t *testing.T) {
			admin, err := fixtures.CreateTestUser(models.UserTypeAdmin)
			require.NoError(t, err)

			principal, err := loginFlow.ResolvePrincipal(context.Background(), admin.ID, models.UserTypeAdmin)
			require.NoError(t, err)
			require.NotNil(t, principal)
			assert.True(t, principal.IsAdmin())
			assert.Nil(t, principal.AdvertiserID)
			assert.Nil(t, principal.PublisherID)
		})

		t.Run("MissingProfile", func(t *testing.T) {
			user, err := fixtures.CreateTestUser(models.UserTypeAdvertiser)
			require.NoError(t, err)

			principal, err := loginFlow.ResolvePrincipal(context.Background(), user.ID, models.UserTypeAdvertiser)
			require.Error(t, err)
			assert.Nil(t, principal)
			assert.True(t, businessflow.IsProfileNotFound(err))
		})

		t.Run("UnknownUserType", func(t *testing.T) {
			principal, err := loginFlow.ResolvePrincipal(context.Background(), 1, "bot")
			require.Error(t, err)
			assert.Nil(t, principal)
			assert.True(t, businessflow.IsAccessDenied(err))
		})
	})
}
