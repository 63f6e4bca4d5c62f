// Package tests contains integration tests that run against a real PostgreSQL instance
package tests

import (
	"testing"

	"github.com/adwave/asp-platform/models"
	testingutil "github.com/adwave/asp-platform/testing"
	"github.com/adwave/asp-platform/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestStatusEnums(t *testing.T) {
	t.Run("UserStatus", func(t *testing.T) {
		assert.True(t, models.UserStatusActive.Valid())
		assert.True(t, models.UserStatusSuspended.Valid())
		assert.True(t, models.UserStatusBanned.Valid())
		assert.False(t, models.UserStatus("deleted").Valid())
	})

	t.Run("ProgramStatus", func(t *testing.T) {
		assert.True(t, models.ProgramStatusDraft.Valid())
		assert.True(t, models.ProgramStatusActive.Valid())
		assert.True(t, models.ProgramStatusPaused.Valid())
		assert.True(t, models.ProgramStatusTerminated.Valid())
		assert.False(t, models.ProgramStatus("archived").Valid())
	})

	t.Run("PartnershipStatus", func(t *testing.T) {
		assert.True(t, models.PartnershipStatusPending.Valid())
		assert.True(t, models.PartnershipStatusApproved.Valid())
		assert.True(t, models.PartnershipStatusRejected.Valid())
		assert.False(t, models.PartnershipStatus("cancelled").Valid())
	})

	t.Run("ConversionStatus", func(t *testing.T) {
		assert.True(t, models.ConversionStatusPending.Valid())
		assert.True(t, models.ConversionStatusApproved.Valid())
		assert.True(t, models.ConversionStatusRejected.Valid())
		assert.False(t, models.ConversionStatus("void").Valid())
	})

	t.Run("CommissionType", func(t *testing.T) {
		assert.True(t, models.CommissionTypeCPA.Valid())
		assert.True(t, models.CommissionTypeCPC.Valid())
		assert.True(t, models.CommissionTypeHybrid.Valid())
		assert.False(t, models.CommissionType("cps").Valid())
	})
}

func TestStatusScanAndValue(t *testing.T) {
	t.Run("ScanFromString", func(t *testing.T) {
		var status models.ConversionStatus
		require.NoError(t, status.Scan("approved"))
		assert.Equal(t, models.ConversionStatusApproved, status)
	})

	t.Run("ScanFromBytes", func(t *testing.T) {
		var status models.PartnershipStatus
		require.NoError(t, status.Scan([]byte("pending")))
		assert.Equal(t, models.PartnershipStatusPending, status)
	})

	t.Run("ScanNil", func(t *testing.T) {
		var status models.ProgramStatus
		require.NoError(t, status.Scan(nil))
		assert.Equal(t, models.ProgramStatus(""), status)
	})

	t.Run("ScanUnsupportedType", func(t *testing.T) {
		var status models.ConversionStatus
		assert.Error(t, status.Scan(42))
	})

	t.Run("ValueValid", func(t *testing.T) {
		v, err := models.ProgramStatusActive.Value()
		require.NoError(t, err)
		assert.Equal(t, "active", v)
	})

	t.Run("ValueInvalid", func(t *testing.T) {
		_, err := models.ProgramStatus("archived").Value()
		assert.Error(t, err)
	})
}

func TestConversionItems(t *testing.T) {
	t.Run("EmptyValueIsNull", func(t *testing.T) {
		var items models.ConversionItems
		v, err := items.Value()
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("RoundTrip", func(t *testing.T) {
		payload := `[{"sku":"A-1","qty":2}]`
		var items models.ConversionItems
		require.NoError(t, items.Scan([]byte(payload)))

		v, err := items.Value()
		require.NoError(t, err)
		assert.Equal(t, []byte(payload), v)
	})
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "users", models.User{}.TableName())
	assert.Equal(t, "advertisers", models.Advertiser{}.TableName())
	assert.Equal(t, "publishers", models.Publisher{}.TableName())
	assert.Equal(t, "publisher_sites", models.PublisherSite{}.TableName())
	assert.Equal(t, "categories", models.Category{}.TableName())
	assert.Equal(t, "programs", models.Program{}.TableName())
	assert.Equal(t, "partnerships", models.Partnership{}.TableName())
	assert.Equal(t, "clicks", models.Click{}.TableName())
	assert.Equal(t, "conversions", models.Conversion{}.TableName())
}

func TestModelRelationships(t *testing.T) {
	withDB(t, func(testDB *testingutil.TestDB) {
		fixtures := testingutil.NewTestFixtures(testDB)

		t.Run("UserPasswordIsHashed", func(t *testing.T) {
			user, err := fixtures.CreateTestUser(models.UserTypePublisher)
			require.NoError(t, err)
			assert.NotZero(t, user.ID)
			assert.NotEqual(t, testingutil.TestPassword, user.PasswordHash)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(testingutil.TestPassword)))
		})

		t.Run("ClickPreloadsPartnership", func(t *testing.T) {
			advertiser, err := fixtures.CreateTestAdvertiser()
			require.NoError(t, err)
			program, err := fixtures.CreateTestProgram(advertiser.ID)
			require.NoError(t, err)
			publisher, err := fixtures.CreateTestPublisher()
			require.NoError(t, err)
			partnership, err := fixtures.CreateTestPartnership(program.ID, publisher.ID, models.PartnershipStatusApproved)
			require.NoError(t, err)
			click, err := fixtures.CreateTestClick(partnership.ID)
			require.NoError(t, err)

			var loaded models.Click
			err = testDB.DB.Preload("Partnership").Preload("Partnership.Program").
				First(&loaded, click.ID).Error
			require.NoError(t, err)
			assert.Equal(t, partnership.AffiliateCode, loaded.Partnership.AffiliateCode)
			assert.Equal(t, program.ProgramCode, loaded.Partnership.Program.ProgramCode)
			assert.Equal(t, utils.DeviceDesktop, loaded.DeviceType)
		})

		t.Run("PartnershipCountersStartAtZero", func(t *testing.T) {
			advertiser, err := fixtures.CreateTestAdvertiser()
			require.NoError(t, err)
			program, err := fixtures.CreateTestProgram(advertiser.ID)
			require.NoError(t, err)
			publisher, err := fixtures.CreateTestPublisher()
			require.NoError(t, err)
			partnership, err := fixtures.CreateTestPartnership(program.ID, publisher.ID, models.PartnershipStatusPending)
			require.NoError(t, err)

			var loaded models.Partnership
			require.NoError(t, testDB.DB.First(&loaded, partnership.ID).Error)
			assert.Equal(t, int64(0), loaded.TotalClicks)
			assert.Equal(t, int64(0), loaded.TotalConversions)
			assert.True(t, loaded.TotalEarnings.Equal(decimal.Zero))
		})
	})
}
