// Package tests contains integration tests that run against a real PostgreSQL instance
package tests

import (
	"context"
	"testing"

	"github.com/adwave/asp-platform/models"
	"github.com/adwave/asp-platform/repository"
	testingutil "github.com/adwave/asp-platform/testing"
	"github.com/adwave/asp-platform/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartnershipRepository(t *testing.T) {
	withDB(t, func(testDB *testingutil.TestDB) {
		fixtures := testingutil.NewTestFixtures(testDB)
		repo := repository.NewPartnershipRepository(testDB.DB)

		advertiser, err := fixtures.CreateTestAdvertiser()
		require.NoError(t, err)
		program, err := fixtures.CreateTestProgram(advertiser.ID)
		require.NoError(t, err)
		publisher, err := fixtures.CreateTestPublisher()
		require.NoError(t, err)
		partnership, err := fixtures.CreateTestPartnership(program.ID, publisher.ID, models.PartnershipStatusApproved)
		require.NoError(t, err)

		t.Run("ByAffiliateCodePreloadsProgram", func(t *testing.T) {
			found, err := repo.ByAffiliateCode(context.Background(), partnership.AffiliateCode)
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, partnership.ID, found.ID)
			assert.Equal(t, program.ID, found.Program.ID)
			assert.Equal(t, program.LandingPageURL, found.Program.LandingPageURL)
			assert.Equal(t, program.CookieDurationDays, found.Program.CookieDurationDays)
		})

		t.Run("ByAffiliateCodeUnknownReturnsNil", func(t *testing.T) {
			found, err := repo.ByAffiliateCode(context.Background(), "AFFNOSUCH1")
			require.NoError(t, err)
			assert.Nil(t, found)
		})

		t.Run("ByProgramAndPublisher", func(t *testing.T) {
			found, err := repo.ByProgramAndPublisher(context.Background(), program.ID, publisher.ID)
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, partnership.ID, found.ID)

			missing, err := repo.ByProgramAndPublisher(context.Background(), program.ID, publisher.ID+1000)
			require.NoError(t, err)
			assert.Nil(t, missing)
		})

		t.Run("IncrementClicksIsRelative", func(t *testing.T) {
			fresh, err := fixtures.CreateTestPartnership(program.ID, publisher.ID, models.PartnershipStatusApproved)
			require.NoError(t, err)

			require.NoError(t, repo.IncrementClicks(context.Background(), fresh.ID, 1))
			require.NoError(t, repo.IncrementClicks(context.Background(), fresh.ID, 1))
			require.NoError(t, repo.IncrementClicks(context.Background(), fresh.ID, 3))

			updated, err := repo.ByID(context.Background(), fresh.ID)
			require.NoError(t, err)
			assert.Equal(t, int64(5), updated.TotalClicks)
		})

		t.Run("IncrementClicksUnknownPartnership", func(t *testing.T) {
			err := repo.IncrementClicks(context.Background(), 999999, 1)
			assert.Error(t, err)
		})

		t.Run("IncrementConversionStatsAccumulates", func(t *testing.T) {
			fresh, err := fixtures.CreateTestPartnership(program.ID, publisher.ID, models.PartnershipStatusApproved)
			require.NoError(t, err)

			require.NoError(t, repo.IncrementConversionStats(context.Background(), fresh.ID, 1, decimal.NewFromInt(500)))
			require.NoError(t, repo.IncrementConversionStats(context.Background(), fresh.ID, 1, decimal.RequireFromString("250.50")))

			updated, err := repo.ByID(context.Background(), fresh.ID)
			require.NoError(t, err)
			assert.Equal(t, int64(2), updated.TotalConversions)
			assert.True(t, updated.TotalEarnings.Equal(decimal.RequireFromString("750.50")),
				"expected 750.50, got %s", updated.TotalEarnings.String())
		})

		t.Run("UpdateStatusSetsReviewedAt", func(t *testing.T) {
			pending, err := fixtures.CreateTestPartnership(program.ID, publisher.ID, models.PartnershipStatusPending)
			require.NoError(t, err)

			now := utils.UTCNow()
			require.NoError(t, repo.UpdateStatus(context.Background(), pending.ID, models.PartnershipStatusApproved, now))

			updated, err := repo.ByID(context.Background(), pending.ID)
			require.NoError(t, err)
			assert.Equal(t, models.PartnershipStatusApproved, updated.Status)
			require.NotNil(t, updated.ReviewedAt)
		})
	})
}

func TestProgramRepository(t *testing.T) {
	withDB(t, func(testDB *testingutil.TestDB) {
		fixtures := testingutil.NewTestFixtures(testDB)
		repo := repository.NewProgramRepository(testDB.DB)

		advertiser, err := fixtures.CreateTestAdvertiser()
		require.NoError(t, err)
		program, err := fixtures.CreateTestProgram(advertiser.ID)
		require.NoError(t, err)

		t.Run("ByProgramCode", func(t *testing.T) {
			found, err := repo.ByProgramCode(context.Background(), program.ProgramCode)
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, program.ID, found.ID)

			missing, err := repo.ByProgramCode(context.Background(), "PRGNOSUCH")
			require.NoError(t, err)
			assert.Nil(t, missing)
		})

		t.Run("IncrementCountersAreRelative", func(t *testing.T) {
			require.NoError(t, repo.IncrementClicks(context.Background(), program.ID, 2))
			require.NoError(t, repo.IncrementClicks(context.Background(), program.ID, 1))
			require.NoError(t, repo.IncrementConversions(context.Background(), program.ID, 1))

			updated, err := repo.ByID(context.Background(), program.ID)
			require.NoError(t, err)
			assert.Equal(t, int64(3), updated.TotalClicks)
			assert.Equal(t, int64(1), updated.TotalConversions)
		})

		t.Run("UpdateStatus", func(t *testing.T) {
			require.NoError(t, repo.UpdateStatus(context.Background(), program.ID, models.ProgramStatusPaused))

			updated, err := repo.ByID(context.Background(), program.ID)
			require.NoError(t, err)
			assert.Equal(t, models.ProgramStatusPaused, updated.Status)
		})
	})
}

func TestClickRepository(t *testing.T) {
	withDB(t, func(testDB *testingutil.TestDB) {
		fixtures := testingutil.NewTestFixtures(testDB)
		repo := repository.NewClickRepository(testDB.DB)

		advertiser, err := fixtures.CreateTestAdvertiser()
		require.NoError(t, err)
		program, err := fixtures.CreateTestProgram(advertiser.ID)
		require.NoError(t, err)
		publisher, err := fixtures.CreateTestPublisher()
		require.NoError(t, err)
		partnership, err := fixtures.CreateTestPartnership(program.ID, publisher.ID, models.PartnershipStatusApproved)
		require.NoError(t, err)

		otherPublisher, err := fixtures.CreateTestPublisher()
		require.NoError(t, err)
		otherPartnership, err := fixtures.CreateTestPartnership(program.ID, otherPublisher.ID, models.PartnershipStatusApproved)
		require.NoError(t, err)

		for i := 0; i < 3; i++ {
			_, err := fixtures.CreateTestClick(partnership.ID)
			require.NoError(t, err)
		}
		click, err := fixtures.CreateTestClick(otherPartnership.ID)
		require.NoError(t, err)

		t.Run("CountByPublisherJoinsPartnerships", func(t *testing.T) {
			count, err := repo.Count(context.Background(), models.ClickFilter{PublisherID: &publisher.ID})
			require.NoError(t, err)
			assert.Equal(t, int64(3), count)

			count, err = repo.Count(context.Background(), models.ClickFilter{PublisherID: &otherPublisher.ID})
			require.NoError(t, err)
			assert.Equal(t, int64(1), count)
		})

		t.Run("CountByAdvertiserJoinsPrograms", func(t *testing.T) {
			count, err := repo.Count(context.Background(), models.ClickFilter{AdvertiserID: &advertiser.ID})
			require.NoError(t, err)
			assert.Equal(t, int64(4), count)
		})

		t.Run("ByClickIDWithPartnership", func(t *testing.T) {
			found, err := repo.ByClickIDWithPartnership(context.Background(), click.ClickID)
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, otherPartnership.ID, found.Partnership.ID)
			assert.Equal(t, program.ID, found.Partnership.Program.ID)
		})

		t.Run("ByClickIDUnknownReturnsNil", func(t *testing.T) {
			found, err := repo.ByClickID(context.Background(), "clk_0_nosuch")
			require.NoError(t, err)
			assert.Nil(t, found)
		})

		t.Run("TimeWindowIsHalfOpen", func(t *testing.T) {
			future := utils.UTCNow().AddDate(0, 0, 1)
			count, err := repo.Count(context.Background(), models.ClickFilter{
				PublisherID:  &publisher.ID,
				ClickedAfter: &future,
			})
			require.NoError(t, err)
			assert.Equal(t, int64(0), count)
		})
	})
}

func TestConversionRepository(t *testing.T) {
	withDB(t, func(testDB *testingutil.TestDB) {
		fixtures := testingutil.NewTestFixtures(testDB)
		repo := repository.NewConversionRepository(testDB.DB)

		advertiser, err := fixtures.CreateTestAdvertiser()
		require.NoError(t, err)
		program, err := fixtures.CreateTestProgram(advertiser.ID)
		require.NoError(t, err)
		publisher, err := fixtures.CreateTestPublisher()
		require.NoError(t, err)
		partnership, err := fixtures.CreateTestPartnership(program.ID, publisher.ID, models.PartnershipStatusApproved)
		require.NoError(t, err)

		newConversion := func(clickID uint, status models.ConversionStatus, sale, commission string) *models.Conversion {
			return &models.Conversion{
				ConversionID:     "cv_" + uuid.New().String(),
				ClickID:          clickID,
				PartnershipID:    partnership.ID,
				ProgramID:        program.ID,
				ConversionType:   utils.ConversionTypeSale,
				SaleAmount:       decimal.RequireFromString(sale),
				CommissionAmount: decimal.RequireFromString(commission),
				Status:           status,
				IPAddress:        "198.51.100.20",
				UserAgent:        "shop-backend/1.0",
				ConvertedAt:      utils.UTCNow(),
			}
		}

		click1, err := fixtures.CreateTestClick(partnership.ID)
		require.NoError(t, err)
		click2, err := fixtures.CreateTestClick(partnership.ID)
		require.NoError(t, err)

		approved := newConversion(click1.ID, models.ConversionStatusApproved, "10000", "500")
		pending := newConversion(click2.ID, models.ConversionStatusPending, "2500.50", "125.03")
		require.NoError(t, repo.Save(context.Background(), approved))
		require.NoError(t, repo.Save(context.Background(), pending))

		t.Run("ExistsForClick", func(t *testing.T) {
			exists, err := repo.ExistsForClick(context.Background(), click1.ID)
			require.NoError(t, err)
			assert.True(t, exists)

			orphanClick, err := fixtures.CreateTestClick(partnership.ID)
			require.NoError(t, err)
			exists, err = repo.ExistsForClick(context.Background(), orphanClick.ID)
			require.NoError(t, err)
			assert.False(t, exists)
		})

		t.Run("TotalsAggregateByPublisher", func(t *testing.T) {
			totals, err := repo.Totals(context.Background(), models.ConversionFilter{PublisherID: &publisher.ID})
			require.NoError(t, err)
			require.NotNil(t, totals)
			assert.Equal(t, int64(2), totals.Count)
			assert.Equal(t, int64(1), totals.ApprovedCount)
			assert.True(t, totals.SaleTotal.Equal(decimal.RequireFromString("12500.50")),
				"expected 12500.50, got %s", totals.SaleTotal.String())
			assert.True(t, totals.CommissionTotal.Equal(decimal.RequireFromString("625.03")),
				"expected 625.03, got %s", totals.CommissionTotal.String())
		})

		t.Run("TotalsEmptyScopeIsZero", func(t *testing.T) {
			strangerID := publisher.ID + 1000
			totals, err := repo.Totals(context.Background(), models.ConversionFilter{PublisherID: &strangerID})
			require.NoError(t, err)
			assert.Equal(t, int64(0), totals.Count)
			assert.True(t, totals.SaleTotal.IsZero())
			assert.True(t, totals.CommissionTotal.IsZero())
		})

		t.Run("UpdateStatus", func(t *testing.T) {
			require.NoError(t, repo.UpdateStatus(context.Background(), pending.ID, models.ConversionStatusApproved))

			updated, err := repo.ByConversionID(context.Background(), pending.ConversionID)
			require.NoError(t, err)
			assert.Equal(t, models.ConversionStatusApproved, updated.Status)

			// Restore for the other subtests
			require.NoError(t, repo.UpdateStatus(context.Background(), pending.ID, models.ConversionStatusPending))
		})

		t.Run("ListWithRelationsPreloadsExportColumns", func(t *testing.T) {
			rows, err := repo.ListWithRelations(context.Background(),
				models.ConversionFilter{ProgramID: &program.ID},
				"conversions.converted_at ASC, conversions.id ASC", 0, 0)
			require.NoError(t, err)
			require.Len(t, rows, 2)

			assert.Equal(t, program.ProgramCode, rows[0].Program.ProgramCode)
			assert.Equal(t, partnership.AffiliateCode, rows[0].Partnership.AffiliateCode)
			assert.NotEmpty(t, rows[0].Click.ClickID)
		})
	})
}
