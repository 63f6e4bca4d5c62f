package tests

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/adwave/asp-platform/app/dto"
	businessflow "github.com/adwave/asp-platform/business_flow"
	"github.com/adwave/asp-platform/models"
	"github.com/adwave/asp-platform/repository"
	testingutil "github.com/adwave/asp-platform/testing"
	"github.com/adwave/asp-platform/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClickTrackingFlow(t *testing.T) {
	withDB(t, func(testDB *testingutil.TestDB) {
		fixtures := testingutil.NewTestFixtures(testDB)

		partnershipRepo := repository.NewPartnershipRepository(testDB.DB)
		programRepo := repository.NewProgramRepository(testDB.DB)
		clickRepo := repository.NewClickRepository(testDB.DB)

		// No redis in tests; the flow falls back to the database lookup.
		clickFlow := businessflow.NewClickTrackingFlow(
			partnershipRepo,
			programRepo,
			clickRepo,
			testDB.DB,
			nil,
			nil,
			testTrackingConfig(),
		)

		advertiser, err := fixtures.CreateTestAdvertiser()
		require.NoError(t, err)
		program, err := fixtures.CreateTestProgram(advertiser.ID)
		require.NoError(t, err)
		publisher, err := fixtures.CreateTestPublisher()
		require.NoError(t, err)
		partnership, err := fixtures.CreateTestPartnership(program.ID, publisher.ID, models.PartnershipStatusApproved)
		require.NoError(t, err)

		desktopUA := "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

		t.Run("SuccessfulClick", func(t *testing.T) {
			request := &businessflow.TrackClickRequest{
				AffiliateCode: partnership.AffiliateCode,
				SubID1:        utils.ToPtr("banner-top"),
			}
			metadata := businessflow.NewClientMetadata("203.0.113.5", desktopUA)

			result, err := clickFlow.TrackClick(context.Background(), request, metadata)
			require.NoError(t, err)
			require.NotNil(t, result)

			assert.True(t, strings.HasPrefix(result.ClickID, utils.ClickIDPrefix+"_"))
			assert.Equal(t, program.LandingPageURL, result.RedirectURL)

			// Attribution cookie carries the click id for the program's window
			assert.Equal(t, utils.AttributionCookieName, result.Cookie.Name)
			assert.Equal(t, result.ClickID, result.Cookie.Value)
			assert.Equal(t, program.CookieDurationDays*86400, result.Cookie.MaxAge)
			assert.Equal(t, "/", result.Cookie.Path)
			assert.True(t, result.Cookie.HTTPOnly)
			assert.Equal(t, "Lax", result.Cookie.SameSite)

			// Click row was persisted with the request details
			click, err := clickRepo.ByClickID(context.Background(), result.ClickID)
			require.NoError(t, err)
			require.NotNil(t, click)
			assert.Equal(t, partnership.ID, click.PartnershipID)
			assert.Equal(t, "203.0.113.5", click.IPAddress)
			assert.Equal(t, utils.DeviceDesktop, click.DeviceType)
			require.NotNil(t, click.SubID1)
			assert.Equal(t, "banner-top", *click.SubID1)

			// Both rollup counters were incremented in the same transaction
			updatedPartnership, err := partnershipRepo.ByID(context.Background(), partnership.ID)
			require.NoError(t, err)
			assert.Equal(t, int64(1), updatedPartnership.TotalClicks)

			updatedProgram, err := programRepo.ByID(context.Background(), program.ID)
			require.NoError(t, err)
			assert.Equal(t, int64(1), updatedProgram.TotalClicks)
		})

		t.Run("UnknownAffiliateCode", func(t *testing.T) {
			request := &businessflow.TrackClickRequest{AffiliateCode: "AFFNOSUCH1"}
			metadata := businessflow.NewClientMetadata("203.0.113.5", desktopUA)

			result, err := clickFlow.TrackClick(context.Background(), request, metadata)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, businessflow.IsAffiliateCodeNotFound(err))
		})

		t.Run("PendingPartnershipIsNotTrackable", func(t *testing.T) {
			pending, err := fixtures.CreateTestPartnership(program.ID, publisher.ID, models.PartnershipStatusPending)
			require.NoError(t, err)

			request := &businessflow.TrackClickRequest{AffiliateCode: pending.AffiliateCode}
			metadata := businessflow.NewClientMetadata("203.0.113.5", desktopUA)

			result, err := clickFlow.TrackClick(context.Background(), request, metadata)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, businessflow.IsPartnershipNotApproved(err))
		})

		t.Run("PausedProgramIsNotTrackable", func(t *testing.T) {
			pausedProgram, err := fixtures.CreateTestProgram(advertiser.ID)
			require.NoError(t, err)
			require.NoError(t, programRepo.UpdateStatus(context.Background(), pausedProgram.ID, models.ProgramStatusPaused))

			pausedPartnership, err := fixtures.CreateTestPartnership(pausedProgram.ID, publisher.ID, models.PartnershipStatusApproved)
			require.NoError(t, err)

			request := &businessflow.TrackClickRequest{AffiliateCode: pausedPartnership.AffiliateCode}
			metadata := businessflow.NewClientMetadata("203.0.113.5", desktopUA)

			result, err := clickFlow.TrackClick(context.Background(), request, metadata)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, businessflow.IsProgramNotActive(err))
		})

		t.Run("ConcurrentClicksAllCounted", func(t *testing.T) {
			busyProgram, err := fixtures.CreateTestProgram(advertiser.ID)
			require.NoError(t, err)
			busyPublisher, err := fixtures.CreateTestPublisher()
			require.NoError(t, err)
			busyPartnership, err := fixtures.CreateTestPartnership(busyProgram.ID, busyPublisher.ID, models.PartnershipStatusApproved)
			require.NoError(t, err)

			const workers = 16
			errs := make(chan error, workers)
			var wg sync.WaitGroup
			for i := 0; i < workers; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					request := &businessflow.TrackClickRequest{AffiliateCode: busyPartnership.AffiliateCode}
					metadata := businessflow.NewClientMetadata("203.0.113.5", desktopUA)
					_, err := clickFlow.TrackClick(context.Background(), request, metadata)
					errs <- err
				}()
			}
			wg.Wait()
			close(errs)
			for err := range errs {
				require.NoError(t, err)
			}

			// Relative counter updates lose nothing under concurrency
			updatedPartnership, err := partnershipRepo.ByID(context.Background(), busyPartnership.ID)
			require.NoError(t, err)
			assert.Equal(t, int64(workers), updatedPartnership.TotalClicks)

			updatedProgram, err := programRepo.ByID(context.Background(), busyProgram.ID)
			require.NoError(t, err)
			assert.Equal(t, int64(workers), updatedProgram.TotalClicks)

			count, err := clickRepo.Count(context.Background(), models.ClickFilter{PartnershipID: &busyPartnership.ID})
			require.NoError(t, err)
			assert.Equal(t, int64(workers), count)
		})
	})
}

func TestConversionFlow(t *testing.T) {
	withDB(t, func(testDB *testingutil.TestDB) {
		fixtures := testingutil.NewTestFixtures(testDB)

		partnershipRepo := repository.NewPartnershipRepository(testDB.DB)
		programRepo := repository.NewProgramRepository(testDB.DB)
		clickRepo := repository.NewClickRepository(testDB.DB)
		conversionRepo := repository.NewConversionRepository(testDB.DB)

		conversionFlow := businessflow.NewConversionFlow(
			programRepo,
			clickRepo,
			conversionRepo,
			partnershipRepo,
			testDB.DB,
			testTrackingConfig(),
		)

		advertiser, err := fixtures.CreateTestAdvertiser()
		require.NoError(t, err)
		program, err := fixtures.CreateTestProgram(advertiser.ID)
		require.NoError(t, err)
		publisher, err := fixtures.CreateTestPublisher()
		require.NoError(t, err)
		partnership, err := fixtures.CreateTestPartnership(program.ID, publisher.ID, models.PartnershipStatusApproved)
		require.NoError(t, err)

		metadata := businessflow.NewClientMetadata("198.51.100.20", "shop-backend/1.0")

		t.Run("SuccessfulConversion", func(t *testing.T) {
			click, err := fixtures.CreateTestClick(partnership.ID)
			require.NoError(t, err)

			sale := decimal.NewFromInt(12800)
			request := &dto.ReportConversionRequest{
				ProgramCode: program.ProgramCode,
				ClickID:     click.ClickID,
				OrderID:     utils.ToPtr("ORD-20260829-001"),
				SaleAmount:  &sale,
			}

			result, err := conversionFlow.ReportConversion(context.Background(), request, metadata)
			require.NoError(t, err)
			require.NotNil(t, result)

			assert.True(t, strings.HasPrefix(result.ConversionID, "cv_"))
			assert.Equal(t, models.ConversionStatusPending.String(), result.Status)
			// CPA program pays the flat 500 regardless of the sale amount
			assert.True(t, result.CommissionAmount.Equal(decimal.NewFromInt(500)),
				"expected commission 500, got %s", result.CommissionAmount.String())

			saved, err := conversionRepo.ByConversionID(context.Background(), result.ConversionID)
			require.NoError(t, err)
			require.NotNil(t, saved)
			assert.Equal(t, click.ID, saved.ClickID)
			assert.Equal(t, partnership.ID, saved.PartnershipID)
			assert.Equal(t, program.ID, saved.ProgramID)
			assert.Equal(t, utils.ConversionTypeSale, saved.ConversionType)
			assert.True(t, saved.SaleAmount.Equal(sale))

			// Earnings and counters were booked in the same transaction
			updatedPartnership, err := partnershipRepo.ByID(context.Background(), partnership.ID)
			require.NoError(t, err)
			assert.Equal(t, int64(1), updatedPartnership.TotalConversions)
			assert.True(t, updatedPartnership.TotalEarnings.Equal(decimal.NewFromInt(500)))

			updatedProgram, err := programRepo.ByID(context.Background(), program.ID)
			require.NoError(t, err)
			assert.Equal(t, int64(1), updatedProgram.TotalConversions)
		})

		t.Run("DuplicateConversionRejected", func(t *testing.T) {
			click, err := fixtures.CreateTestClick(partnership.ID)
			require.NoError(t, err)

			request := &dto.ReportConversionRequest{
				ProgramCode: program.ProgramCode,
				ClickID:     click.ClickID,
			}

			_, err = conversionFlow.ReportConversion(context.Background(), request, metadata)
			require.NoError(t, err)

			result, err := conversionFlow.ReportConversion(context.Background(), request, metadata)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, businessflow.IsDuplicateConversion(err))
		})

		t.Run("ConcurrentPostbacksBookExactlyOne", func(t *testing.T) {
			click, err := fixtures.CreateTestClick(partnership.ID)
			require.NoError(t, err)

			// Both postbacks can pass the existence pre-check; the unique index
			// on the dedup key must reject one of them.
			const workers = 4
			errs := make(chan error, workers)
			var wg sync.WaitGroup
			for i := 0; i < workers; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					request := &dto.ReportConversionRequest{
						ProgramCode: program.ProgramCode,
						ClickID:     click.ClickID,
					}
					_, err := conversionFlow.ReportConversion(context.Background(), request, metadata)
					errs <- err
				}()
			}
			wg.Wait()
			close(errs)

			var booked, rejected int
			for err := range errs {
				if err == nil {
					booked++
					continue
				}
				require.True(t, businessflow.IsDuplicateConversion(err), "unexpected error: %v", err)
				rejected++
			}
			assert.Equal(t, 1, booked)
			assert.Equal(t, workers-1, rejected)

			count, err := conversionRepo.Count(context.Background(), models.ConversionFilter{ClickID: &click.ID})
			require.NoError(t, err)
			assert.Equal(t, int64(1), count)
		})

		t.Run("RepeatConversionAllowedWhenConfigured", func(t *testing.T) {
			cfg := testTrackingConfig()
			cfg.AllowMultipleConversionsPerClick = true
			repeatFlow := businessflow.NewConversionFlow(
				programRepo, clickRepo, conversionRepo, partnershipRepo, testDB.DB, cfg)

			click, err := fixtures.CreateTestClick(partnership.ID)
			require.NoError(t, err)

			request := &dto.ReportConversionRequest{
				ProgramCode: program.ProgramCode,
				ClickID:     click.ClickID,
			}

			first, err := repeatFlow.ReportConversion(context.Background(), request, metadata)
			require.NoError(t, err)
			second, err := repeatFlow.ReportConversion(context.Background(), request, metadata)
			require.NoError(t, err)
			assert.NotEqual(t, first.ConversionID, second.ConversionID)
		})

		t.Run("ClickOnAnotherProgramDoesNotAttribute", func(t *testing.T) {
			otherProgram, err := fixtures.CreateTestProgram(advertiser.ID)
			require.NoError(t, err)

			click, err := fixtures.CreateTestClick(partnership.ID)
			require.NoError(t, err)

			request := &dto.ReportConversionRequest{
				ProgramCode: otherProgram.ProgramCode,
				ClickID:     click.ClickID,
			}

			result, err := conversionFlow.ReportConversion(context.Background(), request, metadata)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, businessflow.IsNoAttributableClick(err))
		})

		t.Run("MissingClickID", func(t *testing.T) {
			request := &dto.ReportConversionRequest{
				ProgramCode: program.ProgramCode,
				ClickID:     "",
			}

			result, err := conversionFlow.ReportConversion(context.Background(), request, metadata)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, businessflow.IsNoAttributableClick(err))
		})

		t.Run("UnknownProgramCode", func(t *testing.T) {
			request := &dto.ReportConversionRequest{
				ProgramCode: "PRGNOSUCH",
				ClickID:     utils.GenerateClickID(),
			}

			result, err := conversionFlow.ReportConversion(context.Background(), request, metadata)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, businessflow.IsProgramNotFound(err))
		})

		t.Run("NegativeSaleAmountRejected", func(t *testing.T) {
			click, err := fixtures.CreateTestClick(partnership.ID)
			require.NoError(t, err)

			sale := decimal.NewFromInt(-100)
			request := &dto.ReportConversionRequest{
				ProgramCode: program.ProgramCode,
				ClickID:     click.ClickID,
				SaleAmount:  &sale,
			}

			result, err := conversionFlow.ReportConversion(context.Background(), request, metadata)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, businessflow.IsSaleAmountInvalid(err))
		})
	})
}
