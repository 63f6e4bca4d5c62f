package businessflow

import (
	"context"
	"encoding/json"
	"log"

	"github.com/adwave/asp-platform/config"
	"github.com/adwave/asp-platform/models"
	"github.com/adwave/asp-platform/repository"
	"github.com/adwave/asp-platform/utils"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// TrackClickRequest carries the tracking link parameters of one visit
type TrackClickRequest struct {
	AffiliateCode string
	CreativeID    *string
	SubID1        *string
	SubID2        *string
	SubID3        *string
}

// CookieSpec describes the attribution cookie the handler must set
type CookieSpec struct {
	Name     string
	Value    string
	MaxAge   int // seconds
	Path     string
	HTTPOnly bool
	Secure   bool
	SameSite string
}

// TrackClickResult is the outcome of a successfully recorded click
type TrackClickResult struct {
	ClickID     string
	RedirectURL string
	Cookie      CookieSpec
}

// ClickTrackingFlow records a visit through a tracking link and resolves the redirect target.
// Public flow, no authentication required. Errors are for the handler's fallback
// redirect only; the visitor never sees them.
type ClickTrackingFlow interface {
	TrackClick(ctx context.Context, request *TrackClickRequest, metadata *ClientMetadata) (*TrackClickResult, error)
}

// ClickTrackingFlowImpl implements the click tracking business flow
type ClickTrackingFlowImpl struct {
	partnershipRepo repository.PartnershipRepository
	programRepo     repository.ProgramRepository
	clickRepo       repository.ClickRepository
	db              *gorm.DB
	rc              *redis.Client
	cacheConfig     *config.CacheConfig
	trackingConfig  config.TrackingConfig
}

// NewClickTrackingFlow creates a new click tracking flow instance
func NewClickTrackingFlow(
	partnershipRepo repository.PartnershipRepository,
	programRepo repository.ProgramRepository,
	clickRepo repository.ClickRepository,
	db *gorm.DB,
	rc *redis.Client,
	cacheConfig *config.CacheConfig,
	trackingConfig config.TrackingConfig,
) ClickTrackingFlow {
	return &ClickTrackingFlowImpl{
		partnershipRepo: partnershipRepo,
		programRepo:     programRepo,
		clickRepo:       clickRepo,
		db:              db,
		rc:              rc,
		cacheConfig:     cacheConfig,
		trackingConfig:  trackingConfig,
	}
}

func redisKey(cfg config.CacheConfig, key string) string {
	return cfg.RedisPrefix + key
}

// cachedPartnership is the redis snapshot of an approved partnership on an active program.
// Only approved+active rows are cached, so a hit needs no status recheck.
type cachedPartnership struct {
	PartnershipID uint   `json:"partnership_id"`
	ProgramID     uint   `json:"program_id"`
	LandingURL    string `json:"landing_url"`
	CookieDays    int    `json:"cookie_days"`
}

func (f *ClickTrackingFlowImpl) TrackClick(ctx context.Context, request *TrackClickRequest, metadata *ClientMetadata) (*TrackClickResult, error) {
	resolved, err := f.resolvePartnership(ctx, request.AffiliateCode)
	if err != nil {
		return nil, err
	}

	clickID := utils.GenerateClickID()
	now := utils.UTCNow()

	click := &models.Click{
		ClickID:       clickID,
		PartnershipID: resolved.PartnershipID,
		CreativeID:    request.CreativeID,
		SubID1:        request.SubID1,
		SubID2:        request.SubID2,
		SubID3:        request.SubID3,
		IPAddress:     metadata.IPAddress,
		UserAgent:     metadata.UserAgent,
		RefererURL:    metadata.RefererURL,
		LandingURL:    resolved.LandingURL,
		DeviceType:    utils.DetectDeviceType(metadata.UserAgent),
		ClickedAt:     now,
	}

	// The click row and both rollup counters commit or roll back together.
	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		if err := f.clickRepo.Save(txCtx, click); err != nil {
			return err
		}
		if err := f.partnershipRepo.IncrementClicks(txCtx, resolved.PartnershipID, 1); err != nil {
			return err
		}
		return f.programRepo.IncrementClicks(txCtx, resolved.ProgramID, 1)
	})
	if err != nil {
		return nil, NewBusinessError("CLICK_TRACK_FAILED", "Failed to record click", err)
	}

	cookieDays := resolved.CookieDays
	if cookieDays <= 0 {
		cookieDays = f.trackingConfig.DefaultCookieDays
	}

	return &TrackClickResult{
		ClickID:     clickID,
		RedirectURL: resolved.LandingURL,
		Cookie: CookieSpec{
			Name:     utils.AttributionCookieName,
			Value:    clickID,
			MaxAge:   cookieDays * 86400,
			Path:     "/",
			HTTPOnly: true,
			Secure:   f.trackingConfig.SecureCookies,
			SameSite: "Lax",
		},
	}, nil
}

// resolvePartnership returns the approved partnership behind an affiliate code,
// trying the redis cache before the database.
func (f *ClickTrackingFlowImpl) resolvePartnership(ctx context.Context, code string) (*cachedPartnership, error) {
	cacheEnabled := f.rc != nil && f.cacheConfig != nil && f.cacheConfig.Enabled
	var cacheKey string
	if cacheEnabled {
		cacheKey = redisKey(*f.cacheConfig, "partnership:code:"+code)
		if bs, err := f.rc.Get(ctx, cacheKey).Bytes(); err == nil && len(bs) > 0 {
			var cached cachedPartnership
			if err := json.Unmarshal(bs, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	partnership, err := f.partnershipRepo.ByAffiliateCode(ctx, code)
	if err != nil {
		return nil, NewBusinessError("PARTNERSHIP_LOOKUP_FAILED", "Failed to lookup affiliate code", err)
	}
	if partnership == nil {
		return nil, ErrAffiliateCodeNotFound
	}
	if partnership.Status != models.PartnershipStatusApproved {
		return nil, ErrPartnershipNotApproved
	}
	if partnership.Program.Status != models.ProgramStatusActive {
		return nil, ErrProgramNotActive
	}

	resolved := &cachedPartnership{
		PartnershipID: partnership.ID,
		ProgramID:     partnership.ProgramID,
		LandingURL:    partnership.Program.LandingPageURL,
		CookieDays:    partnership.Program.CookieDurationDays,
	}

	if cacheEnabled {
		ttl := f.trackingConfig.PartnershipCacheTTL
		if ttl <= 0 {
			ttl = f.cacheConfig.DefaultTTL
		}
		if bs, err := json.Marshal(resolved); err == nil {
			if err := f.rc.Set(ctx, cacheKey, bs, ttl).Err(); err != nil {
				log.Printf("click tracking: failed to cache partnership %d: %v", resolved.PartnershipID, err)
			}
		}
	}

	return resolved, nil
}
