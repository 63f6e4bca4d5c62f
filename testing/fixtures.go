package testing

import (
	"fmt"
	"math/rand"

	"github.com/adwave/asp-platform/models"
	"github.com/adwave/asp-platform/utils"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

// TestPassword is the plaintext behind every fixture user's password hash
const TestPassword = "TestPass123!"

// CreateTestUser creates a user row of the given type with a bcrypt password
func (tf *TestFixtures) CreateTestUser(userType string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        fmt.Sprintf("%s.%09d@example.com", userType, rand.Intn(900000000)+100000000),
		PasswordHash: string(hashedPassword),
		UserType:     userType,
		Status:       models.UserStatusActive,
		CreatedAt:    utils.UTCNow(),
		UpdatedAt:    utils.UTCNow(),
	}
	if err := tf.DB.DB.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create test user: %w", err)
	}
	return user, nil
}

// CreateTestAdvertiser creates an advertiser profile with its backing user
func (tf *TestFixtures) CreateTestAdvertiser() (*models.Advertiser, error) {
	user, err := tf.CreateTestUser(models.UserTypeAdvertiser)
	if err != nil {
		return nil, err
	}

	advertiser := &models.Advertiser{
		UserID:      user.ID,
		CompanyName: fmt.Sprintf("Test Shop %d", user.ID),
		Status:      "approved",
		CreatedAt:   utils.UTCNow(),
		UpdatedAt:   utils.UTCNow(),
	}
	if err := tf.DB.DB.Create(advertiser).Error; err != nil {
		return nil, fmt.Errorf("failed to create test advertiser: %w", err)
	}
	advertiser.User = *user
	return advertiser, nil
}

// CreateTestPublisher creates a publisher profile with its backing user
func (tf *TestFixtures) CreateTestPublisher() (*models.Publisher, error) {
	user, err := tf.CreateTestUser(models.UserTypePublisher)
	if err != nil {
		return nil, err
	}

	firstName := "Taro"
	lastName := "Yamada"
	publisher := &models.Publisher{
		UserID:        user.ID,
		PublisherType: "individual",
		FirstName:     &firstName,
		LastName:      &lastName,
		Rank:          "regular",
		Status:        "approved",
		CreatedAt:     utils.UTCNow(),
		UpdatedAt:     utils.UTCNow(),
	}
	if err := tf.DB.DB.Create(publisher).Error; err != nil {
		return nil, fmt.Errorf("failed to create test publisher: %w", err)
	}
	publisher.User = *user
	return publisher, nil
}

// CreateTestSite creates an approved site for the publisher
func (tf *TestFixtures) CreateTestSite(publisherID uint) (*models.PublisherSite, error) {
	site := &models.PublisherSite{
		PublisherID: publisherID,
		SiteName:    fmt.Sprintf("Review Blog %d", publisherID),
		SiteURL:     "https://blog.example.com",
		SiteType:    "blog",
		Status:      "approved",
		CreatedAt:   utils.UTCNow(),
		UpdatedAt:   utils.UTCNow(),
	}
	if err := tf.DB.DB.Create(site).Error; err != nil {
		return nil, fmt.Errorf("failed to create test site: %w", err)
	}
	return site, nil
}

// CreateTestProgram creates an active cpa program for the advertiser
func (tf *TestFixtures) CreateTestProgram(advertiserID uint) (*models.Program, error) {
	amount := decimal.NewFromInt(500)
	program := &models.Program{
		AdvertiserID:       advertiserID,
		ProgramName:        fmt.Sprintf("Test Program %d", advertiserID),
		ProgramCode:        utils.GenerateProgramCode(),
		LandingPageURL:     "https://shop.example.com/landing",
		CommissionType:     models.CommissionTypeCPA,
		CommissionAmount:   &amount,
		CookieDurationDays: 30,
		Status:             models.ProgramStatusActive,
		Visibility:         "public",
		CreatedAt:          utils.UTCNow(),
		UpdatedAt:          utils.UTCNow(),
	}
	if err := tf.DB.DB.Create(program).Error; err != nil {
		return nil, fmt.Errorf("failed to create test program: %w", err)
	}
	return program, nil
}

// CreateTestPartnership creates a partnership in the given status
func (tf *TestFixtures) CreateTestPartnership(programID, publisherID uint, status models.PartnershipStatus) (*models.Partnership, error) {
	code := utils.GenerateAffiliateCode()
	partnership := &models.Partnership{
		ProgramID:     programID,
		PublisherID:   publisherID,
		AffiliateCode: code,
		TrackingURL:   "https://track.example.com/track/click/" + code,
		Status:        status,
		CreatedAt:     utils.UTCNow(),
		UpdatedAt:     utils.UTCNow(),
	}
	if status != models.PartnershipStatusPending {
		now := utils.UTCNow()
		partnership.ReviewedAt = &now
	}
	if err := tf.DB.DB.Create(partnership).Error; err != nil {
		return nil, fmt.Errorf("failed to create test partnership: %w", err)
	}
	return partnership, nil
}

// CreateTestClick records a click for the partnership
func (tf *TestFixtures) CreateTestClick(partnershipID uint) (*models.Click, error) {
	click := &models.Click{
		ClickID:       utils.GenerateClickID(),
		PartnershipID: partnershipID,
		IPAddress:     "203.0.113.10",
		UserAgent:     "Mozilla/5.0 (test)",
		LandingURL:    "https://shop.example.com/landing",
		DeviceType:    utils.DeviceDesktop,
		ClickedAt:     utils.UTCNow(),
	}
	if err := tf.DB.DB.Create(click).Error; err != nil {
		return nil, fmt.Errorf("failed to create test click: %w", err)
	}
	return click, nil
}
