// Package businessflow contains the business logic for the application.
package businessflow

import (
	"time"

	"github.com/adwave/asp-platform/app/dto"
	"github.com/adwave/asp-platform/models"
)

const RequestIDKey = "X-Request-ID"

// ClientMetadata holds all client-related information for tracking and audit purposes
type ClientMetadata struct {
	IPAddress  string            `json:"ip_address"`
	UserAgent  string            `json:"user_agent"`
	RefererURL string            `json:"referer_url,omitempty"`
	RequestID  string            `json:"request_id,omitempty"`
	Additional map[string]string `json:"additional,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance with basic information
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
		Additional: make(map[string]string),
	}
}

// AddAdditional adds additional custom information to the metadata
func (cm *ClientMetadata) AddAdditional(key, value string) {
	if cm.Additional == nil {
		cm.Additional = make(map[string]string)
	}
	cm.Additional[key] = value
}

// SetRefererURL sets the referer URL
func (cm *ClientMetadata) SetRefererURL(referer string) {
	cm.RefererURL = referer
}

// SetRequestID sets the request ID
func (cm *ClientMetadata) SetRequestID(requestID string) {
	cm.RequestID = requestID
}

// Principal is the authenticated caller handed to flows as an explicit capability.
// Role dispatch happens here, never through implicit session state.
type Principal struct {
	UserID       uint
	UserType     string
	AdvertiserID *uint
	PublisherID  *uint
}

// IsAdmin reports whether the principal is a platform administrator
func (p Principal) IsAdmin() bool {
	return p.UserType == models.UserTypeAdmin
}

// IsAdvertiser reports whether the principal is an advertiser with a profile
func (p Principal) IsAdvertiser() bool {
	return p.UserType == models.UserTypeAdvertiser && p.AdvertiserID != nil
}

// IsPublisher reports whether the principal is a publisher with a profile
func (p Principal) IsPublisher() bool {
	return p.UserType == models.UserTypePublisher && p.PublisherID != nil
}

// ToUserInfoDTO converts a user model to UserInfo for authentication responses
func ToUserInfoDTO(user models.User, displayName string) dto.UserInfo {
	return dto.UserInfo{
		ID:          user.ID,
		Email:       user.Email,
		UserType:    user.UserType,
		DisplayName: displayName,
		Status:      user.Status.String(),
		CreatedAt:   user.CreatedAt.Format(time.RFC3339),
	}
}
