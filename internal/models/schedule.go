// Package models contains the domain types shared across sendgate.
package models

// PageType identifies the monetization model of a creator page.
type PageType string

// Page type constants.
const (
	PageTypeFree PageType = "free"
	PageTypePaid PageType = "paid"
)

// Category classifies a send type by business purpose.
type Category string

// Category constants.
const (
	CategoryRevenue    Category = "revenue"
	CategoryEngagement Category = "engagement"
	CategoryRetention  Category = "retention"
)

// Tier is a content-type performance classification from the ranking snapshot.
type Tier string

// Tier constants. AVOID-tier content must never appear in a valid schedule.
const (
	TierTop   Tier = "TOP"
	TierMid   Tier = "MID"
	TierLow   Tier = "LOW"
	TierAvoid Tier = "AVOID"
)

// ScheduleItem is a single planned send event. Items are produced by the
// schedule generator and are read-only inputs to validation.
type ScheduleItem struct {
	SendTypeKey   string   `json:"send_type_key"`
	ContentType   string   `json:"content_type"`
	Category      Category `json:"category"`
	ScheduledDate string   `json:"scheduled_date"` // YYYY-MM-DD
	ScheduledTime string   `json:"scheduled_time"` // HH:MM, 24h
	Price         float64  `json:"price"`
	FlyerRequired bool     `json:"flyer_required"`
	CaptionFlags  []string `json:"caption_flags,omitempty"` // soft quality flags from the generator
}

// Schedule is one creator-week of send events. Consumed exactly once by
// validation; never mutated.
type Schedule struct {
	CreatorID string         `json:"creator_id"`
	WeekStart string         `json:"week_start"` // YYYY-MM-DD, Monday
	PageType  PageType       `json:"page_type"`
	Items     []ScheduleItem `json:"items"`
}

// VaultMatrix maps creator ID to the content types that creator has made
// available for scheduling. External read-only snapshot.
type VaultMatrix map[string][]string

// ContentTypeRanking maps creator ID to per-content-type performance tiers.
// External read-only snapshot.
type ContentTypeRanking map[string]map[string]Tier

// Violation is a structured rule violation entry. Hard-gate violations are
// terminal for the schedule; soft violations only reduce the quality score.
type Violation struct {
	Code        string `json:"code"`
	Message     string `json:"message"`
	SendTypeKey string `json:"send_type_key,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	ItemIndex   int    `json:"item_index"` // -1 when not tied to a single item
}

// Violation codes surfaced by the validator.
const (
	CodeVaultViolation        = "VAULT_VIOLATION"
	CodeAvoidTierViolation    = "AVOID_TIER_VIOLATION"
	CodePageTypeViolation     = "PAGE_TYPE_VIOLATION"
	CodeInsufficientDiversity = "INSUFFICIENT_DIVERSITY"
	CodeFlyerRequirement      = "FLYER_REQUIREMENT_VIOLATION"
	CodeLowQualityScore       = "LOW_QUALITY_SCORE"
	CodePriceOutlier          = "PRICE_OUTLIER"
	CodeTimeConflict          = "TIME_CONFLICT"
)
