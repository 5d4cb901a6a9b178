// Package taxonomy holds the static send-type taxonomy: the category of
// each send type, which types require a promo flyer, and which types are
// compatible with free versus paid pages.
package taxonomy

import "github.com/example/sendgate/internal/models"

// SendType describes one entry in the send-type taxonomy.
type SendType struct {
	Key           string
	Category      models.Category
	FlyerRequired bool
	FreeOnly      bool // only compatible with free pages
	PaidOnly      bool // only compatible with paid pages
}

// sendTypes is the authoritative taxonomy table. Retention types are
// paid-only as a category rule (applied in the cache), so individual
// retention entries don't set PaidOnly here.
var sendTypes = []SendType{
	// Revenue
	{Key: "ppv_video", Category: models.CategoryRevenue, FlyerRequired: true},
	{Key: "ppv_photo_set", Category: models.CategoryRevenue, FlyerRequired: true},
	{Key: "ppv_wall", Category: models.CategoryRevenue, FlyerRequired: true, FreeOnly: true},
	{Key: "bundle_offer", Category: models.CategoryRevenue, FlyerRequired: true},
	{Key: "flash_sale", Category: models.CategoryRevenue, FlyerRequired: true},
	{Key: "tip_goal", Category: models.CategoryRevenue, PaidOnly: true},
	{Key: "custom_content_promo", Category: models.CategoryRevenue},
	{Key: "vip_program", Category: models.CategoryRevenue},

	// Engagement
	{Key: "poll", Category: models.CategoryEngagement},
	{Key: "quiz_game", Category: models.CategoryEngagement},
	{Key: "behind_the_scenes", Category: models.CategoryEngagement},
	{Key: "daily_checkin", Category: models.CategoryEngagement},
	{Key: "caption_tease", Category: models.CategoryEngagement},
	{Key: "story_sequence", Category: models.CategoryEngagement},
	{Key: "live_stream_announce", Category: models.CategoryEngagement, FlyerRequired: true},
	{Key: "dm_blast", Category: models.CategoryEngagement},

	// Retention (paid pages only, by category rule)
	{Key: "renew_reminder", Category: models.CategoryRetention},
	{Key: "winback_offer", Category: models.CategoryRetention},
	{Key: "loyalty_reward", Category: models.CategoryRetention},
	{Key: "expiring_discount", Category: models.CategoryRetention},
}

// SendTypes returns a copy of the taxonomy table.
func SendTypes() []SendType {
	out := make([]SendType, len(sendTypes))
	copy(out, sendTypes)
	return out
}
