package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	postKeyPrefix     = "post:%d"
	feedFirstPageKey  = "feed:page1"
	categoryKeyPrefix = "category:%s"
	profileKeyPrefix  = "profile:%s"
)

// TTLs are short: visibility depends on the clock (future-dated posts
// become visible as time passes), so cached listings must age out quickly.
const (
	PostTTL     = 5 * time.Minute
	FeedTTL     = 1 * time.Minute
	CategoryTTL = 5 * time.Minute
	ProfileTTL  = 5 * time.Minute
)

func PostKey(postID uint) string {
	return fmt.Sprintf(postKeyPrefix, postID)
}

func FeedKey() string {
	return feedFirstPageKey
}

func CategoryKey(slug string) string {
	return fmt.Sprintf(categoryKeyPrefix, slug)
}

func ProfileKey(username string) string {
	return fmt.Sprintf(profileKeyPrefix, username)
}

func Invalidate(ctx context.Context, keys ...string) {
	if client != nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// InvalidatePost drops the cached detail for a post along with the public
// feed page, which embeds post summaries and comment counts.
func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID), feedFirstPageKey)
}

func InvalidateProfile(ctx context.Context, username string) {
	Invalidate(ctx, ProfileKey(username))
}
