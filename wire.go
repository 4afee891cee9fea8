package timeline

import (
	"encoding/json"
	"fmt"
)

// Wire types for the GraphQL timeline schema. Polymorphic fields stay as
// json.RawMessage and are validated where they are consumed.

// Instruction is one timeline mutation. Only TimelineAddEntries carries
// entries consumed here; a pinned entry arrives via the Entry field.
type Instruction struct {
	Type    string  `json:"type"`
	Entries []Entry `json:"entries"`
	Entry   *Entry  `json:"entry"`
}

// Entry is one timeline row, either a single item or a module grouping
// several items (conversation threads).
type Entry struct {
	EntryID   string  `json:"entryId"`
	SortIndex string  `json:"sortIndex"`
	Content   Content `json:"content"`
}

// Content is the polymorphic body of an entry. Item entries populate
// ItemContent, module entries populate Items, cursor entries carry
// Value/CursorType.
type Content struct {
	EntryType   string          `json:"entryType"`
	TypeName    string          `json:"__typename"`
	ItemContent json.RawMessage `json:"itemContent"`
	Items       json.RawMessage `json:"items"`
	Value       string          `json:"value"`
	CursorType  string          `json:"cursorType"`
}

// Item parses the entry's item content.
func (c Content) Item() (*ItemContent, error) {
	if len(c.ItemContent) == 0 {
		return nil, fmt.Errorf("no item content")
	}
	var ic ItemContent
	if err := json.Unmarshal(c.ItemContent, &ic); err != nil {
		return nil, fmt.Errorf("unmarshal item content: %w", err)
	}
	return &ic, nil
}

// ModuleItem is one row inside a module entry.
type ModuleItem struct {
	EntryID string `json:"entryId"`
	Item    struct {
		ItemContent ItemContent `json:"itemContent"`
	} `json:"item"`
}

// ItemContent holds the payload of an item entry or module item, tagged by
// itemType/__typename (TimelineTweet or TimelineUser).
type ItemContent struct {
	ItemType     string `json:"itemType"`
	TypeName     string `json:"__typename"`
	TweetResults struct {
		Result *TweetResult `json:"result"`
	} `json:"tweet_results"`
	UserResults struct {
		Result *UserResult `json:"result"`
	} `json:"user_results"`
}

// TweetResult is the raw tweet payload. A TweetWithVisibilityResults
// wrapper nests the real tweet one level down in Tweet. Core stays raw
// because the author path is navigated loosely (see ScreenName).
type TweetResult struct {
	TypeName           string          `json:"__typename"`
	RestID             string          `json:"rest_id"`
	Tweet              *TweetResult    `json:"tweet"`
	Core               json.RawMessage `json:"core"`
	Legacy             *TweetLegacy    `json:"legacy"`
	NoteTweet          *NoteTweet      `json:"note_tweet"`
	QuotedStatusResult *struct {
		Result *TweetResult `json:"result"`
	} `json:"quoted_status_result"`
	Views struct {
		Count string `json:"count"`
	} `json:"views"`
}

// TweetLegacy is the legacy REST-era tweet record embedded in GraphQL
// responses.
type TweetLegacy struct {
	FullText              string `json:"full_text"`
	CreatedAt             string `json:"created_at"`
	FavoriteCount         int    `json:"favorite_count"`
	RetweetCount          int    `json:"retweet_count"`
	QuoteCount            int    `json:"quote_count"`
	ReplyCount            int    `json:"reply_count"`
	UserIDStr             string `json:"user_id_str"`
	RetweetedStatusIDStr  string `json:"retweeted_status_id_str"`
	QuotedStatusIDStr     string `json:"quoted_status_id_str"`
	RetweetedStatusResult *struct {
		Result *TweetResult `json:"result"`
	} `json:"retweeted_status_result"`
	Entities         *TweetEntities `json:"entities"`
	ExtendedEntities *TweetEntities `json:"extended_entities"`
}

// TweetEntities carries the media attachments of a legacy record.
// extended_entities is the full-resolution list; plain entities may
// truncate videos to a single thumbnail.
type TweetEntities struct {
	Media []MediaEntity `json:"media"`
}

// NoteTweet is the long-form text extension for tweets over the legacy
// length limit. Its text supersedes legacy full_text.
type NoteTweet struct {
	IsExpandable     bool `json:"is_expandable"`
	NoteTweetResults struct {
		Result struct {
			ID   string `json:"id"`
			Text string `json:"text"`
		} `json:"result"`
	} `json:"note_tweet_results"`
}

// MediaEntity is one raw media attachment.
type MediaEntity struct {
	IDStr         string     `json:"id_str"`
	MediaKey      string     `json:"media_key"`
	Type          MediaType  `json:"type"`
	MediaURLHTTPS string     `json:"media_url_https"`
	ExpandedURL   string     `json:"expanded_url"`
	VideoInfo     *VideoInfo `json:"video_info"`
}

// VideoInfo holds the encoded renditions of a video or animated gif.
type VideoInfo struct {
	AspectRatio    []int          `json:"aspect_ratio"`
	DurationMillis int            `json:"duration_millis"`
	Variants       []VideoVariant `json:"variants"`
}

// VideoVariant is one rendition. Bitrate is absent (zero) for HLS
// playlists.
type VideoVariant struct {
	Bitrate     int    `json:"bitrate"`
	ContentType string `json:"content_type"`
	URL         string `json:"url"`
}

// UserResult is the raw user payload.
type UserResult struct {
	TypeName       string     `json:"__typename"`
	ID             string     `json:"id"`
	RestID         string     `json:"rest_id"`
	IsBlueVerified bool       `json:"is_blue_verified"`
	Legacy         UserLegacy `json:"legacy"`
}

// UserLegacy is the legacy profile record embedded in a user result.
type UserLegacy struct {
	Name             string `json:"name"`
	ScreenName       string `json:"screen_name"`
	Description      string `json:"description"`
	CreatedAt        string `json:"created_at"`
	FollowersCount   int    `json:"followers_count"`
	FriendsCount     int    `json:"friends_count"`
	StatusesCount    int    `json:"statuses_count"`
	Verified         bool   `json:"verified"`
	ProfileImageURL  string `json:"profile_image_url_https"`
	ProfileBannerURL string `json:"profile_banner_url"`
}
