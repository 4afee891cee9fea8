package timeline

import "time"

// ReadError is returned in place of a screen name when the author path
// cannot be navigated. The failure is logged through the configured sink;
// it never aborts extraction of the rest of the timeline.
const ReadError = "READ_ERROR"

// MediaType discriminates the three media kinds Twitter attaches to tweets.
type MediaType string

const (
	MediaPhoto       MediaType = "photo"
	MediaVideo       MediaType = "video"
	MediaAnimatedGIF MediaType = "animated_gif"
)

// User represents a normalized Twitter/X account profile.
type User struct {
	ID              string
	ScreenName      string
	Name            string
	Bio             string
	Followers       int
	Following       int
	TweetCount      int
	CreatedAt       time.Time
	IsVerified      bool
	ProfileImageURL string // original resolution, _normal suffix stripped
	BannerURL       string
}

// Tweet represents a normalized tweet with its media resolved to
// best-quality source URLs.
type Tweet struct {
	ID         string
	ScreenName string
	Text       string
	CreatedAt  time.Time
	Likes      int
	Retweets   int
	Views      int
	IsRetweet  bool
	Media      []Media
	Quoted     *Tweet
}

// Media is one attachment of a tweet with its source URL already resolved:
// highest-bitrate variant for video/gif, orig-size URL for photos.
type Media struct {
	ID   string
	Type MediaType
	URL  string
	Ext  string
}
