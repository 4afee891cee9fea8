package timeline

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/buger/jsonparser"
)

const twitterTimeLayout = "Mon Jan 02 15:04:05 +0000 2006"

const typeVisibilityWrapper = "TweetWithVisibilityResults"

// Normalizer turns raw tweet/user payloads into normalized records. The
// zero-config normalizer discards recoverable-failure events; pass a Sink
// to observe them.
type Normalizer struct {
	log Sink
}

// NewNormalizer creates a Normalizer.
func NewNormalizer(cfg Config) *Normalizer {
	cfg.defaults()
	return &Normalizer{log: cfg.Log}
}

// UnwrapVisibility peels the TweetWithVisibilityResults wrapper off a
// tweet payload. Unwrapped payloads pass through, so applying it twice is
// a no-op.
func UnwrapVisibility(r *TweetResult) *TweetResult {
	if r != nil && r.TypeName == typeVisibilityWrapper && r.Tweet != nil {
		return r.Tweet
	}
	return r
}

// RetweetedTweet returns the target of a retweet wrapper, already
// unwrapped, or false when the tweet is not a retweet.
func RetweetedTweet(r *TweetResult) (*TweetResult, bool) {
	r = UnwrapVisibility(r)
	if r == nil || r.Legacy == nil || r.Legacy.RetweetedStatusResult == nil || r.Legacy.RetweetedStatusResult.Result == nil {
		return nil, false
	}
	return UnwrapVisibility(r.Legacy.RetweetedStatusResult.Result), true
}

// QuotedTweet returns the quoted tweet, already unwrapped, or false when
// the tweet quotes nothing.
func QuotedTweet(r *TweetResult) (*TweetResult, bool) {
	r = UnwrapVisibility(r)
	if r == nil || r.QuotedStatusResult == nil || r.QuotedStatusResult.Result == nil {
		return nil, false
	}
	return UnwrapVisibility(r.QuotedStatusResult.Result), true
}

// FullText returns the authoritative tweet text: the note extension when
// present (it carries the un-truncated long form), else legacy full_text.
func FullText(r *TweetResult) string {
	t := UnwrapVisibility(r)
	if t == nil {
		return ""
	}
	if t.NoteTweet != nil {
		return t.NoteTweet.NoteTweetResults.Result.Text
	}
	if t.Legacy != nil {
		return t.Legacy.FullText
	}
	return ""
}

// MediaEntities returns the media attachments of the real tweet: the
// retweet target when one exists, since retweet wrappers may truncate
// their own media list. extended_entities wins over plain entities.
func MediaEntities(r *TweetResult) []MediaEntity {
	t := UnwrapVisibility(r)
	if rt, ok := RetweetedTweet(t); ok {
		t = rt
	}
	if t == nil || t.Legacy == nil {
		return nil
	}
	if t.Legacy.ExtendedEntities != nil {
		return t.Legacy.ExtendedEntities.Media
	}
	if t.Legacy.Entities != nil {
		return t.Legacy.Entities.Media
	}
	return nil
}

// screenName navigates core.user_results.result.legacy.screen_name. Kept
// side-effect free; ScreenName maps the failure to the sentinel.
func screenName(r *TweetResult) (string, error) {
	t := UnwrapVisibility(r)
	if t == nil || len(t.Core) == 0 {
		return "", fmt.Errorf("tweet has no core")
	}
	name, err := jsonparser.GetString(t.Core, "user_results", "result", "legacy", "screen_name")
	if err != nil {
		return "", fmt.Errorf("navigate screen_name: %w", err)
	}
	return name, nil
}

// ScreenName returns the author's screen name, or the ReadError sentinel
// when the path cannot be navigated. The failure is logged once through
// the sink and never raised to the caller.
func (n *Normalizer) ScreenName(r *TweetResult) string {
	name, err := screenName(r)
	if err != nil {
		id := ""
		if r != nil {
			id = r.RestID
		}
		n.log("screen name unreadable", err, map[string]any{"tweet_id": id})
		return ReadError
	}
	return name
}

// NewMedia resolves a raw media attachment into a normalized record.
func NewMedia(e MediaEntity) Media {
	url := OriginalURL(e)
	return Media{
		ID:   e.IDStr,
		Type: e.Type,
		URL:  url,
		Ext:  FileExtension(url),
	}
}

// Tweet builds a normalized tweet record from a raw payload, resolving
// the visibility wrapper, text precedence, media and the quoted tweet.
func (n *Normalizer) Tweet(r *TweetResult) (*Tweet, error) {
	t := UnwrapVisibility(r)
	if t == nil || t.RestID == "" {
		return nil, fmt.Errorf("empty tweet rest_id")
	}

	tw := &Tweet{
		ID:         t.RestID,
		ScreenName: n.ScreenName(t),
		Text:       FullText(t),
	}
	for _, e := range MediaEntities(t) {
		tw.Media = append(tw.Media, NewMedia(e))
	}
	if t.Legacy != nil {
		tw.CreatedAt = parseTwitterTime(t.Legacy.CreatedAt)
		tw.Likes = t.Legacy.FavoriteCount
		tw.Retweets = t.Legacy.RetweetCount
	}
	if t.Views.Count != "" {
		tw.Views, _ = strconv.Atoi(t.Views.Count)
	}
	if _, ok := RetweetedTweet(t); ok {
		tw.IsRetweet = true
	}
	if q, ok := QuotedTweet(t); ok {
		if quoted, err := n.Tweet(q); err == nil {
			tw.Quoted = quoted
		} else {
			n.log("skip quoted tweet", err, map[string]any{"tweet_id": t.RestID})
		}
	}
	return tw, nil
}

// User builds a normalized profile record from a raw payload.
func (n *Normalizer) User(r *UserResult) (*User, error) {
	if r == nil {
		return nil, fmt.Errorf("nil user result")
	}
	if r.TypeName == "UserUnavailable" {
		return nil, fmt.Errorf("user unavailable (suspended or restricted)")
	}
	if r.RestID == "" {
		return nil, fmt.Errorf("empty user rest_id (typename=%s)", r.TypeName)
	}
	return &User{
		ID:              r.RestID,
		ScreenName:      r.Legacy.ScreenName,
		Name:            r.Legacy.Name,
		Bio:             strings.TrimSpace(r.Legacy.Description),
		Followers:       r.Legacy.FollowersCount,
		Following:       r.Legacy.FriendsCount,
		TweetCount:      r.Legacy.StatusesCount,
		CreatedAt:       parseTwitterTime(r.Legacy.CreatedAt),
		IsVerified:      r.Legacy.Verified || r.IsBlueVerified,
		ProfileImageURL: ProfileImageOriginalURL(r.Legacy.ProfileImageURL),
		BannerURL:       r.Legacy.ProfileBannerURL,
	}, nil
}

func parseTwitterTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(twitterTimeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
