package timeline

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTweetResult(t *testing.T, body string) *TweetResult {
	t.Helper()
	var r TweetResult
	require.NoError(t, json.Unmarshal([]byte(body), &r))
	return &r
}

const wrappedTweetJSON = `{
	"__typename": "TweetWithVisibilityResults",
	"tweet": {
		"__typename": "Tweet",
		"rest_id": "100",
		"legacy": {"full_text": "gated tweet"}
	}
}`

func TestUnwrapVisibility(t *testing.T) {
	r := mustTweetResult(t, wrappedTweetJSON)

	inner := UnwrapVisibility(r)
	require.Equal(t, "100", inner.RestID)

	// idempotent: a second application is a no-op
	assert.Same(t, inner, UnwrapVisibility(inner))

	plain := mustTweetResult(t, `{"__typename":"Tweet","rest_id":"1"}`)
	assert.Same(t, plain, UnwrapVisibility(plain))
	assert.Nil(t, UnwrapVisibility(nil))
}

func TestFullText(t *testing.T) {
	withNote := mustTweetResult(t, `{
		"rest_id": "1",
		"legacy": {"full_text": "short"},
		"note_tweet": {"note_tweet_results": {"result": {"text": "much longer text that exceeds the legacy limit"}}}
	}`)
	assert.Equal(t, "much longer text that exceeds the legacy limit", FullText(withNote))

	legacyOnly := mustTweetResult(t, `{"rest_id":"1","legacy":{"full_text":"short"}}`)
	assert.Equal(t, "short", FullText(legacyOnly))
}

func TestMediaEntitiesResolvesRetweetTarget(t *testing.T) {
	r := mustTweetResult(t, `{
		"rest_id": "1",
		"legacy": {
			"full_text": "RT @someone: pics",
			"entities": {"media": []},
			"retweeted_status_result": {
				"result": {
					"__typename": "Tweet",
					"rest_id": "2",
					"legacy": {
						"full_text": "pics",
						"extended_entities": {"media": [
							{"id_str": "m1", "type": "photo", "media_url_https": "https://pbs.twimg.com/media/AAA.jpg"},
							{"id_str": "m2", "type": "photo", "media_url_https": "https://pbs.twimg.com/media/BBB.jpg"}
						]}
					}
				}
			}
		}
	}`)

	media := MediaEntities(r)
	require.Len(t, media, 2)
	assert.Equal(t, "m1", media[0].IDStr)
	assert.Equal(t, "m2", media[1].IDStr)
}

func TestMediaEntitiesPrefersExtended(t *testing.T) {
	r := mustTweetResult(t, `{
		"rest_id": "1",
		"legacy": {
			"entities": {"media": [{"id_str": "thumb", "type": "photo", "media_url_https": "https://pbs.twimg.com/media/T.jpg"}]},
			"extended_entities": {"media": [{"id_str": "full", "type": "video", "media_url_https": "https://pbs.twimg.com/media/F.jpg"}]}
		}
	}`)

	media := MediaEntities(r)
	require.Len(t, media, 1)
	assert.Equal(t, "full", media[0].IDStr)

	bare := mustTweetResult(t, `{"rest_id":"1","legacy":{"full_text":"no media"}}`)
	assert.Empty(t, MediaEntities(bare))
}

func TestScreenName(t *testing.T) {
	r := mustTweetResult(t, `{
		"rest_id": "1",
		"core": {"user_results": {"result": {"legacy": {"screen_name": "jack"}}}}
	}`)

	var logged int
	n := NewNormalizer(Config{Log: func(msg string, err error, fields map[string]any) { logged++ }})

	assert.Equal(t, "jack", n.ScreenName(r))
	assert.Zero(t, logged)
}

func TestScreenNameReadError(t *testing.T) {
	r := mustTweetResult(t, `{"rest_id": "1", "legacy": {"full_text": "no core"}}`)

	var logged int
	n := NewNormalizer(Config{Log: func(msg string, err error, fields map[string]any) {
		logged++
		assert.Error(t, err)
		assert.Equal(t, "1", fields["tweet_id"])
	}})

	assert.Equal(t, ReadError, n.ScreenName(r))
	assert.Equal(t, 1, logged, "exactly one logged event")
}

func TestNormalizeTweet(t *testing.T) {
	r := mustTweetResult(t, `{
		"__typename": "Tweet",
		"rest_id": "123",
		"core": {"user_results": {"result": {"legacy": {"screen_name": "jack"}}}},
		"views": {"count": "1000"},
		"legacy": {
			"full_text": "hello with a pic",
			"created_at": "Mon Jan 02 15:04:05 +0000 2024",
			"favorite_count": 10,
			"retweet_count": 5,
			"extended_entities": {"media": [
				{"id_str": "m1", "type": "photo", "media_url_https": "https://pbs.twimg.com/media/ABC123.jpg"}
			]}
		},
		"quoted_status_result": {
			"result": {
				"__typename": "TweetWithVisibilityResults",
				"tweet": {
					"__typename": "Tweet",
					"rest_id": "456",
					"core": {"user_results": {"result": {"legacy": {"screen_name": "other"}}}},
					"legacy": {"full_text": "the quoted one"}
				}
			}
		}
	}`)

	n := NewNormalizer(Config{})
	tw, err := n.Tweet(r)
	require.NoError(t, err)

	assert.Equal(t, "123", tw.ID)
	assert.Equal(t, "jack", tw.ScreenName)
	assert.Equal(t, "hello with a pic", tw.Text)
	assert.Equal(t, 1000, tw.Views)
	assert.Equal(t, 10, tw.Likes)
	assert.Equal(t, 5, tw.Retweets)
	assert.False(t, tw.IsRetweet)

	require.Len(t, tw.Media, 1)
	assert.Equal(t, MediaPhoto, tw.Media[0].Type)
	assert.Equal(t, "https://pbs.twimg.com/media/ABC123?format=jpg&name=orig", tw.Media[0].URL)
	assert.Equal(t, "jpg", tw.Media[0].Ext)

	require.NotNil(t, tw.Quoted)
	assert.Equal(t, "456", tw.Quoted.ID)
	assert.Equal(t, "other", tw.Quoted.ScreenName)
	assert.Equal(t, "the quoted one", tw.Quoted.Text)
}

func TestNormalizeTweetRetweet(t *testing.T) {
	r := mustTweetResult(t, `{
		"rest_id": "1",
		"core": {"user_results": {"result": {"legacy": {"screen_name": "rter"}}}},
		"legacy": {
			"full_text": "RT @v: clip",
			"retweeted_status_result": {
				"result": {
					"rest_id": "2",
					"legacy": {
						"extended_entities": {"media": [
							{"id_str": "v1", "type": "video", "media_url_https": "https://pbs.twimg.com/tweet_video_thumb/X.jpg",
							 "video_info": {"variants": [
								{"bitrate": 800, "content_type": "video/mp4", "url": "https://video.twimg.com/low.mp4?tag=12"},
								{"bitrate": 2000, "content_type": "video/mp4", "url": "https://video.twimg.com/high.mp4?tag=12"}
							]}}
						]}
					}
				}
			}
		}
	}`)

	n := NewNormalizer(Config{})
	tw, err := n.Tweet(r)
	require.NoError(t, err)

	assert.True(t, tw.IsRetweet)
	require.Len(t, tw.Media, 1)
	assert.Equal(t, "https://video.twimg.com/high.mp4?tag=12", tw.Media[0].URL)
	assert.Equal(t, "mp4", tw.Media[0].Ext)
}

func TestNormalizeTweetWrapped(t *testing.T) {
	n := NewNormalizer(Config{})
	tw, err := n.Tweet(mustTweetResult(t, wrappedTweetJSON))
	require.NoError(t, err)
	assert.Equal(t, "100", tw.ID)
	assert.Equal(t, "gated tweet", tw.Text)

	_, err = n.Tweet(mustTweetResult(t, `{"__typename":"Tweet"}`))
	assert.Error(t, err)
}

func TestNormalizeUser(t *testing.T) {
	var r UserResult
	require.NoError(t, json.Unmarshal([]byte(`{
		"__typename": "User",
		"rest_id": "12345",
		"is_blue_verified": true,
		"legacy": {
			"name": "Test User",
			"screen_name": "testuser",
			"description": "  Hello world  ",
			"created_at": "Mon Jan 02 15:04:05 +0000 2020",
			"followers_count": 100,
			"friends_count": 50,
			"statuses_count": 200,
			"verified": false,
			"profile_image_url_https": "https://pbs.twimg.com/profile_images/123/photo_normal.jpg",
			"profile_banner_url": "https://pbs.twimg.com/profile_banners/468/169"
		}
	}`), &r))

	n := NewNormalizer(Config{})
	u, err := n.User(&r)
	require.NoError(t, err)

	assert.Equal(t, "12345", u.ID)
	assert.Equal(t, "testuser", u.ScreenName)
	assert.Equal(t, "Test User", u.Name)
	assert.Equal(t, "Hello world", u.Bio)
	assert.Equal(t, 100, u.Followers)
	assert.Equal(t, 50, u.Following)
	assert.Equal(t, 200, u.TweetCount)
	assert.True(t, u.IsVerified)
	assert.Equal(t, "https://pbs.twimg.com/profile_images/123/photo.jpg", u.ProfileImageURL)
}

func TestNormalizeUserUnavailable(t *testing.T) {
	n := NewNormalizer(Config{})

	_, err := n.User(&UserResult{TypeName: "UserUnavailable"})
	assert.Error(t, err)

	_, err = n.User(nil)
	assert.Error(t, err)
}
