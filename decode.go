// Package timeline extracts normalized user, tweet and media records from
// Twitter/X GraphQL timeline responses.
package timeline

import (
	"encoding/json"
	"fmt"
	"strings"
)

// InstructionLocator maps a parsed response body to its instruction list.
// Each GraphQL operation nests the timeline differently, so the locator is
// caller-supplied; ready-made locators for the common operations live
// below.
type InstructionLocator func(body []byte) ([]Instruction, error)

// EntryExtractor maps a narrowed item entry to an output record. Returning
// false skips the entry without error.
type EntryExtractor[T any] func(e Entry) (T, bool)

// Extract runs the extraction pipeline over one response body: surface an
// in-band API error, locate the instruction list, find the
// TimelineAddEntries instruction and feed each item entry to the
// extractor. Output order matches entry order; entries that fail to
// narrow or that the extractor rejects are skipped silently. The second
// return value is the bottom pagination cursor, empty when absent.
//
// A malformed body and a missing TimelineAddEntries instruction
// (ErrMissingInstruction) are the two fatal failures.
func Extract[T any](body []byte, locate InstructionLocator, extract EntryExtractor[T]) ([]T, string, error) {
	if err := apiError(body); err != nil {
		return nil, "", err
	}
	instructions, err := locate(body)
	if err != nil {
		return nil, "", err
	}
	add, err := FindAddEntries(instructions)
	if err != nil {
		return nil, "", err
	}

	var out []T
	var cursor string
	for _, e := range add.Entries {
		if e.IsCursor() {
			if e.Content.CursorType == "Bottom" || strings.Contains(e.EntryID, "cursor-bottom") {
				cursor = e.Content.Value
			}
			continue
		}
		if !e.IsItem() {
			continue
		}
		v, ok := extract(e)
		if !ok {
			continue
		}
		out = append(out, v)
	}
	return out, cursor, nil
}

// FindAddEntries returns the first TimelineAddEntries instruction, or
// ErrMissingInstruction.
func FindAddEntries(instructions []Instruction) (*Instruction, error) {
	for i := range instructions {
		if instructions[i].Type == instructionAddEntries {
			return &instructions[i], nil
		}
	}
	return nil, ErrMissingInstruction
}

type timelineObj struct {
	Instructions []Instruction `json:"instructions"`
}

// UserTweetsInstructions locates the instruction list of a UserTweets
// response, falling back from timeline to timeline_v2.
func UserTweetsInstructions(body []byte) ([]Instruction, error) {
	var raw struct {
		Data struct {
			User struct {
				Result struct {
					Timeline struct {
						Timeline timelineObj `json:"timeline"`
					} `json:"timeline"`
					TimelineV2 struct {
						Timeline timelineObj `json:"timeline"`
					} `json:"timeline_v2"`
				} `json:"result"`
			} `json:"user"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal user tweets: %w", err)
	}
	instructions := raw.Data.User.Result.Timeline.Timeline.Instructions
	if len(instructions) == 0 {
		instructions = raw.Data.User.Result.TimelineV2.Timeline.Instructions
	}
	return instructions, nil
}

// SearchInstructions locates the instruction list of a SearchTimeline
// response.
func SearchInstructions(body []byte) ([]Instruction, error) {
	var raw struct {
		Data struct {
			SearchByRawQuery struct {
				SearchTimeline struct {
					Timeline timelineObj `json:"timeline"`
				} `json:"search_timeline"`
			} `json:"search_by_raw_query"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal search timeline: %w", err)
	}
	return raw.Data.SearchByRawQuery.SearchTimeline.Timeline.Instructions, nil
}

// TweetDetailInstructions locates the instruction list of a TweetDetail
// (threaded conversation) response.
func TweetDetailInstructions(body []byte) ([]Instruction, error) {
	var raw struct {
		Data struct {
			ThreadedConversation timelineObj `json:"threaded_conversation_with_injections_v2"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal tweet detail: %w", err)
	}
	return raw.Data.ThreadedConversation.Instructions, nil
}

// ParseUserTweets extracts normalized tweets from a UserTweets response.
// A nil normalizer gets the zero-config default.
func ParseUserTweets(body []byte, n *Normalizer) ([]*Tweet, string, error) {
	if n == nil {
		n = NewNormalizer(Config{})
	}
	return Extract(body, UserTweetsInstructions, n.tweetEntry)
}

// ParseSearchTimeline extracts normalized tweets from a SearchTimeline
// response.
func ParseSearchTimeline(body []byte, n *Normalizer) ([]*Tweet, string, error) {
	if n == nil {
		n = NewNormalizer(Config{})
	}
	return Extract(body, SearchInstructions, n.tweetEntry)
}

// ParseUserList extracts normalized users from a Followers/Following
// response.
func ParseUserList(body []byte, n *Normalizer) ([]*User, string, error) {
	if n == nil {
		n = NewNormalizer(Config{})
	}
	locate := func(body []byte) ([]Instruction, error) {
		var raw struct {
			Data struct {
				User struct {
					Result struct {
						Timeline struct {
							Timeline timelineObj `json:"timeline"`
						} `json:"timeline"`
					} `json:"result"`
				} `json:"user"`
			} `json:"data"`
		}
		if err := json.Unmarshal(body, &raw); err != nil {
			return nil, fmt.Errorf("unmarshal user list: %w", err)
		}
		return raw.Data.User.Result.Timeline.Timeline.Instructions, nil
	}
	return Extract(body, locate, n.userEntry)
}

// ParseTweetDetail extracts normalized tweets from a TweetDetail response:
// the focal tweet items plus every tweet inside conversation-thread
// modules, in entry order.
func ParseTweetDetail(body []byte, n *Normalizer) ([]*Tweet, error) {
	if n == nil {
		n = NewNormalizer(Config{})
	}
	if err := apiError(body); err != nil {
		return nil, err
	}
	instructions, err := TweetDetailInstructions(body)
	if err != nil {
		return nil, err
	}
	add, err := FindAddEntries(instructions)
	if err != nil {
		return nil, err
	}

	var tweets []*Tweet
	for _, e := range add.Entries {
		switch {
		case e.IsTweetItem():
			if t, ok := n.tweetEntry(e); ok {
				tweets = append(tweets, t)
			}
		case e.IsConversationThread() || e.IsProfileConversation():
			items, err := e.ModuleItems()
			if err != nil {
				continue
			}
			for _, it := range items {
				r := it.Item.ItemContent.TweetResults.Result
				if r == nil {
					continue
				}
				t, err := n.Tweet(r)
				if err != nil {
					n.log("skip module tweet", err, map[string]any{"entry_id": it.EntryID})
					continue
				}
				tweets = append(tweets, t)
			}
		}
	}
	return tweets, nil
}

// tweetEntry narrows an entry to a tweet item and normalizes it.
func (n *Normalizer) tweetEntry(e Entry) (*Tweet, bool) {
	if !e.IsTweetItem() {
		return nil, false
	}
	ic, err := e.Content.Item()
	if err != nil {
		n.log("skip tweet entry", err, map[string]any{"entry_id": e.EntryID})
		return nil, false
	}
	t, err := n.Tweet(ic.TweetResults.Result)
	if err != nil {
		n.log("skip tweet entry", err, map[string]any{"entry_id": e.EntryID})
		return nil, false
	}
	return t, true
}

// userEntry narrows an entry to a user item and normalizes it.
func (n *Normalizer) userEntry(e Entry) (*User, bool) {
	if !e.IsUserItem() {
		return nil, false
	}
	ic, err := e.Content.Item()
	if err != nil {
		n.log("skip user entry", err, map[string]any{"entry_id": e.EntryID})
		return nil, false
	}
	u, err := n.User(ic.UserResults.Result)
	if err != nil {
		n.log("skip user entry", err, map[string]any{"entry_id": e.EntryID})
		return nil, false
	}
	return u, true
}
