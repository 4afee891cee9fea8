package timeline

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/buger/jsonparser"
)

// Wire discriminators. The content tag alone is not trusted as proof of
// shape: every predicate validates the entry id prefix and the inner
// payload discriminator as well, because the wire mixes several historical
// shapes under one umbrella type.
const (
	instructionAddEntries = "TimelineAddEntries"

	entryTypeItem   = "TimelineTimelineItem"
	entryTypeModule = "TimelineTimelineModule"
	entryTypeCursor = "TimelineTimelineCursor"

	itemTypeTweet = "TimelineTweet"
	itemTypeUser  = "TimelineUser"

	prefixTweet               = "tweet-"
	prefixUser                = "user-"
	prefixConversationThread  = "conversationthread-"
	prefixProfileConversation = "profile-conversation-"
)

// IsItem reports whether the entry wraps a single item payload.
func (e Entry) IsItem() bool {
	return e.Content.EntryType == entryTypeItem || e.Content.TypeName == entryTypeItem
}

// IsTweetItem reports whether the entry is a single-tweet row: an item
// entry with a tweet- id and TimelineTweet item content.
func (e Entry) IsTweetItem() bool {
	return e.IsItem() && strings.HasPrefix(e.EntryID, prefixTweet) && e.itemType() == itemTypeTweet
}

// IsUserItem reports whether the entry is a single-user row.
func (e Entry) IsUserItem() bool {
	return e.IsItem() && strings.HasPrefix(e.EntryID, prefixUser) && e.itemType() == itemTypeUser
}

// IsModule reports whether the entry groups multiple item payloads.
func (e Entry) IsModule() bool {
	return e.Content.EntryType == entryTypeModule || e.Content.TypeName == entryTypeModule
}

// IsConversationThread reports whether the entry is a conversation-thread
// module with a well-formed (possibly empty) item sequence.
func (e Entry) IsConversationThread() bool {
	return e.IsModule() && strings.HasPrefix(e.EntryID, prefixConversationThread) && e.hasModuleItems()
}

// IsProfileConversation reports whether the entry is a profile-conversation
// module with a well-formed (possibly empty) item sequence.
func (e Entry) IsProfileConversation() bool {
	return e.IsModule() && strings.HasPrefix(e.EntryID, prefixProfileConversation) && e.hasModuleItems()
}

// IsCursor reports whether the entry is a pagination cursor.
func (e Entry) IsCursor() bool {
	return e.Content.EntryType == entryTypeCursor || e.Content.TypeName == entryTypeCursor
}

// itemType peeks at the item content discriminator without a full parse.
// Older responses carry itemType, newer ones __typename.
func (e Entry) itemType() string {
	if len(e.Content.ItemContent) == 0 {
		return ""
	}
	if t, err := jsonparser.GetString(e.Content.ItemContent, "itemType"); err == nil && t != "" {
		return t
	}
	t, _ := jsonparser.GetString(e.Content.ItemContent, "__typename")
	return t
}

func (e Entry) hasModuleItems() bool {
	_, err := e.ModuleItems()
	return err == nil
}

// ModuleItems parses the item sequence of a module entry. An empty
// sequence is valid; an absent or malformed one is an error.
func (e Entry) ModuleItems() ([]ModuleItem, error) {
	if len(e.Content.Items) == 0 {
		return nil, fmt.Errorf("entry %s: no module items", e.EntryID)
	}
	var items []ModuleItem
	if err := json.Unmarshal(e.Content.Items, &items); err != nil {
		return nil, fmt.Errorf("entry %s: unmarshal module items: %w", e.EntryID, err)
	}
	return items, nil
}
