// Package action decodes and encodes the payloads attached to inline keyboard
// buttons and inline query results.
// Payloads are parsed once at the dispatch boundary into a tagged Action so
// handlers never split strings themselves.
package action

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies what a button press asks the bot to do.
type Kind string

const (
	// KindSelect picks the jio an /add_item flow should target.
	KindSelect Kind = "select_order"
	// KindClose closes a jio (creator only).
	KindClose Kind = "close_order"
	// KindAdd starts the add-item flow from a published summary card.
	KindAdd Kind = "add_order"
	// KindShare publishes a jio's summary card into the current chat.
	KindShare Kind = "share_order"
)

// resultPrefix prefixes inline query result IDs.
const resultPrefix = "jio_"

// ErrMalformed is returned for payloads that do not decode to a known action.
var ErrMalformed = errors.New("malformed action payload")

var kinds = []Kind{KindSelect, KindClose, KindAdd, KindShare}

// Action is a decoded button payload.
type Action struct {
	Kind  Kind
	JioID int64
}

// Select returns a select action for the given jio.
func Select(jioID int64) Action { return Action{Kind: KindSelect, JioID: jioID} }

// Close returns a close action for the given jio.
func Close(jioID int64) Action { return Action{Kind: KindClose, JioID: jioID} }

// Add returns an add-order action for the given jio.
func Add(jioID int64) Action { return Action{Kind: KindAdd, JioID: jioID} }

// Share returns a share action for the given jio.
func Share(jioID int64) Action { return Action{Kind: KindShare, JioID: jioID} }

// Encode renders the action as callback data, e.g. "add_order_3".
// Telegram limits callback data to 64 bytes, which every kind fits comfortably.
func (a Action) Encode() string {
	return fmt.Sprintf("%s_%d", a.Kind, a.JioID)
}

// Parse decodes callback data produced by Encode.
func Parse(data string) (Action, error) {
	for _, k := range kinds {
		rest, ok := strings.CutPrefix(data, string(k)+"_")
		if !ok {
			continue
		}
		id, err := parseID(rest)
		if err != nil {
			return Action{}, fmt.Errorf("%w: %q", ErrMalformed, data)
		}
		return Action{Kind: k, JioID: id}, nil
	}
	return Action{}, fmt.Errorf("%w: %q", ErrMalformed, data)
}

// ResultID returns the inline query result ID for a jio.
func ResultID(jioID int64) string {
	return resultPrefix + strconv.FormatInt(jioID, 10)
}

// ParseResultID extracts the jio ID from an inline query result ID.
func ParseResultID(resultID string) (int64, error) {
	rest, ok := strings.CutPrefix(resultID, resultPrefix)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrMalformed, resultID)
	}
	id, err := parseID(rest)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformed, resultID)
	}
	return id, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("non-positive id %d", id)
	}
	return id, nil
}
