// response/message.go
package response

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MessageKind tells which shape the msg field of a response had.
type MessageKind int

const (
	// MessageNone means msg was absent or null.
	MessageNone MessageKind = iota
	// MessageGeneral means msg was a single string.
	MessageGeneral
	// MessageValidation means msg was a list of field errors.
	MessageValidation
)

// Message is the decoded msg field. Text is set for MessageGeneral, Fields for MessageValidation.
type Message struct {
	Kind   MessageKind
	Text   string
	Fields []string
}

// MentionsToken reports whether a general message refers to the token, which is how the API
// signals an expired or invalid token.
func (m Message) MentionsToken() bool {
	return m.Kind == MessageGeneral && strings.Contains(strings.ToLower(m.Text), "token")
}

func (m Message) String() string {
	switch m.Kind {
	case MessageGeneral:
		return m.Text
	case MessageValidation:
		return strings.Join(m.Fields, "; ")
	default:
		return ""
	}
}

// decodeMessage maps a raw JSON value of msg onto a Message. Values that are neither a string nor a
// list are kept as general text in their JSON form.
func decodeMessage(raw any) Message {
	switch v := raw.(type) {
	case nil:
		return Message{Kind: MessageNone}
	case string:
		return Message{Kind: MessageGeneral, Text: v}
	case []any:
		fields := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				fields = append(fields, s)
				continue
			}
			fields = append(fields, fmt.Sprint(item))
		}
		return Message{Kind: MessageValidation, Fields: fields}
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return Message{Kind: MessageGeneral, Text: fmt.Sprint(v)}
		}
		return Message{Kind: MessageGeneral, Text: string(data)}
	}
}
