package bot

import "fmt"

// ReplyType 回复类型
type ReplyType int

const (
	ReplyText ReplyType = iota + 1
	ReplyError
)

func (t ReplyType) String() string {
	switch t {
	case ReplyText:
		return "TEXT"
	case ReplyError:
		return "ERROR"
	}
	return fmt.Sprintf("ReplyType(%d)", int(t))
}

func (t ReplyType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *ReplyType) UnmarshalText(b []byte) error {
	switch string(b) {
	case "TEXT":
		*t = ReplyText
	case "ERROR":
		*t = ReplyError
	default:
		return fmt.Errorf("unknown reply type %q", b)
	}
	return nil
}

type Reply struct {
	Type    ReplyType `json:"type"`
	Content string    `json:"content"`
}

func NewTextReply(content string) *Reply {
	return &Reply{Type: ReplyText, Content: content}
}

func NewErrorReply(content string) *Reply {
	return &Reply{Type: ReplyError, Content: content}
}
