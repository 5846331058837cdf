package bot

import (
	"fmt"
	"strings"
)

// ContextType 消息类型
type ContextType int

const (
	CtText ContextType = iota + 1
	CtVoice
	CtImage
	CtFile
	CtVideo
	CtSharing
)

var ctNames = map[ContextType]string{
	CtText:    "TEXT",
	CtVoice:   "VOICE",
	CtImage:   "IMAGE",
	CtFile:    "FILE",
	CtVideo:   "VIDEO",
	CtSharing: "SHARING",
}

func (t ContextType) String() string {
	if s, ok := ctNames[t]; ok {
		return s
	}
	return fmt.Sprintf("ContextType(%d)", int(t))
}

// ParseContextType parses the wire name, case-insensitive.
func ParseContextType(s string) (ContextType, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for t, n := range ctNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown context type %q", s)
}

func (t ContextType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *ContextType) UnmarshalText(b []byte) error {
	v, err := ParseContextType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// ChatMessage 渠道消息的发送者信息
type ChatMessage struct {
	FromUserID         string `json:"from_user_id"`
	FromUserNickname   string `json:"from_user_nickname"`
	ActualUserNickname string `json:"actual_user_nickname"`
	IsGroup            bool   `json:"is_group"`
}

// Context carries an inbound message and its metadata.
// Content is the text for CtText and a local file path for CtImage.
type Context struct {
	Type      ContextType  `json:"type"`
	Content   string       `json:"content"`
	SessionID string       `json:"session_id"`
	Msg       *ChatMessage `json:"msg,omitempty"`
}
