package bot

import "strings"

// Envelope is the request body of the finai query endpoint.
type Envelope struct {
	SessionID   string `json:"sessionId"`
	SenderName  string `json:"senderName"`
	Group       bool   `json:"group"`
	GroupName   string `json:"groupName"`
	QueryText   string `json:"queryText"`
	TextType    string `json:"textType"`
	ChannelType string `json:"channelType"`
}

// ContentType of a remote answer
type ContentType int

const (
	ContentUnknown ContentType = iota
	ContentText
	ContentImage
)

// ParseContentType is case-insensitive, "TEXT" and "text" are the same.
func ParseContentType(s string) ContentType {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case CtText.String():
		return ContentText
	case CtImage.String():
		return ContentImage
	}
	return ContentUnknown
}

type ResultData struct {
	SessionID   string `json:"sessionId"`
	Content     string `json:"content"`
	ContentType string `json:"contentType"`
}

func (d *ResultData) IsEmpty() bool {
	return d == nil || (d.SessionID == "" && d.Content == "" && d.ContentType == "")
}

func (d *ResultData) Kind() ContentType {
	return ParseContentType(d.ContentType)
}

// Result 接口响应
//
//	requestId: 请求ID, httpCode: http状态码, cost: 消耗时间ms
//	data: {sessionId: 会话ID, content: 响应内容, contentType: 内容类型}
type Result struct {
	RequestID    string      `json:"requestId"`
	HTTPCode     int         `json:"httpCode"`
	Cost         int64       `json:"cost"`
	Data         *ResultData `json:"data"`
	ErrorCode    any         `json:"errorCode"`
	ErrorMessage string      `json:"errorMessage"`
}

// ErrorBody is the body of a failed (non-200) query, only used in logs.
type ErrorBody struct {
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}
