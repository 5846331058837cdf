package finai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/liut/finai/pkg/models/bot"
	"github.com/liut/finai/pkg/services/imaging"
)

const (
	QueryPath = "/finai/v1/chat/query"

	maxRetry       = 2
	dftBaseURL     = "http://localhost:2024"
	dftTimeout     = time.Second * 180
	dftRetryDelay  = time.Second * 2
	dftChannelType = "wx"
)

// 这些渠道用 from_user_id 作为发送者名称
var idAsSenderChannels = []string{"wechatcom_app"}

var errRetryable = errors.New("retryable")

// SessionRecorder stores a successful exchange.
type SessionRecorder interface {
	Record(id, query, reply string)
}

type Config struct {
	BaseURL     string
	ChannelType string
	Timeout     time.Duration
	RetryDelay  time.Duration
	Replies     bot.Replies
}

func (c *Config) setDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = dftBaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.ChannelType == "" {
		c.ChannelType = dftChannelType
	}
	if c.Timeout <= 0 {
		c.Timeout = dftTimeout
	}
	if c.RetryDelay < 0 {
		c.RetryDelay = 0
	} else if c.RetryDelay == 0 {
		c.RetryDelay = dftRetryDelay
	}
	c.Replies = c.Replies.Merge()
}

type Option func(*Client)

// WithHTTPClient replaces the default client, its timeout is kept as is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

// Client talks to the finai chat endpoint.
type Client struct {
	cfg      Config
	hc       *http.Client
	sessions SessionRecorder
	encode   func(path string) (string, error)
}

func New(cfg Config, sessions SessionRecorder, opts ...Option) *Client {
	cfg.setDefaults()
	c := &Client{
		cfg:      cfg,
		sessions: sessions,
		encode:   imaging.EncodeBase64PNG,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.hc == nil {
		c.hc = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: &http.Transport{Proxy: http.ProxyFromEnvironment},
		}
	}
	return c
}

// Reply dispatches an inbound message by its type.
func (c *Client) Reply(ctx context.Context, query string, bc *bot.Context) *bot.Reply {
	switch bc.Type {
	case bot.CtText, bot.CtImage:
		return c.Chat(ctx, query, bc)
	}
	return bot.NewErrorReply(fmt.Sprintf(c.cfg.Replies.BotNotFit, bc.Type))
}

// Chat 发起对话请求, never fails, errors are turned into a reply.
func (c *Client) Chat(ctx context.Context, query string, bc *bot.Context) *bot.Reply {
	return c.chat(ctx, query, bc, 0)
}

func (c *Client) chat(ctx context.Context, query string, bc *bot.Context, retryCount int) *bot.Reply {
	if retryCount > maxRetry {
		logger().Warnw("[FINAI] failed after maximum number of retry times", "retry", retryCount)
		return bot.NewTextReply(c.cfg.Replies.AskAgain)
	}

	env, err := c.buildEnvelope(query, bc)
	if err != nil {
		logger().Infow("[FINAI] build envelope fail", "type", bc.Type, "err", err)
		return bot.NewTextReply(c.cfg.Replies.AskAgain)
	}

	for attempt := retryCount; attempt <= maxRetry; attempt++ {
		if attempt > retryCount {
			logger().Warnw("[FINAI] do retry", "times", attempt)
			if err = sleep(ctx, c.cfg.RetryDelay); err != nil {
				logger().Infow("[FINAI] retry canceled", "err", err)
				break
			}
		}
		var reply *bot.Reply
		reply, err = c.query(ctx, env, query)
		if err == nil {
			return reply
		}
		logger().Infow("[FINAI] chat fail", "attempt", attempt, "sid", env.SessionID, "err", err)
	}

	logger().Warnw("[FINAI] failed after maximum number of retry times", "sid", env.SessionID)
	return bot.NewTextReply(c.cfg.Replies.AskAgain)
}

func (c *Client) buildEnvelope(query string, bc *bot.Context) (*bot.Envelope, error) {
	env := &bot.Envelope{
		SessionID:   bc.SessionID,
		QueryText:   query,
		TextType:    bot.CtText.String(),
		ChannelType: c.cfg.ChannelType,
	}
	if bc.Type == bot.CtImage {
		// 图片消息，内容为 base64
		s, err := c.encode(bc.Content)
		if err != nil {
			return nil, err
		}
		env.QueryText = s
		env.TextType = bot.CtImage.String()
	}
	if msg := bc.Msg; msg != nil {
		env.SessionID = msg.FromUserID
		if msg.IsGroup {
			env.Group = true
			env.GroupName = msg.FromUserNickname
			env.SenderName = msg.ActualUserNickname
		} else if slices.Contains(idAsSenderChannels, env.ChannelType) {
			env.SenderName = msg.FromUserID
		} else {
			env.SenderName = msg.FromUserNickname
		}
	}
	return env, nil
}

// query does one round trip. A returned error means the call may be retried.
func (c *Client) query(ctx context.Context, env *bot.Envelope, query string) (*bot.Reply, error) {
	body, err := json.Marshal(env)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+QueryPath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return c.onFailure(res)
	}

	var result bot.Result
	if err = json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}
	logger().Debugw("[FINAI] query done", "requestId", result.RequestID, "cost", result.Cost,
		"errorCode", cast.ToString(result.ErrorCode), "errorMessage", result.ErrorMessage)

	data := result.Data
	if data.IsEmpty() {
		return bot.NewErrorReply(c.cfg.Replies.NotLearned), nil
	}

	switch data.Kind() {
	case bot.ContentText:
		sid := data.SessionID
		if sid == "" {
			sid = env.SessionID
		}
		if c.sessions != nil {
			c.sessions.Record(sid, query, data.Content)
		}
		return bot.NewTextReply(data.Content), nil
	case bot.ContentImage, bot.ContentUnknown:
	}
	return bot.NewErrorReply(fmt.Sprintf(c.cfg.Replies.Unsupported, data.ContentType)), nil
}

func (c *Client) onFailure(res *http.Response) (*bot.Reply, error) {
	var eb bot.ErrorBody
	b, _ := io.ReadAll(io.LimitReader(res.Body, 1<<16))
	if err := json.Unmarshal(b, &eb); err == nil && eb.Error != nil {
		logger().Errorw("[FINAI] chat failed", "status", res.StatusCode,
			"msg", eb.Error.Message, "type", eb.Error.Type)
	} else {
		logger().Errorw("[FINAI] chat failed", "status", res.StatusCode, "body", string(b))
	}

	if res.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("%w: server status %d", errRetryable, res.StatusCode)
	}
	if res.StatusCode == http.StatusConflict {
		return bot.NewErrorReply(c.cfg.Replies.NotLearned), nil
	}
	return bot.NewErrorReply(c.cfg.Replies.TooFast), nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
