package web

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/marcsv/go-binder/binder"
	"github.com/spf13/cast"

	"github.com/liut/finai/pkg/models/bot"
	"github.com/liut/finai/pkg/services/oss"
)

const maxUploadSize = 32 << 20

// ReplyRequest is posted by a channel adapter.
type ReplyRequest struct {
	Type      string         `json:"type"`
	Content   string         `json:"content"`
	SessionID string         `json:"session_id"`
	Msg       map[string]any `json:"msg,omitempty"` // loose typed, straight from the channel
}

func (p *ReplyRequest) toContext() (*bot.Context, error) {
	ct, err := bot.ParseContextType(p.Type)
	if err != nil {
		return nil, err
	}
	bc := &bot.Context{Type: ct, Content: p.Content, SessionID: p.SessionID}
	if len(p.Msg) > 0 {
		bc.Msg = &bot.ChatMessage{
			FromUserID:         cast.ToString(p.Msg["from_user_id"]),
			FromUserNickname:   cast.ToString(p.Msg["from_user_nickname"]),
			ActualUserNickname: cast.ToString(p.Msg["actual_user_nickname"]),
			IsGroup:            cast.ToBool(p.Msg["is_group"]),
		}
	}
	return bc, nil
}

func (s *server) postReply(w http.ResponseWriter, r *http.Request) {
	var param ReplyRequest
	if err := binder.BindBody(r, &param); err != nil {
		apiFail(w, r, 400, err)
		return
	}
	bc, err := param.toContext()
	if err != nil {
		apiFail(w, r, 400, err)
		return
	}
	if len(strings.TrimSpace(bc.Content)) == 0 {
		apiFail(w, r, 400, "empty content")
		return
	}

	logger().Infow("reply", "sid", bc.SessionID, "type", bc.Type, "ip", r.RemoteAddr)
	reply := s.bot.Reply(r.Context(), bc.Content, bc)
	apiOk(w, r, reply)
}

func (s *server) getSession(w http.ResponseWriter, r *http.Request) {
	sid := chi.URLParam(r, "sid")
	sess, ok := s.sess.Get(sid)
	if !ok {
		apiFail(w, r, 404, "session not found")
		return
	}
	apiOk(w, r, sess, len(sess.Turns))
}

func (s *server) deleteSession(w http.ResponseWriter, r *http.Request) {
	s.sess.Clear(chi.URLParam(r, "sid"))
	w.WriteHeader(204)
}

func (s *server) getObject(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	data, err := s.oss.Get(r.Context(), name)
	if err != nil {
		if errors.Is(err, oss.ErrNotFound) {
			apiFail(w, r, 404, err)
			return
		}
		apiFail(w, r, 503, err)
		return
	}
	logger().Infow("object sent", "name", name, "size", FormatBytes(float64(len(data)), ""))
	w.Header().Set("Content-Type", http.DetectContentType(data))
	_, _ = w.Write(data)
}

func (s *server) putObject(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	body := http.MaxBytesReader(w, r.Body, maxUploadSize)
	data, err := io.ReadAll(body)
	if err != nil {
		apiFail(w, r, 413, err)
		return
	}
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		ct = http.DetectContentType(data)
	}
	if err = s.oss.PutReader(r.Context(), name, bytes.NewReader(data), int64(len(data)), ct); err != nil {
		apiFail(w, r, 503, err)
		return
	}
	logger().Infow("object stored", "name", name, "size", FormatBytes(float64(len(data)), ""))
	apiOk(w, r, M{"name": name, "size": len(data)})
}
