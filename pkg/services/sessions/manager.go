package sessions

import (
	"sync"
	"time"

	"github.com/liut/finai/pkg/models/bot"
)

const (
	dftModel = "gpt-3.5-turbo"
)

// Session 一个用户或群的会话
type Session struct {
	ID      string    `json:"id"`
	Model   string    `json:"model"`
	Turns   bot.Turns `json:"turns"`
	Created time.Time `json:"created"`
}

// Manager keeps sessions in process memory, it is safe for concurrent use.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	model    string
}

func NewManager(model string) *Manager {
	if model == "" {
		model = dftModel
	}
	return &Manager{
		sessions: make(map[string]*Session),
		model:    model,
	}
}

// build must be called with mu held.
func (m *Manager) build(id string) *Session {
	sess, ok := m.sessions[id]
	if !ok {
		sess = &Session{ID: id, Model: m.model, Created: time.Now()}
		m.sessions[id] = sess
		logger().Debugw("session created", "id", id, "model", m.model)
	}
	return sess
}

func (m *Manager) RecordQuery(id, query string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.append(m.build(id), bot.RoleUser, query)
}

func (m *Manager) RecordReply(id, reply string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.append(m.build(id), bot.RoleAssistant, reply)
}

// Record appends a query and its reply under one lock, so concurrent
// exchanges on the same session never interleave.
func (m *Manager) Record(id, query, reply string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess := m.build(id)
	m.append(sess, bot.RoleUser, query)
	m.append(sess, bot.RoleAssistant, reply)
}

func (m *Manager) append(sess *Session, role bot.Role, content string) {
	sess.Turns = append(sess.Turns, bot.Turn{Role: role, Content: content, Time: time.Now().Unix()})
}

// Get returns a copy of the session.
func (m *Manager) Get(id string) (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[id]
	if !ok {
		return Session{}, false
	}
	out := *sess
	out.Turns = make(bot.Turns, len(sess.Turns))
	copy(out.Turns, sess.Turns)
	return out, true
}

func (m *Manager) Clear(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

func (m *Manager) ClearAll() {
	m.mu.Lock()
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
