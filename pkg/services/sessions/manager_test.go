package sessions

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liut/finai/pkg/models/bot"
)

func TestManagerLazyCreate(t *testing.T) {
	m := NewManager("")
	_, ok := m.Get("u1")
	assert.False(t, ok)

	m.RecordQuery("u1", "你好")
	m.RecordReply("u1", "hello")

	sess, ok := m.Get("u1")
	require.True(t, ok)
	assert.Equal(t, dftModel, sess.Model)
	require.Len(t, sess.Turns, 2)
	assert.Equal(t, bot.RoleUser, sess.Turns[0].Role)
	assert.Equal(t, "你好", sess.Turns[0].Content)
	assert.Equal(t, bot.RoleAssistant, sess.Turns[1].Role)
	assert.Equal(t, "hello", sess.Turns[1].Content)
	assert.Equal(t, 1, sess.Turns.Pairs())
}

func TestManagerGetIsCopy(t *testing.T) {
	m := NewManager("qwen-turbo")
	m.Record("g1", "q", "a")
	sess, _ := m.Get("g1")
	sess.Turns[0].Content = "changed"

	again, _ := m.Get("g1")
	assert.Equal(t, "q", again.Turns[0].Content)
	assert.Equal(t, "qwen-turbo", again.Model)
}

func TestManagerClear(t *testing.T) {
	m := NewManager("")
	m.Record("a", "q", "r")
	m.Record("b", "q", "r")
	assert.Equal(t, 2, m.Len())

	m.Clear("a")
	_, ok := m.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, m.Len())

	m.ClearAll()
	assert.Zero(t, m.Len())
}

func TestManagerConcurrentRecord(t *testing.T) {
	m := NewManager("")
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m.Record("shared", fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i))
		}(i)
	}
	wg.Wait()

	sess, ok := m.Get("shared")
	require.True(t, ok)
	require.Len(t, sess.Turns, 100)
	for i := 0; i < len(sess.Turns); i += 2 {
		assert.Equal(t, bot.RoleUser, sess.Turns[i].Role)
		assert.Equal(t, bot.RoleAssistant, sess.Turns[i+1].Role)
		assert.Equal(t, sess.Turns[i].Content[1:], sess.Turns[i+1].Content[1:])
	}
}
