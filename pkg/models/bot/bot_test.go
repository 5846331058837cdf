package bot

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextTypeText(t *testing.T) {
	ct, err := ParseContextType("image")
	require.NoError(t, err)
	assert.Equal(t, CtImage, ct)

	_, err = ParseContextType("STICKER")
	assert.Error(t, err)

	var bc Context
	err = json.Unmarshal([]byte(`{"type":"TEXT","content":"hi","session_id":"s1"}`), &bc)
	require.NoError(t, err)
	assert.Equal(t, CtText, bc.Type)
	assert.Nil(t, bc.Msg)

	b, err := json.Marshal(NewErrorReply("x"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"ERROR","content":"x"}`, string(b))
}

func TestParseContentType(t *testing.T) {
	assert.Equal(t, ContentText, ParseContentType("TEXT"))
	assert.Equal(t, ContentText, ParseContentType("text"))
	assert.Equal(t, ContentImage, ParseContentType("IMAGE"))
	assert.Equal(t, ContentUnknown, ParseContentType("VIDEO"))
	assert.Equal(t, ContentUnknown, ParseContentType(""))
}

func TestResultDataEmpty(t *testing.T) {
	var res Result
	require.NoError(t, json.Unmarshal([]byte(`{"requestId":"r1","data":{}}`), &res))
	assert.True(t, res.Data.IsEmpty())

	res = Result{}
	require.NoError(t, json.Unmarshal([]byte(`{"requestId":"r2"}`), &res))
	assert.Nil(t, res.Data)
	assert.True(t, res.Data.IsEmpty())
}

func TestRepliesMerge(t *testing.T) {
	r := Replies{TooFast: "slow down"}.Merge()
	assert.Equal(t, "slow down", r.TooFast)
	assert.Equal(t, dftNotLearned, r.NotLearned)
	assert.Equal(t, dftAskAgain, r.AskAgain)
}
