package bot

// Replies 固定回复文本，可由 yaml 文件覆盖
type Replies struct {
	NotLearned  string `json:"notLearned,omitempty" yaml:"notLearned,omitempty"`
	TooFast     string `json:"tooFast,omitempty" yaml:"tooFast,omitempty"`
	AskAgain    string `json:"askAgain,omitempty" yaml:"askAgain,omitempty"`
	Unsupported string `json:"unsupported,omitempty" yaml:"unsupported,omitempty"` // with one %s
	BotNotFit   string `json:"botNotFit,omitempty" yaml:"botNotFit,omitempty"`     // with one %s
}

const (
	dftNotLearned  = "这个问题我还没有学会，请问我其它问题吧"
	dftTooFast     = "提问太快啦，请休息一下再问我吧"
	dftAskAgain    = "请再问我一次吧"
	dftUnsupported = "不支持处理%s类型的消息"
	dftBotNotFit   = "Bot不支持处理%s类型的消息"
)

// DefaultReplies ...
func DefaultReplies() Replies {
	return Replies{
		NotLearned:  dftNotLearned,
		TooFast:     dftTooFast,
		AskAgain:    dftAskAgain,
		Unsupported: dftUnsupported,
		BotNotFit:   dftBotNotFit,
	}
}

// Merge fills empty fields from the defaults.
func (z Replies) Merge() Replies {
	d := DefaultReplies()
	if z.NotLearned == "" {
		z.NotLearned = d.NotLearned
	}
	if z.TooFast == "" {
		z.TooFast = d.TooFast
	}
	if z.AskAgain == "" {
		z.AskAgain = d.AskAgain
	}
	if z.Unsupported == "" {
		z.Unsupported = d.Unsupported
	}
	if z.BotNotFit == "" {
		z.BotNotFit = d.BotNotFit
	}
	return z
}
