package bot

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn 一轮对话中的一条
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
	Time    int64  `json:"time"`
}

type Turns []Turn

// Pairs returns the number of complete query/reply pairs.
func (z Turns) Pairs() int {
	return len(z) / 2
}
