package domain

// Chat roles as sent to the completion provider.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is a single message of a conversation transcript.
type Turn struct {
	Role    string
	Content string
}

func UserTurn(content string) Turn      { return Turn{Role: RoleUser, Content: content} }
func AssistantTurn(content string) Turn { return Turn{Role: RoleAssistant, Content: content} }
func SystemTurn(content string) Turn    { return Turn{Role: RoleSystem, Content: content} }
