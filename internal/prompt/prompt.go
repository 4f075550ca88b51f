package prompt

import (
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/prompts"
)

// Role tags a Message as system instruction or user turn.
type Role string

const (
	RoleSystem Role = "system"
	RoleHuman  Role = "human"
)

// Message is one (role, content) pair sent to the completion backend.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// HumanPreamble precedes the raw user input in the human message.
const HumanPreamble = "以下のユーザー入力に基づき、専門家として最適なアドバイスを提示してください。\n\nユーザー入力: "

// HumanTemplate is the f-string template for the human message.
const HumanTemplate = HumanPreamble + "{user_input}"

// Instruction text goes in through a variable so braces in it are never
// parsed as template syntax. The same holds for user input.
var chatTemplate = prompts.NewChatPromptTemplate([]prompts.MessageFormatter{
	prompts.SystemMessagePromptTemplate{Prompt: prompts.PromptTemplate{
		Template:       "{system}",
		InputVariables: []string{"system"},
		TemplateFormat: prompts.TemplateFormatFString,
	}},
	prompts.HumanMessagePromptTemplate{Prompt: prompts.PromptTemplate{
		Template:       HumanTemplate,
		InputVariables: []string{"user_input"},
		TemplateFormat: prompts.TemplateFormatFString,
	}},
})

// Request is a single system instruction + user input pair.
type Request struct {
	System string
	Input  string
}

// Messages renders the ordered system, human pair.
func (r Request) Messages() ([]Message, error) {
	chat, err := chatTemplate.FormatMessages(map[string]any{
		"system":     r.System,
		"user_input": r.Input,
	})
	if err != nil {
		return nil, fmt.Errorf("render prompt: %w", err)
	}

	msgs := make([]Message, 0, len(chat))
	for _, m := range chat {
		role := RoleHuman
		if m.GetType() == llms.ChatMessageTypeSystem {
			role = RoleSystem
		}
		msgs = append(msgs, Message{Role: role, Content: m.GetContent()})
	}
	return msgs, nil
}

// Split separates system content from the conversational messages, for
// backends that take the system prompt as a dedicated field.
func Split(msgs []Message) (system string, rest []Message) {
	var parts []string
	for _, m := range msgs {
		if m.Role == RoleSystem {
			parts = append(parts, m.Content)
			continue
		}
		rest = append(rest, m)
	}
	return strings.Join(parts, "\n\n"), rest
}
