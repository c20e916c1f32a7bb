package reply

import (
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/prompts"
)

// NoBusinessInfo replaces the knowledge base when no item survives filtering.
const NoBusinessInfo = "No business information provided."

const systemInstructionTemplate = "You are an expert customer support agent. " +
	"Your goal is to write clear, concise, and helpful email replies in a {{.tone}} tone. " +
	"Use the following business information as your knowledge base to answer customer questions. " +
	"Be professional and empathetic.\n" +
	"\n" +
	"  **Business Information Knowledge Base:**\n" +
	"  {{.knowledge_base}}"

const userPromptTemplate = "Please draft a reply to the following customer email.\n" +
	"\n" +
	"  **From:** {{.sender}} <{{.sender_email}}>\n" +
	"  **Subject:** {{.subject}}\n" +
	"  \n" +
	"  **Email Body:**\n" +
	"  ---\n" +
	"  {{.body}}\n" +
	"  ---\n" +
	"  \n" +
	"  Based on the business information, provide a suitable response."

var (
	systemInstructionPrompt = prompts.NewPromptTemplate(
		systemInstructionTemplate,
		[]string{"tone", "knowledge_base"},
	)
	userPrompt = prompts.NewPromptTemplate(
		userPromptTemplate,
		[]string{"sender", "sender_email", "subject", "body"},
	)
)

// Validate checks that the three top-level fields are present.
// Nested email fields are not inspected.
func Validate(req *Request) error {
	if req == nil || req.Email == nil || req.BusinessInfo == nil || req.Tone == "" {
		return ErrMissingRequiredData
	}
	return nil
}

// BuildKnowledgeBase renders one "- key: value" line per item whose trimmed
// key and value are both non-empty, keeping input order.
func BuildKnowledgeBase(items []KnowledgeItem) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		key := strings.TrimSpace(item.Key)
		value := strings.TrimSpace(item.Value)
		if key == "" || value == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s: %s", key, value))
	}

	if len(lines) == 0 {
		return NoBusinessInfo
	}
	return strings.Join(lines, "\n")
}

// BuildPrompt renders the system instruction and the user prompt for a request.
func BuildPrompt(req *Request) (*PromptBundle, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}
	return renderPrompt(req)
}

// renderPrompt expects a request that already passed Validate.
func renderPrompt(req *Request) (*PromptBundle, error) {
	system, err := systemInstructionPrompt.Format(map[string]any{
		"tone":           strings.ToLower(req.Tone),
		"knowledge_base": BuildKnowledgeBase(req.BusinessInfo),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to format system instruction: %w", err)
	}

	user, err := userPrompt.Format(map[string]any{
		"sender":       req.Email.Sender,
		"sender_email": req.Email.SenderEmail,
		"subject":      req.Email.Subject,
		"body":         req.Email.Body,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to format user prompt: %w", err)
	}

	return &PromptBundle{
		SystemInstruction: system,
		UserPrompt:        user,
	}, nil
}
