package reply

// Email is the customer message a reply is drafted for.
type Email struct {
	Sender      string `json:"sender"`
	SenderEmail string `json:"senderEmail"`
	Subject     string `json:"subject"`
	Body        string `json:"body"`
}

// KnowledgeItem is a single business fact. Either field may be blank.
type KnowledgeItem struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Request is the payload of a reply generation call.
// A nil Email or BusinessInfo means the field was absent (or null) in the body.
type Request struct {
	Email        *Email          `json:"email"`
	BusinessInfo []KnowledgeItem `json:"businessInfo"`
	Tone         string          `json:"tone"`
}

// Response is returned on success.
type Response struct {
	Reply string `json:"reply"`
}

// ErrorResponse is returned on any failure.
type ErrorResponse struct {
	Error string `json:"error"`
}

// PromptBundle holds the two prompts sent to the provider for one request.
type PromptBundle struct {
	SystemInstruction string
	UserPrompt        string
}
