package completion

// MaxTokens is sent with every request.
const MaxTokens = 1000

// CompletionRequest is the payload posted to the completions endpoint.
type CompletionRequest struct {
	Prompt    string `json:"prompt"`
	MaxTokens int    `json:"max_tokens"`
}

// CompletionResponse is the body returned by the completions endpoint.
// Only Choices is used for display.
type CompletionResponse struct {
	ID      *string  `json:"id,omitempty"`
	Object  *string  `json:"object,omitempty"`
	Created *uint64  `json:"created,omitempty"`
	Model   *string  `json:"model,omitempty"`
	Choices []Choice `json:"choices"`
}

// Choice is one candidate completion.
type Choice struct {
	Text         string `json:"text"`
	Index        uint8  `json:"index"`
	Logprobs     *uint8 `json:"logprobs,omitempty"`
	FinishReason string `json:"finish_reason"`
}

// BuildRequest joins preamble and input with a single space.
// The input is used as read, trailing newline included.
func BuildRequest(preamble, input string) CompletionRequest {
	return CompletionRequest{
		Prompt:    preamble + " " + input,
		MaxTokens: MaxTokens,
	}
}

// FirstText returns the text of the first choice.
func (r CompletionResponse) FirstText() (string, error) {
	if len(r.Choices) == 0 {
		return "", ErrEmptyChoices
	}
	return r.Choices[0].Text, nil
}
