package core

import "sort"

// Role represents a message participant role.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message represents a single message in a conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// UserMessage is shorthand for a user-role message.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// SystemMessage is shorthand for a system-role message.
func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// ModelType classifies what a platform model does.
type ModelType string

const (
	ModelTypeTextGeneration     ModelType = "text-generation"
	ModelTypeImageTextToText    ModelType = "image-text-to-text"
	ModelTypeEmbeddings         ModelType = "text-embeddings-inference"
	ModelTypeSpeechRecognition  ModelType = "automatic-speech-recognition"
	ModelTypeTextClassification ModelType = "text-classification"
)

// Model describes a model served by the platform.
type Model struct {
	ID               string    `json:"id"`
	Object           string    `json:"object,omitempty"`
	Type             ModelType `json:"type,omitempty"`
	OwnedBy          string    `json:"owned_by,omitempty"`
	Created          int64     `json:"created,omitempty"`
	MaxContextLength *int      `json:"max_context_length,omitempty"`
	Aliases          []string  `json:"aliases,omitempty"`
}

// ModelList is the body of a model listing.
type ModelList struct {
	Object string  `json:"object,omitempty"`
	Data   []Model `json:"data"`
}

// IDs returns the model identifiers in listing order.
func (l ModelList) IDs() []string {
	ids := make([]string, 0, len(l.Data))
	for _, m := range l.Data {
		ids = append(ids, m.ID)
	}
	return ids
}

// ByType returns the models of the given type in listing order.
func (l ModelList) ByType(t ModelType) []Model {
	var out []Model
	for _, m := range l.Data {
		if m.Type == t {
			out = append(out, m)
		}
	}
	return out
}

// TokenUsage tracks token consumption for a request.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens,omitempty"`
	TotalTokens      int `json:"total_tokens"`
}

// ChatChoice is one candidate of a chat completion.
type ChatChoice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason,omitempty"`
}

// ChatCompletion is the body of a chat or agent completion.
type ChatCompletion struct {
	ID      string       `json:"id"`
	Object  string       `json:"object,omitempty"`
	Created int64        `json:"created,omitempty"`
	Model   string       `json:"model"`
	Choices []ChatChoice `json:"choices"`
	Usage   *TokenUsage  `json:"usage,omitempty"`
}

// Content returns the text of the first choice, or "" when there is none.
func (c ChatCompletion) Content() string {
	if len(c.Choices) == 0 {
		return ""
	}
	return c.Choices[0].Message.Content
}

// Embedding is a single embedding vector.
type Embedding struct {
	Object    string    `json:"object,omitempty"`
	Index     int       `json:"index"`
	Embedding []float32 `json:"embedding"`
}

// EmbeddingList is the body of an embeddings call.
type EmbeddingList struct {
	Object string      `json:"object,omitempty"`
	Data   []Embedding `json:"data"`
	Model  string      `json:"model"`
	Usage  *TokenUsage `json:"usage,omitempty"`
}

// Vectors returns the vectors ordered by their input index.
func (l EmbeddingList) Vectors() [][]float32 {
	data := make([]Embedding, len(l.Data))
	copy(data, l.Data)
	sort.SliceStable(data, func(i, j int) bool { return data[i].Index < data[j].Index })

	out := make([][]float32, len(data))
	for i, e := range data {
		out[i] = e.Embedding
	}
	return out
}

// RerankResult scores one input against the rerank prompt.
type RerankResult struct {
	Object string  `json:"object,omitempty"`
	Index  int     `json:"index"`
	Score  float64 `json:"score"`
}

// RerankList is the body of a rerank call.
type RerankList struct {
	Object string         `json:"object,omitempty"`
	Data   []RerankResult `json:"data"`
}

// Ranked returns the results by descending score.
func (l RerankList) Ranked() []RerankResult {
	out := make([]RerankResult, len(l.Data))
	copy(out, l.Data)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}
