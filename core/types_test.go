package core

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestMessageJSONMarshal(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
		want string
	}{
		{"system role", SystemMessage("Tu es un assistant."), `{"role":"system","content":"Tu es un assistant."}`},
		{"user role", UserMessage("Bonjour"), `{"role":"user","content":"Bonjour"}`},
		{"empty content", Message{Role: RoleAssistant}, `{"role":"assistant","content":""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.msg)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Marshal() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestModelList(t *testing.T) {
	body := `{"object":"list","data":[
		{"id":"albert-large","type":"text-generation","owned_by":"etalab"},
		{"id":"embeddings-small","type":"text-embeddings-inference"},
		{"id":"albert-small","type":"text-generation","max_context_length":32000}
	]}`

	var list ModelList
	if err := json.Unmarshal([]byte(body), &list); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if got := list.IDs(); !reflect.DeepEqual(got, []string{"albert-large", "embeddings-small", "albert-small"}) {
		t.Errorf("IDs() = %v", got)
	}

	text := list.ByType(ModelTypeTextGeneration)
	if len(text) != 2 || text[0].ID != "albert-large" || text[1].ID != "albert-small" {
		t.Errorf("ByType(text-generation) = %+v", text)
	}
	if text[1].MaxContextLength == nil || *text[1].MaxContextLength != 32000 {
		t.Error("MaxContextLength not decoded")
	}
	if got := list.ByType(ModelTypeSpeechRecognition); got != nil {
		t.Errorf("ByType(asr) = %+v, want nil", got)
	}
}

func TestChatCompletionContent(t *testing.T) {
	body := `{"id":"chatcmpl-1","model":"albert-large","choices":[
		{"index":0,"message":{"role":"assistant","content":"Bonjour !"},"finish_reason":"stop"}
	],"usage":{"prompt_tokens":5,"completion_tokens":3,"total_tokens":8}}`

	var c ChatCompletion
	if err := json.Unmarshal([]byte(body), &c); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if c.Content() != "Bonjour !" {
		t.Errorf("Content() = %q", c.Content())
	}
	if c.Usage == nil || c.Usage.TotalTokens != 8 {
		t.Errorf("Usage = %+v", c.Usage)
	}
	if (ChatCompletion{}).Content() != "" {
		t.Error("Content() of an empty completion should be empty")
	}
}

func TestEmbeddingListVectorsOrderedByIndex(t *testing.T) {
	list := EmbeddingList{Data: []Embedding{
		{Index: 1, Embedding: []float32{0.2}},
		{Index: 0, Embedding: []float32{0.1}},
	}}

	got := list.Vectors()
	want := [][]float32{{0.1}, {0.2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Vectors() = %v, want %v", got, want)
	}
	if list.Data[0].Index != 1 {
		t.Error("Vectors() must not reorder the list itself")
	}
}

func TestRerankListRanked(t *testing.T) {
	list := RerankList{Data: []RerankResult{
		{Index: 0, Score: 0.1},
		{Index: 1, Score: 0.9},
		{Index: 2, Score: 0.5},
	}}

	got := list.Ranked()
	if got[0].Index != 1 || got[1].Index != 2 || got[2].Index != 0 {
		t.Errorf("Ranked() = %+v", got)
	}
}
