package albert

import (
	"net/http"
	"sort"

	"github.com/petal-labs/albert-go/dispatch"
)

// Path placeholders used by the catalog.
const (
	paramModel      = "model"
	paramCollection = "collection_id"
	paramDocument   = "document_id"
	paramChunk      = "chunk_id"
	paramToken      = "token_id"
)

var (
	epListModels = dispatch.MustEndpoint("models.list", http.MethodGet, "/v1/models", dispatch.BodyNone)
	epGetModel   = dispatch.MustEndpoint("models.get", http.MethodGet, "/v1/models/{model}", dispatch.BodyNone)

	epChatCompletions   = dispatch.MustEndpoint("chat.completions", http.MethodPost, "/v1/chat/completions", dispatch.BodyJSON)
	epAgentsCompletions = dispatch.MustEndpoint("agents.completions", http.MethodPost, "/v1/agents/completions", dispatch.BodyJSON)
	epAgentTools        = dispatch.MustEndpoint("agents.tools", http.MethodGet, "/v1/agents/tools", dispatch.BodyNone)

	epEmbeddings = dispatch.MustEndpoint("embeddings.create", http.MethodPost, "/v1/embeddings", dispatch.BodyJSON)

	epTranscribe = dispatch.MustEndpoint("audio.transcriptions", http.MethodPost, "/v1/audio/transcriptions", dispatch.BodyMultipart)
	epParse      = dispatch.MustEndpoint("parse", http.MethodPost, "/v1/parse-beta", dispatch.BodyMultipart)
	epOCR        = dispatch.MustEndpoint("ocr", http.MethodPost, "/v1/ocr-beta", dispatch.BodyMultipart)

	epCreateCollection = dispatch.MustEndpoint("collections.create", http.MethodPost, "/v1/collections", dispatch.BodyJSON)
	epListCollections  = dispatch.MustEndpoint("collections.list", http.MethodGet, "/v1/collections", dispatch.BodyNone)
	epGetCollection    = dispatch.MustEndpoint("collections.get", http.MethodGet, "/v1/collections/{collection_id}", dispatch.BodyNone)
	epUpdateCollection = dispatch.MustEndpoint("collections.update", http.MethodPatch, "/v1/collections/{collection_id}", dispatch.BodyJSON)
	epDeleteCollection = dispatch.MustEndpoint("collections.delete", http.MethodDelete, "/v1/collections/{collection_id}", dispatch.BodyNone)

	epCreateDocument = dispatch.MustEndpoint("documents.create", http.MethodPost, "/v1/documents", dispatch.BodyMultipart)
	epListDocuments  = dispatch.MustEndpoint("documents.list", http.MethodGet, "/v1/documents", dispatch.BodyNone)
	epGetDocument    = dispatch.MustEndpoint("documents.get", http.MethodGet, "/v1/documents/{document_id}", dispatch.BodyNone)
	epDeleteDocument = dispatch.MustEndpoint("documents.delete", http.MethodDelete, "/v1/documents/{document_id}", dispatch.BodyNone)

	epListChunks = dispatch.MustEndpoint("chunks.list", http.MethodGet, "/v1/chunks/{document_id}", dispatch.BodyNone)
	epGetChunk   = dispatch.MustEndpoint("chunks.get", http.MethodGet, "/v1/chunks/{document_id}/{chunk_id}", dispatch.BodyNone)

	epSearch = dispatch.MustEndpoint("search", http.MethodPost, "/v1/search", dispatch.BodyJSON)
	epRerank = dispatch.MustEndpoint("rerank", http.MethodPost, "/v1/rerank", dispatch.BodyJSON)
	epUsage  = dispatch.MustEndpoint("usage", http.MethodGet, "/v1/usage", dispatch.BodyNone)

	epCreateToken = dispatch.MustEndpoint("tokens.create", http.MethodPost, "/tokens", dispatch.BodyJSON)
	epListTokens  = dispatch.MustEndpoint("tokens.list", http.MethodGet, "/tokens", dispatch.BodyNone)
	epGetToken    = dispatch.MustEndpoint("tokens.get", http.MethodGet, "/tokens/{token_id}", dispatch.BodyNone)
	epDeleteToken = dispatch.MustEndpoint("tokens.delete", http.MethodDelete, "/tokens/{token_id}", dispatch.BodyNone)
)

var catalog = []dispatch.Endpoint{
	epListModels, epGetModel,
	epChatCompletions, epAgentsCompletions, epAgentTools,
	epEmbeddings,
	epTranscribe, epParse, epOCR,
	epCreateCollection, epListCollections, epGetCollection, epUpdateCollection, epDeleteCollection,
	epCreateDocument, epListDocuments, epGetDocument, epDeleteDocument,
	epListChunks, epGetChunk,
	epSearch, epRerank, epUsage,
	epCreateToken, epListTokens, epGetToken, epDeleteToken,
}

// Endpoints returns every platform operation the client knows, sorted by name.
func Endpoints() []dispatch.Endpoint {
	out := make([]dispatch.Endpoint, len(catalog))
	copy(out, catalog)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup returns the endpoint with the given name.
func Lookup(name string) (dispatch.Endpoint, bool) {
	for _, ep := range catalog {
		if ep.Name == name {
			return ep, true
		}
	}
	return dispatch.Endpoint{}, false
}
