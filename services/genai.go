package services

import (
	"context"
	"fmt"
	"iter"
	"os"

	appContext "github.com/alphabatem/common/context"
	"github.com/lac-hong-legacy/creator_api/shared"
	log "github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

// ChatMessage is one turn handed to the model. Role is shared.RoleUser or
// shared.RoleAssistant.
type ChatMessage struct {
	Role    string
	Content string
}

type GenerateOptions struct {
	Temperature float32
	MaxTokens   int32
	JSON        bool
}

// StreamChunk is one fragment of a streamed completion. Done is set on the
// final chunk, which may carry no text.
type StreamChunk struct {
	Text string
	Done bool
}

// TextGenerator is the model-facing collaborator.
type TextGenerator interface {
	Complete(ctx context.Context, system string, messages []ChatMessage, opts GenerateOptions) (string, error)
	Stream(ctx context.Context, system string, messages []ChatMessage, opts GenerateOptions) iter.Seq2[StreamChunk, error]
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

type GenAIService struct {
	appContext.DefaultService

	apiKey     string
	model      string
	embedModel string
	client     *genai.Client
}

const GENAI_SVC = "genai_svc"

func (svc GenAIService) Id() string {
	return GENAI_SVC
}

func (svc *GenAIService) Configure(ctx *appContext.Context) error {
	svc.apiKey = os.Getenv("GENAI_API_KEY")
	svc.model = envOr("GENAI_MODEL", "gemini-2.0-flash")
	svc.embedModel = envOr("GENAI_EMBED_MODEL", "gemini-embedding-001")
	return svc.DefaultService.Configure(ctx)
}

func (svc *GenAIService) Start() error {
	if svc.apiKey == "" {
		log.Warn("GENAI_API_KEY not set, text generation disabled")
		return nil
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  svc.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return fmt.Errorf("failed to create GenAI client: %w", err)
	}
	svc.client = client

	log.WithFields(log.Fields{"model": svc.model, "embed_model": svc.embedModel}).Info("GenAI client ready")
	return nil
}

func (svc *GenAIService) Complete(ctx context.Context, system string, messages []ChatMessage, opts GenerateOptions) (string, error) {
	if svc.client == nil {
		generationCallsTotal.WithLabelValues("complete", "disabled").Inc()
		return "", shared.ErrUpstreamUnavailable
	}

	resp, err := svc.client.Models.GenerateContent(ctx, svc.model, toContents(messages), generateConfig(system, opts))
	if err != nil {
		generationCallsTotal.WithLabelValues("complete", "error").Inc()
		return "", fmt.Errorf("%w: %v", shared.ErrUpstreamUnavailable, err)
	}

	generationCallsTotal.WithLabelValues("complete", "ok").Inc()
	return resp.Text(), nil
}

// Stream yields text fragments as the model produces them. The sequence ends
// after a Done chunk or after the first error.
func (svc *GenAIService) Stream(ctx context.Context, system string, messages []ChatMessage, opts GenerateOptions) iter.Seq2[StreamChunk, error] {
	return func(yield func(StreamChunk, error) bool) {
		if svc.client == nil {
			generationCallsTotal.WithLabelValues("stream", "disabled").Inc()
			yield(StreamChunk{}, shared.ErrUpstreamUnavailable)
			return
		}

		for resp, err := range svc.client.Models.GenerateContentStream(ctx, svc.model, toContents(messages), generateConfig(system, opts)) {
			if err != nil {
				generationCallsTotal.WithLabelValues("stream", "error").Inc()
				yield(StreamChunk{}, fmt.Errorf("%w: %v", shared.ErrUpstreamUnavailable, err))
				return
			}
			if text := resp.Text(); text != "" {
				if !yield(StreamChunk{Text: text}, nil) {
					generationCallsTotal.WithLabelValues("stream", "cancelled").Inc()
					return
				}
			}
		}

		generationCallsTotal.WithLabelValues("stream", "ok").Inc()
		yield(StreamChunk{Done: true}, nil)
	}
}

func (svc *GenAIService) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	if svc.client == nil {
		generationCallsTotal.WithLabelValues("embed", "disabled").Inc()
		return nil, shared.ErrUpstreamUnavailable
	}

	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		contents[i] = genai.NewContentFromText(text, genai.RoleUser)
	}

	result, err := svc.client.Models.EmbedContent(ctx, svc.embedModel, contents, &genai.EmbedContentConfig{
		TaskType: "SEMANTIC_SIMILARITY",
	})
	if err != nil {
		generationCallsTotal.WithLabelValues("embed", "error").Inc()
		return nil, fmt.Errorf("%w: %v", shared.ErrUpstreamUnavailable, err)
	}

	embeddings := make([][]float32, len(result.Embeddings))
	for i, emb := range result.Embeddings {
		embeddings[i] = emb.Values
	}
	generationCallsTotal.WithLabelValues("embed", "ok").Inc()
	return embeddings, nil
}

func toContents(messages []ChatMessage) []*genai.Content {
	contents := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		role := genai.Role(genai.RoleUser)
		if m.Role == shared.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}
	return contents
}

func generateConfig(system string, opts GenerateOptions) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: opts.MaxTokens,
	}
	if system != "" {
		config.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	if opts.Temperature > 0 {
		config.Temperature = genai.Ptr(opts.Temperature)
	}
	if opts.JSON {
		config.ResponseMIMEType = "application/json"
	}
	return config
}
