package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	appContext "github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
)

const (
	knowledgeTopK     = 2
	knowledgeMinScore = 0.35
)

type knowledgeDoc struct {
	Title string
	Body  string
}

var creatorGuides = []knowledgeDoc{
	{"Hooks", "Open every video with the payoff in the first three seconds. State the problem, promise the result, then start. Cut greetings and channel intros from the opening."},
	{"Consistency", "Pick a publishing cadence you can hold for three months, such as one long video and two shorts a week. Batch scripting on one day and filming on another."},
	{"Thumbnails", "Use one face, one emotion and at most three words. Test two thumbnails for each upload and keep the one with the higher click-through rate after 48 hours."},
	{"Audio", "Viewers forgive poor video but not poor audio. A lavalier or dynamic USB microphone close to the mouth beats an expensive camera microphone."},
	{"Lighting", "Place a soft key light at 45 degrees in front of you and slightly above eye level. A window works during the day; avoid overhead room lights."},
	{"Short-form", "Shorts and TikToks should loop. End on a line that leads back into the first frame, keep text inside the safe area and post at the same time each day."},
	{"Analytics", "Watch average view duration and the retention graph before subscriber counts. A dip in the first 30 seconds means the hook or intro needs work."},
	{"Burnout", "Keep a backlog of two finished videos so a bad week does not break your schedule. Schedule rest days the same way you schedule uploads."},
	{"Live streaming", "Stream on a fixed schedule, greet chat by name and keep a simple segment plan. Clip the best moments into shorts the next day."},
	{"Collaboration", "Pitch collaborations with a concrete idea that benefits both audiences. Creators of a similar size reply far more often than large channels."},
}

// KnowledgeService finds the built-in creator guides closest to a message by
// embedding similarity. Every failure degrades to an empty context.
type KnowledgeService struct {
	appContext.DefaultService

	generator    TextGenerator
	rateLimitSvc *RateLimitService

	mu      sync.Mutex
	vectors [][]float32
}

const KNOWLEDGE_SVC = "knowledge_svc"

func (svc KnowledgeService) Id() string {
	return KNOWLEDGE_SVC
}

func (svc *KnowledgeService) Configure(ctx *appContext.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *KnowledgeService) Start() error {
	svc.generator = svc.Service(GENAI_SVC).(*GenAIService)
	svc.rateLimitSvc = svc.Service(RATE_LIMIT_SVC).(*RateLimitService)
	return nil
}

// ContextFor returns the most relevant guides for query formatted for a system
// prompt, or "".
func (svc *KnowledgeService) ContextFor(ctx context.Context, userID, query string) string {
	if strings.TrimSpace(query) == "" {
		return ""
	}
	if svc.rateLimitSvc != nil {
		if err := svc.rateLimitSvc.Check(BucketEmbedding, userID); err != nil {
			return ""
		}
	}

	docs, err := svc.guideVectors(ctx)
	if err != nil {
		log.WithError(err).Warn("Failed to embed creator guides")
		return ""
	}

	q, err := svc.generator.Embed(ctx, []string{query})
	if err != nil || len(q) == 0 {
		log.WithFields(log.Fields{"user_id": userID, "error": err}).Warn("Failed to embed query")
		return ""
	}

	type scored struct {
		idx   int
		score float64
	}
	var results []scored
	for i, v := range docs {
		if s := cosineSimilarity(q[0], v); s >= knowledgeMinScore {
			results = append(results, scored{i, s})
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].score > results[j].score })
	if len(results) > knowledgeTopK {
		results = results[:knowledgeTopK]
	}

	var b strings.Builder
	for _, r := range results {
		doc := creatorGuides[r.idx]
		fmt.Fprintf(&b, "- %s: %s\n", doc.Title, doc.Body)
	}
	return b.String()
}

// guideVectors embeds the guides once. A failed attempt is retried on the
// next call.
func (svc *KnowledgeService) guideVectors(ctx context.Context) ([][]float32, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	if svc.vectors != nil {
		return svc.vectors, nil
	}

	texts := make([]string, len(creatorGuides))
	for i, d := range creatorGuides {
		texts[i] = d.Title + ": " + d.Body
	}
	vectors, err := svc.generator.Embed(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(creatorGuides) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(creatorGuides), len(vectors))
	}
	svc.vectors = vectors
	return vectors, nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, aMag, bMag float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		aMag += float64(a[i]) * float64(a[i])
		bMag += float64(b[i]) * float64(b[i])
	}
	if aMag == 0 || bMag == 0 {
		return 0
	}
	return dot / (math.Sqrt(aMag) * math.Sqrt(bMag))
}
