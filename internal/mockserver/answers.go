package mockserver

import (
	"math/rand"
	"strings"
	"sync"

	"notebooklm-client/internal/dto"
)

// Canned answer templates. {topic} is replaced with the user's query.
var answerTemplates = []string{
	"Based on the provided documents, I can see that {topic}. The key points are: 1) The documents discuss various aspects of the subject matter. 2) There are several important considerations mentioned. 3) The overall conclusion suggests careful analysis is needed.",
	"According to the context provided, {topic}. This is supported by multiple references in the documents. The main findings indicate that the information is comprehensive and well-documented.",
	"From my analysis of the uploaded documents, {topic}. The documents contain relevant information that addresses your question. Key takeaways include the importance of understanding the context and applying the knowledge appropriately.",
	"The documents you've provided contain information about {topic}. After reviewing the content, I can summarize that the material covers several important aspects. The sources are consistent in their findings.",
}

const answerTopK = 5

// AnswerGenerator fabricates RAG responses for the mock backend. The
// mutex serializes access to rng; Fiber runs handlers concurrently and
// *rand.Rand is not safe for concurrent use.
type AnswerGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewAnswerGenerator(seed int64) *AnswerGenerator {
	return &AnswerGenerator{rng: rand.New(rand.NewSource(seed))}
}

func (g *AnswerGenerator) Generate(query string, docs []dto.DocumentResponse) (string, []dto.ChatSourceResponse) {
	g.mu.Lock()
	defer g.mu.Unlock()

	template := answerTemplates[g.rng.Intn(len(answerTemplates))]
	answer := strings.ReplaceAll(template, "{topic}", query)

	n := len(docs)
	if n > answerTopK {
		n = answerTopK
	}
	sources := make([]dto.ChatSourceResponse, 0, n)
	score := 0.95 - g.rng.Float64()*0.05
	for i := 0; i < n; i++ {
		sources = append(sources, dto.ChatSourceResponse{
			DocumentId:     docs[i].Id,
			Filename:       docs[i].Filename,
			ChunkText:      "Excerpt from " + docs[i].Filename + " relevant to: " + query,
			RelevanceScore: score,
		})
		// Keep scores strictly descending, the way a ranker would.
		score -= 0.05 + g.rng.Float64()*0.1
		if score < 0 {
			score = 0
		}
	}
	return answer, sources
}
