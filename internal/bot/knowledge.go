package bot

import (
	"encoding/json"
	"log"
	"os"
	"strings"

	"github.com/gridvoice/gridvoice/internal/domain"
)

// faqDocument mirrors the on-disk FAQ format: a categories mapping
// (category key to display name) and an ordered questions list.
type faqDocument struct {
	Categories map[string]string `json:"categories"`
	Questions  []faqQuestion     `json:"questions"`
}

type faqQuestion struct {
	ID       int      `json:"id"`
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Category string   `json:"category"`
	Keywords []string `json:"keywords"`
}

// KnowledgeBase is the in-memory catalog of scripted question/answer
// entries. It is immutable after construction and safe for concurrent
// reads.
type KnowledgeBase struct {
	categories map[string]string
	entries    []domain.Entry

	// normalized question text and keywords, precomputed at load
	normalizedQuestions []string
	normalizedKeywords  [][]string
}

// NewKnowledgeBase builds a catalog from already-loaded entries. Entry
// order is preserved; it is the tie-break order for both matching passes.
func NewKnowledgeBase(categories map[string]string, entries []domain.Entry) *KnowledgeBase {
	if categories == nil {
		categories = map[string]string{}
	}

	kb := &KnowledgeBase{
		categories:          categories,
		entries:             entries,
		normalizedQuestions: make([]string, len(entries)),
		normalizedKeywords:  make([][]string, len(entries)),
	}

	for i := range entries {
		kb.normalizedQuestions[i] = Normalize(entries[i].Question)
		keywords := make([]string, 0, len(entries[i].Keywords))
		for _, kw := range entries[i].Keywords {
			keywords = append(keywords, Normalize(kw))
		}
		kb.normalizedKeywords[i] = keywords
	}

	return kb
}

// LoadKnowledgeBase reads the FAQ document at path. A missing or malformed
// file is not fatal: the assistant starts with an empty catalog and every
// lookup falls through to intent matching.
func LoadKnowledgeBase(path string) *KnowledgeBase {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("knowledge base: cannot read %s, starting with empty catalog: %v", path, err)
		return NewKnowledgeBase(nil, nil)
	}

	var doc faqDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Printf("knowledge base: cannot parse %s, starting with empty catalog: %v", path, err)
		return NewKnowledgeBase(nil, nil)
	}

	entries := make([]domain.Entry, 0, len(doc.Questions))
	for _, q := range doc.Questions {
		entry := domain.Entry{
			ID:       q.ID,
			Question: q.Question,
			Answer:   q.Answer,
			Category: q.Category,
			Keywords: q.Keywords,
		}
		if err := domain.ValidateEntry(&entry); err != nil {
			log.Printf("knowledge base: skipping entry %d: %v", q.ID, err)
			continue
		}
		entries = append(entries, entry)
	}

	return NewKnowledgeBase(doc.Categories, entries)
}

// Len returns the number of entries in the catalog.
func (kb *KnowledgeBase) Len() int {
	return len(kb.entries)
}

// Categories returns the category key to display name mapping.
func (kb *KnowledgeBase) Categories() map[string]string {
	return kb.categories
}

// Entries returns the catalog entries in load order.
func (kb *KnowledgeBase) Entries() []domain.Entry {
	return kb.entries
}

// Find looks up the answer for a normalized query. The keyword pass runs
// first: entries are checked in catalog order and the first entry with any
// keyword contained in the query wins, no matter how many keywords other
// entries would match. Only if no keyword matches does the similarity pass
// run, accepting the best-scoring question text above the acceptance
// threshold. Ties keep the first entry encountered.
func (kb *KnowledgeBase) Find(normalizedQuery string) (string, bool) {
	if normalizedQuery == "" {
		return "", false
	}

	for i := range kb.entries {
		for _, keyword := range kb.normalizedKeywords[i] {
			if keyword != "" && strings.Contains(normalizedQuery, keyword) {
				return kb.entries[i].Answer, true
			}
		}
	}

	bestScore := 0.0
	bestIdx := -1
	for i := range kb.entries {
		score := Similarity(normalizedQuery, kb.normalizedQuestions[i])
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}

	if bestIdx >= 0 && bestScore > knowledgeThreshold {
		return kb.entries[bestIdx].Answer, true
	}

	return "", false
}
