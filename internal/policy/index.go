// Package policy implements the policy-passage index: an in-process lexical
// similarity search over the support policy documents. Callers treat it as an
// opaque "relevant passages for a query" capability.
package policy

// #region imports
import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// #endregion imports

// #region types

// Document is one source text to index.
type Document struct {
	Name    string
	Content string
}

// Passage is a ranked chunk returned from a query.
type Passage struct {
	Text   string
	Source string
	Score  float64
}

// Searcher is the retrieval boundary the routing core depends on. The
// in-process Index never fails, but remote implementations can; callers
// degrade to NoContext on error rather than aborting the turn.
type Searcher interface {
	Query(text string, k int) ([]Passage, error)
}

// NoContext is the degraded-context placeholder used when retrieval returns
// nothing or fails.
const NoContext = "No relevant policy information found."

// #endregion types

// #region index

// Index holds tf-idf vectors for all document chunks.
type Index struct {
	chunks  []chunk
	vocab   map[string]int
	idf     []float64
	vectors [][]float64 // unit-normalized, parallel to chunks
}

type chunk struct {
	text   string
	source string
}

// IndexConfig controls chunking.
type IndexConfig struct {
	ChunkSize    int
	ChunkOverlap int
}

// DefaultIndexConfig mirrors the splitter settings the policy corpus was
// tuned against.
func DefaultIndexConfig() IndexConfig {
	return IndexConfig{ChunkSize: 1000, ChunkOverlap: 200}
}

// #endregion index

// #region constructor

// NewIndex chunks the documents and builds tf-idf vectors.
func NewIndex(docs []Document, cfg IndexConfig) *Index {
	idx := &Index{vocab: make(map[string]int)}

	for _, doc := range docs {
		for _, c := range splitDocument(doc.Content, cfg.ChunkSize, cfg.ChunkOverlap) {
			idx.chunks = append(idx.chunks, chunk{text: c, source: doc.Name})
		}
	}

	// Vocabulary and document frequencies.
	df := make(map[string]int)
	chunkTokens := make([][]string, len(idx.chunks))
	for i, c := range idx.chunks {
		toks := tokenize(c.text)
		chunkTokens[i] = toks
		seen := make(map[string]bool, len(toks))
		for _, t := range toks {
			if !seen[t] {
				seen[t] = true
				df[t]++
			}
			if _, ok := idx.vocab[t]; !ok {
				idx.vocab[t] = len(idx.vocab)
			}
		}
	}

	n := float64(len(idx.chunks))
	idx.idf = make([]float64, len(idx.vocab))
	for term, id := range idx.vocab {
		idx.idf[id] = math.Log((n+1)/(float64(df[term])+1)) + 1
	}

	idx.vectors = make([][]float64, len(idx.chunks))
	for i, toks := range chunkTokens {
		idx.vectors[i] = idx.vectorize(toks)
	}

	return idx
}

// LoadDir indexes every .md file in dir plus any extra documents.
func LoadDir(dir string, cfg IndexConfig, extra ...Document) (*Index, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read policy dir %s: %w", dir, err)
	}
	var docs []Document
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		content, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read policy file %s: %w", e.Name(), err)
		}
		docs = append(docs, Document{Name: e.Name(), Content: string(content)})
	}
	docs = append(docs, extra...)
	if len(docs) == 0 {
		return nil, fmt.Errorf("no policy documents found in %s", dir)
	}
	return NewIndex(docs, cfg), nil
}

// #endregion constructor

// #region query

// Query returns the k most similar passages ranked by cosine similarity.
// Passages with zero similarity are dropped.
func (x *Index) Query(text string, k int) ([]Passage, error) {
	if k <= 0 || len(x.chunks) == 0 {
		return nil, nil
	}
	qv := x.vectorize(tokenize(text))
	if qv == nil {
		return nil, nil
	}

	type scored struct {
		i     int
		score float64
	}
	var hits []scored
	for i, v := range x.vectors {
		if v == nil {
			continue
		}
		// Vectors are unit-normalized; the dot product is the cosine.
		if s := floats.Dot(qv, v); s > 0 {
			hits = append(hits, scored{i: i, score: s})
		}
	}
	sort.SliceStable(hits, func(a, b int) bool { return hits[a].score > hits[b].score })
	if len(hits) > k {
		hits = hits[:k]
	}

	out := make([]Passage, len(hits))
	for i, h := range hits {
		out[i] = Passage{
			Text:   x.chunks[h.i].text,
			Source: x.chunks[h.i].source,
			Score:  h.score,
		}
	}
	return out, nil
}

// vectorize builds a unit-normalized tf-idf vector over the index vocabulary.
// Returns nil when no token is in-vocabulary.
func (x *Index) vectorize(tokens []string) []float64 {
	v := make([]float64, len(x.vocab))
	any := false
	for _, t := range tokens {
		if id, ok := x.vocab[t]; ok {
			v[id] += x.idf[id]
			any = true
		}
	}
	if !any {
		return nil
	}
	if norm := floats.Norm(v, 2); norm > 0 {
		floats.Scale(1/norm, v)
	}
	return v
}

// #endregion query

// #region format

// FormatContext renders passages as a labeled context block for prompts,
// matching the "[Source: x]" layout the role prompts expect.
func FormatContext(passages []Passage) string {
	if len(passages) == 0 {
		return NoContext
	}
	parts := make([]string, len(passages))
	for i, p := range passages {
		parts[i] = fmt.Sprintf("[Source: %s]\n%s\n", p.Source, p.Text)
	}
	return strings.Join(parts, "\n---\n")
}

// #endregion format
