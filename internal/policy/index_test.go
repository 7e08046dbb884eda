package policy

// #region imports
import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// #endregion imports

// #region fixtures

var testDocs = []Document{
	{Name: "returns.md", Content: "Devices may be returned within 30 days. Overheating devices are replaced same-day with a prepaid return label."},
	{Name: "benefits.md", Content: "Care Plus covers accidental damage, battery replacement, and priority support for subscribers."},
	{Name: "billing.md", Content: "Monthly charges appear on the statement. Taxes and regulatory fees explain differences between charged and advertised amounts."},
}

// #endregion fixtures

// #region query-tests

func TestQueryRanksRelevantChunkFirst(t *testing.T) {
	idx := NewIndex(testDocs, DefaultIndexConfig())

	hits, err := idx.Query("why was I charged extra fees on my statement", 2)
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Equal(t, "billing.md", hits[0].Source)
	assert.Greater(t, hits[0].Score, 0.0)
}

func TestQueryDropsZeroScores(t *testing.T) {
	idx := NewIndex(testDocs, DefaultIndexConfig())

	hits, err := idx.Query("zebra quantum spaceship", 3)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestQueryRespectsK(t *testing.T) {
	idx := NewIndex(testDocs, DefaultIndexConfig())

	hits, err := idx.Query("devices replacement battery charges", 1)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(hits), 1)

	none, err := idx.Query("devices", 0)
	require.NoError(t, err)
	assert.Nil(t, none)
}

// #endregion query-tests

// #region chunker-tests

func TestSplitDocumentRespectsSizeAndOverlap(t *testing.T) {
	para := strings.Repeat("alpha beta gamma delta. ", 20) // ~480 chars
	text := para + "\n\n" + para + "\n\n" + para

	chunks := splitDocument(text, 600, 100)
	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 600+100, "chunk must stay near the configured size")
		assert.NotEmpty(t, strings.TrimSpace(c))
	}
}

func TestSplitDocumentSmallInputSingleChunk(t *testing.T) {
	chunks := splitDocument("tiny document", 1000, 200)
	require.Len(t, chunks, 1)
	assert.Equal(t, "tiny document", chunks[0])
}

// #endregion chunker-tests

// #region loaddir-tests

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("return policy text"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skip.txt"), []byte("ignored"), 0o644))

	idx, err := LoadDir(dir, DefaultIndexConfig(), Document{Name: "extra", Content: "playbook negotiation script"})
	require.NoError(t, err)

	hits, err := idx.Query("negotiation playbook", 1)
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Equal(t, "extra", hits[0].Source)
}

func TestLoadDirEmpty(t *testing.T) {
	_, err := LoadDir(t.TempDir(), DefaultIndexConfig())
	assert.ErrorContains(t, err, "no policy documents")
}

// #endregion loaddir-tests

// #region format-tests

func TestFormatContext(t *testing.T) {
	out := FormatContext([]Passage{
		{Text: "first passage", Source: "a.md"},
		{Text: "second passage", Source: "b.md"},
	})
	assert.Contains(t, out, "[Source: a.md]\nfirst passage")
	assert.Contains(t, out, "---")
	assert.Contains(t, out, "[Source: b.md]\nsecond passage")

	assert.Equal(t, NoContext, FormatContext(nil))
}

// #endregion format-tests
