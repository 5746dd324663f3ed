package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giorgiosiniscalchi/clusion-sse-benchmark/scheme"
)

func TestLoadDocuments(t *testing.T) {
	t.Run("valid dataset", func(t *testing.T) {
		path := writeFile(t, "dataset.json", `[
			{"id": "doc1", "keywords": ["diabetes", "insulin"]},
			{"id": "doc2", "keywords": ["diabetes"]}
		]`)

		docs, err := LoadDocuments(path)
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "doc1", docs[0].ID)
		assert.Equal(t, []string{"diabetes", "insulin"}, docs[0].Keywords)
	})

	t.Run("empty id rejected", func(t *testing.T) {
		path := writeFile(t, "bad.json", `[{"id": "", "keywords": ["x"]}]`)

		_, err := LoadDocuments(path)
		require.Error(t, err)
	})

	t.Run("reserved id prefix rejected", func(t *testing.T) {
		path := writeFile(t, "pad.json", `[{"id": "pad::1", "keywords": ["x"]}]`)

		_, err := LoadDocuments(path)
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadDocuments(filepath.Join(t.TempDir(), "nope.json"))
		require.Error(t, err)
	})
}

func TestBuildKeywordIndex(t *testing.T) {
	t.Run("inverts and sorts postings", func(t *testing.T) {
		docs := []Document{
			{ID: "b", Keywords: []string{"diabetes"}},
			{ID: "a", Keywords: []string{"diabetes", "insulin"}},
		}

		ki, err := BuildKeywordIndex(docs)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, ki["diabetes"])
		assert.Equal(t, []string{"a"}, ki["insulin"])
	})

	t.Run("deduplicates repeated keywords", func(t *testing.T) {
		docs := []Document{
			{ID: "a", Keywords: []string{"flu", "flu"}},
		}

		ki, err := BuildKeywordIndex(docs)
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, ki["flu"])
	})

	t.Run("empty keyword rejected", func(t *testing.T) {
		docs := []Document{{ID: "a", Keywords: []string{""}}}

		_, err := BuildKeywordIndex(docs)
		require.Error(t, err)
	})
}

func TestLoadKeywordIndex(t *testing.T) {
	t.Run("valid index", func(t *testing.T) {
		path := writeFile(t, "index.json", `{"diabetes": ["doc1", "doc2"], "insulin": ["doc1"]}`)

		ki, err := LoadKeywordIndex(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"doc1", "doc2"}, ki["diabetes"])
	})

	t.Run("empty posting list rejected", func(t *testing.T) {
		path := writeFile(t, "empty.json", `{"diabetes": []}`)

		_, err := LoadKeywordIndex(path)
		require.Error(t, err)
	})
}

func TestLoadTextDirectory(t *testing.T) {
	t.Run("extracts keywords from txt files", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "doc1.txt"), []byte("Patient with diabetes and insulin therapy"), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "doc2.txt"), []byte("Diabetes follow-up"), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("ignored"), 0o600))

		ki, err := LoadTextDirectory(dir, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"doc1", "doc2"}, ki["diabetes"])
		assert.Equal(t, []string{"doc1"}, ki["insulin"])
		assert.NotContains(t, ki, "with")
		assert.NotContains(t, ki, "ignored")
	})

	t.Run("empty directory fails", func(t *testing.T) {
		_, err := LoadTextDirectory(t.TempDir(), nil)
		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	t.Run("accepts well-formed index", func(t *testing.T) {
		ki := scheme.KeywordIndex{"flu": {"a"}}
		require.NoError(t, Validate(ki))
	})

	t.Run("rejects reserved document id", func(t *testing.T) {
		ki := scheme.KeywordIndex{"flu": {"pad::0"}}
		require.Error(t, Validate(ki))
	})
}

func TestExtractor(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		e := NewExtractor()
		kws := e.Extract("The patient has Type-2 Diabetes; insulin prescribed.")
		assert.Equal(t, []string{"diabetes", "insulin", "patient", "prescribed", "type"}, kws)
	})

	t.Run("min length", func(t *testing.T) {
		e := NewExtractor(WithMinLength(8))
		kws := e.Extract("flu diabetes headache")
		assert.Equal(t, []string{"diabetes", "headache"}, kws)
	})

	t.Run("stopwords kept when disabled", func(t *testing.T) {
		e := NewExtractor(WithStopwords(false))
		kws := e.Extract("the flu")
		assert.Equal(t, []string{"flu", "the"}, kws)
	})
}

func TestStats(t *testing.T) {
	ki := scheme.KeywordIndex{
		"diabetes": {"a", "b", "c"},
		"insulin":  {"a"},
	}

	s := Stats(ki)
	assert.Equal(t, 3, s.DocumentCount)
	assert.Equal(t, 2, s.KeywordCount)
	assert.Equal(t, 4, s.TotalPostings)
	assert.Equal(t, 3, s.MaxPostingListSize)
	assert.InDelta(t, 2.0, s.AvgDocsPerKeyword, 1e-9)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
