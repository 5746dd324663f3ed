// Package dataset loads document collections and turns them into the
// keyword index the encrypted schemes build over.
//
// Two on-disk formats are supported: a JSON document list (each entry
// carrying an ID and its keyword set) and a directory of plain-text
// files from which keywords are extracted. A pre-built keyword index
// (keyword to document ID list) can also be loaded directly.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/giorgiosiniscalchi/clusion-sse-benchmark/scheme"
)

// Document is a single dataset entry: an identifier plus the keywords
// it should be retrievable under.
type Document struct {
	ID       string   `json:"id"`
	Keywords []string `json:"keywords"`
}

// reservedIDPrefix guards against document IDs that would collide with
// the padding sentinels response-hiding schemes inject into results.
const reservedIDPrefix = "pad::"

// LoadDocuments reads a JSON array of documents from path.
func LoadDocuments(path string) ([]Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: read %s: %w", path, err)
	}

	var docs []Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("dataset: parse %s: %w", path, err)
	}

	for i, doc := range docs {
		if doc.ID == "" {
			return nil, fmt.Errorf("dataset: document %d has empty id", i)
		}
		if strings.HasPrefix(doc.ID, reservedIDPrefix) {
			return nil, fmt.Errorf("dataset: document id %q uses reserved prefix %q", doc.ID, reservedIDPrefix)
		}
	}

	return docs, nil
}

// LoadKeywordIndex reads a pre-built keyword index from a JSON object
// mapping each keyword to the list of document IDs containing it.
func LoadKeywordIndex(path string) (scheme.KeywordIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: read %s: %w", path, err)
	}

	var ki scheme.KeywordIndex
	if err := json.Unmarshal(data, &ki); err != nil {
		return nil, fmt.Errorf("dataset: parse %s: %w", path, err)
	}

	if err := Validate(ki); err != nil {
		return nil, err
	}

	return ki, nil
}

// BuildKeywordIndex inverts a document list into a keyword index. The
// posting list of every keyword is sorted and deduplicated so repeated
// builds over the same documents produce identical indexes.
func BuildKeywordIndex(docs []Document) (scheme.KeywordIndex, error) {
	ki := make(scheme.KeywordIndex)
	seen := make(map[string]map[string]struct{})

	for _, doc := range docs {
		for _, kw := range doc.Keywords {
			if kw == "" {
				return nil, fmt.Errorf("dataset: document %q has an empty keyword", doc.ID)
			}
			if seen[kw] == nil {
				seen[kw] = make(map[string]struct{})
			}
			if _, dup := seen[kw][doc.ID]; dup {
				continue
			}
			seen[kw][doc.ID] = struct{}{}
			ki[kw] = append(ki[kw], doc.ID)
		}
	}

	for kw := range ki {
		sort.Strings(ki[kw])
	}

	if err := Validate(ki); err != nil {
		return nil, err
	}

	return ki, nil
}

// Load reads a JSON document dataset and returns its keyword index.
func Load(path string) (scheme.KeywordIndex, error) {
	docs, err := LoadDocuments(path)
	if err != nil {
		return nil, err
	}
	return BuildKeywordIndex(docs)
}

// LoadTextDirectory ingests every .txt file under dir, extracting
// keywords from the file contents with the given extractor. Files are
// read concurrently; the resulting index is deterministic regardless
// of completion order. The document ID is the file name without its
// extension.
func LoadTextDirectory(dir string, extractor *Extractor) (scheme.KeywordIndex, error) {
	if extractor == nil {
		extractor = NewExtractor()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("dataset: read dir %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("dataset: no .txt files in %s", dir)
	}

	var (
		mu   sync.Mutex
		docs = make([]Document, 0, len(paths))
	)

	g := new(errgroup.Group)
	g.SetLimit(runtime.NumCPU())

	for _, path := range paths {
		path := path
		g.Go(func() error {
			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("dataset: read %s: %w", path, err)
			}

			id := strings.TrimSuffix(filepath.Base(path), ".txt")
			doc := Document{
				ID:       id,
				Keywords: extractor.Extract(string(content)),
			}

			mu.Lock()
			docs = append(docs, doc)
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })

	return BuildKeywordIndex(docs)
}

// Validate checks the structural invariants every scheme relies on:
// no empty keywords, no empty posting lists, no document IDs that
// collide with padding sentinels.
func Validate(ki scheme.KeywordIndex) error {
	for kw, docIDs := range ki {
		if kw == "" {
			return fmt.Errorf("dataset: index contains an empty keyword")
		}
		if len(docIDs) == 0 {
			return fmt.Errorf("dataset: keyword %q has no documents", kw)
		}
		for _, id := range docIDs {
			if id == "" {
				return fmt.Errorf("dataset: keyword %q references an empty document id", kw)
			}
			if strings.HasPrefix(id, reservedIDPrefix) {
				return fmt.Errorf("dataset: keyword %q references reserved document id %q", kw, id)
			}
		}
	}
	return nil
}

// Statistics summarizes the shape of a keyword index.
type Statistics struct {
	DocumentCount      int     `json:"documentCount"`
	KeywordCount       int     `json:"keywordCount"`
	TotalPostings      int     `json:"totalPostings"`
	AvgDocsPerKeyword  float64 `json:"avgDocsPerKeyword"`
	MaxPostingListSize int     `json:"maxPostingListSize"`
}

// Stats computes summary statistics for a keyword index.
func Stats(ki scheme.KeywordIndex) Statistics {
	s := Statistics{
		DocumentCount: ki.DocumentCount(),
		KeywordCount:  len(ki),
	}
	for _, docIDs := range ki {
		s.TotalPostings += len(docIDs)
		if len(docIDs) > s.MaxPostingListSize {
			s.MaxPostingListSize = len(docIDs)
		}
	}
	if s.KeywordCount > 0 {
		s.AvgDocsPerKeyword = float64(s.TotalPostings) / float64(s.KeywordCount)
	}
	return s
}
