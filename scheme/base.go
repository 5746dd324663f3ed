package scheme

import (
	"sort"

	"github.com/giorgiosiniscalchi/clusion-sse-benchmark/token"
)

// base holds the key lifecycle and counters shared by all constructions.
type base struct {
	key     *token.SecretKey
	deriver *token.PRFDeriver

	keywordCount  int
	documentCount int
	indexSize     uint64
}

func (b *base) Setup() ([]byte, error) {
	key, err := token.GenerateKey()
	if err != nil {
		return nil, err
	}
	if err := b.installKey(key); err != nil {
		key.Zero()
		return nil, err
	}
	return key.Bytes(), nil
}

func (b *base) SetupWithKey(raw []byte) error {
	key, err := token.NewSecretKey(raw)
	if err != nil {
		return err
	}
	if err := b.installKey(key); err != nil {
		key.Zero()
		return err
	}
	return nil
}

// installKey replaces the current key, erasing any previous material.
func (b *base) installKey(key *token.SecretKey) error {
	deriver, err := token.NewPRFDeriver(key)
	if err != nil {
		return err
	}
	if b.key != nil {
		b.key.Zero()
	}
	b.key = key
	b.deriver = deriver
	return nil
}

// ensureSetup generates a key on first use so BuildIndex can run without an
// explicit Setup call.
func (b *base) ensureSetup() error {
	if b.key != nil {
		return nil
	}
	_, err := b.Setup()
	return err
}

func (b *base) KeywordCount() int  { return b.keywordCount }
func (b *base) DocumentCount() int { return b.documentCount }

func (b *base) IndexSizeBytes() uint64 { return b.indexSize }

func (b *base) resetCounters() {
	b.keywordCount = 0
	b.documentCount = 0
	b.indexSize = 0
}

// closeKey erases and drops the key material.
func (b *base) closeKey() {
	if b.key != nil {
		b.key.Zero()
		b.key = nil
	}
	b.deriver = nil
}

// uniqueSorted deduplicates and sorts document IDs so stored posting order,
// and therefore search output, is deterministic across rebuilds.
func uniqueSorted(docIDs []string) []string {
	out := make([]string, 0, len(docIDs))
	seen := make(map[string]struct{}, len(docIDs))
	for _, id := range docIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// entrySize accounts a token-keyed list of string entries toward the index
// size estimate.
func entrySize(key token.Token, values []string) uint64 {
	size := uint64(len(key))
	for _, v := range values {
		size += uint64(len(v))
	}
	return size
}
