package tokenizer

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/docchunk-mcp/pkg/types"
)

func TestNew(t *testing.T) {
	tok := New(DefaultConfig())

	assert.Equal(t, 4, tok.VocabSize())
	assert.Equal(t, "<pad> <unk> <s> </s>", tok.Decode([]int{PadID, UnkID, BosID, EosID}))
}

func TestEncode(t *testing.T) {
	tok := New(DefaultConfig())
	helloID, err := tok.AddToken("hello")
	require.NoError(t, err)
	assert.Equal(t, 4, helloID)

	tokens, err := tok.Encode("  hello\tworld\n")
	require.NoError(t, err)

	assert.Equal(t, []Token{
		{ID: helloID, Text: "hello", Start: 2, End: 7},
		{ID: UnkID, Text: "world", Start: 8, End: 13},
	}, tokens)
}

func TestEncode_RepeatedWordsGetOwnSpans(t *testing.T) {
	tokens, err := New(DefaultConfig()).Encode("ab ab ab")
	require.NoError(t, err)

	require.Len(t, tokens, 3)
	assert.Equal(t, 0, tokens[0].Start)
	assert.Equal(t, 3, tokens[1].Start)
	assert.Equal(t, 6, tokens[2].Start)
}

func TestEncode_Empty(t *testing.T) {
	tokens, err := New(DefaultConfig()).Encode("")
	require.NoError(t, err)
	assert.Empty(t, tokens)
}

func TestEncode_MultibyteSpans(t *testing.T) {
	text := "héllo wörld"
	tokens, err := New(DefaultConfig()).Encode(text)
	require.NoError(t, err)

	require.Len(t, tokens, 2)
	for _, tk := range tokens {
		assert.Equal(t, tk.Text, text[tk.Start:tk.End])
	}
}

func TestEncode_Truncates(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxLength = 3

	tokens, err := New(cfg).Encode("a b c d e")
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, "c", tokens[2].Text)

	tokens, err = New(cfg).Encode("a b c")
	require.NoError(t, err)
	assert.Len(t, tokens, 3)
}

func TestEncode_InvalidUTF8(t *testing.T) {
	_, err := New(DefaultConfig()).Encode("bad \xff")
	assert.ErrorIs(t, err, types.ErrInvalidInput)
}

func TestDecode_SkipsUnknownIDs(t *testing.T) {
	tok := New(DefaultConfig())
	id, err := tok.AddToken("word")
	require.NoError(t, err)

	assert.Equal(t, "<s> word </s>", tok.Decode([]int{BosID, id, 999, -1, EosID}))
	assert.Equal(t, "", tok.Decode(nil))
}

func TestAddToken(t *testing.T) {
	cfg := DefaultConfig()
	cfg.VocabSize = 5
	tok := New(cfg)

	id, err := tok.AddToken("first")
	require.NoError(t, err)
	assert.Equal(t, 4, id)

	again, err := tok.AddToken("first")
	require.NoError(t, err)
	assert.Equal(t, id, again)

	_, err = tok.AddToken("second")
	assert.ErrorIs(t, err, ErrVocabFull)
	assert.Equal(t, 5, tok.VocabSize())
}

func TestAddToken_Concurrent(t *testing.T) {
	tok := New(DefaultConfig())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := tok.AddToken(fmt.Sprintf("w%d", i%10))
			assert.NoError(t, err)
			_, err = tok.Encode("w1 w2 w3")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 14, tok.VocabSize())
}

func TestEncodeBatch(t *testing.T) {
	tok := New(DefaultConfig())
	texts := []string{"one two", "", "three four five"}

	results, err := tok.EncodeBatch(texts)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, text := range texts {
		want, err := tok.Encode(text)
		require.NoError(t, err)
		assert.Equal(t, want, results[i])
	}

	_, err = tok.EncodeBatch([]string{"fine", "\xc3\x28"})
	assert.ErrorIs(t, err, types.ErrInvalidInput)
}

func TestCountTokens(t *testing.T) {
	assert.Equal(t, 0, CountTokens(""))
	assert.Equal(t, 3, CountTokens(" one\ttwo\nthree "))
	assert.Equal(t, 1000, CountTokens(strings.Repeat("w ", 1000)))
}
