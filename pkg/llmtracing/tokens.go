package llmtracing

import (
	"sync"

	"github.com/effective-security/xlog"
	"github.com/tiktoken-go/tokenizer"
)

// TokenCounter estimates the number of tokens of texts.
type TokenCounter interface {
	CountMessages(texts []string) int
}

// DefaultTokenCounter estimates tokens with the cl100k_base encoding,
// the providers do not publish their tokenizers.
var DefaultTokenCounter TokenCounter = &tiktokenCounter{}

type tiktokenCounter struct {
	once  sync.Once
	codec tokenizer.Codec
	err   error
}

func (c *tiktokenCounter) getCodec() (tokenizer.Codec, error) {
	c.once.Do(func() {
		c.codec, c.err = tokenizer.Get(tokenizer.Cl100kBase)
		if c.err != nil {
			logger.KV(xlog.WARNING, "reason", "tokenizer", "err", c.err.Error())
		}
	})
	return c.codec, c.err
}

// CountMessages returns the sum of tokens of the texts.
// Falls back to 4 characters per token when the encoding is not available.
func (c *tiktokenCounter) CountMessages(texts []string) int {
	codec, err := c.getCodec()
	total := 0
	for _, text := range texts {
		if err != nil {
			total += (len(text) + 3) / 4
			continue
		}
		ids, _, _ := codec.Encode(text)
		total += len(ids)
	}
	return total
}
