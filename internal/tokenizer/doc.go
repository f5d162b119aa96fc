// Package tokenizer provides a whitespace tokenizer with a growable
// vocabulary. It is a size estimate for downstream models, not a subword
// tokenizer.
package tokenizer
