package llama3

import (
	"fmt"
	"strings"
)

const (
	beginOfTextToken = "<|begin_of_text|>"
	endOfTextToken   = "<|end_of_text|>"
)

// getDefaultSpecialTokens returns all Llama 3 special tokens in order.
func getDefaultSpecialTokens() []string {
	tokens := []string{
		"<|begin_of_text|>",
		"<|end_of_text|>",
		"<|reserved_special_token_0|>",
		"<|reserved_special_token_1|>",
		"<|finetune_right_pad_id|>",
		"<|reserved_special_token_2|>",
		"<|start_header_id|>",
		"<|end_header_id|>",
		"<|eom_id|>",
		"<|eot_id|>",
		"<|python_tag|>",
	}
	
	// Add reserved special tokens 3-247
	for i := 3; i <= 247; i++ {
		tokens = append(tokens, fmt.Sprintf("<|reserved_special_token_%d|>", i))
	}
	
	return tokens
}

// isSpecialToken checks if a string is in the special token format.
func isSpecialToken(token string) bool {
	return strings.HasPrefix(token, "<|") && strings.HasSuffix(token, "|>")
}