package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/agentstation/tokenizer/llama3"
)

func main() {
	var (
		text        = flag.String("text", "", "Text to tokenize")
		decode      = flag.String("decode", "", "Comma-separated token IDs to decode")
		interactive = flag.Bool("i", false, "Interactive mode")
		noBOS       = flag.Bool("no-bos", false, "Don't add beginning-of-text token")
		noEOS       = flag.Bool("no-eos", false, "Don't add end-of-text token")
		verbose     = flag.Bool("v", false, "Verbose output")
	)
	flag.Parse()

	// Create tokenizer
	tok, err := llama3.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating tokenizer: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		fmt.Printf("Tokenizer loaded. Vocabulary size: %d\n", tok.VocabSize())
	}

	// Decode mode
	if *decode != "" {
		tokens, err := parseTokens(*decode)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing token IDs: %v\n", err)
			os.Exit(1)
		}
		decoded, err := tok.Decode(tokens)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error decoding: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(decoded)
		return
	}

	// Interactive mode
	if *interactive {
		runInteractive(tok, *noBOS, *noEOS, *verbose)
		return
	}

	// Single text mode
	if *text != "" {
		opts := &llama3.EncodeOptions{
			BOS: !*noBOS,
			EOS: !*noEOS,
		}
		tokens, err := tok.Encode(*text, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding: %v\n", err)
			os.Exit(1)
		}

		if *verbose {
			decoded, _ := tok.Decode(tokens)
			fmt.Printf("Text: %s\n", *text)
			fmt.Printf("Tokens (%d): %v\n", len(tokens), tokens)
			fmt.Printf("Decoded: %s\n", decoded)
		} else {
			fmt.Println(formatTokens(tokens))
		}
		return
	}

	// Show usage
	flag.Usage()
}

func runInteractive(tok *llama3.Tokenizer, noBOS, noEOS, verbose bool) {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("Llama 3 Tokenizer Interactive Mode")
	fmt.Println("Type 'quit' to exit")
	fmt.Println()

	opts := &llama3.EncodeOptions{
		BOS: !noBOS,
		EOS: !noEOS,
	}

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		line := scanner.Text()
		if line == "quit" || line == "exit" {
			break
		}

		// Check for decode command
		if strings.HasPrefix(line, "decode ") {
			tokenStr := strings.TrimPrefix(line, "decode ")
			tokens, err := parseTokens(tokenStr)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			decoded, err := tok.Decode(tokens)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			fmt.Printf("Decoded: %s\n", decoded)
			continue
		}

		// Encode the text
		tokens, err := tok.Encode(line, opts)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}

		if verbose {
			decoded, _ := tok.Decode(tokens)
			fmt.Printf("Tokens (%d): %v\n", len(tokens), tokens)
			fmt.Printf("Decoded: %s\n", decoded)
		} else {
			fmt.Println(formatTokens(tokens))
		}
	}
}

func parseTokens(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) == 1 {
		parts = strings.Fields(s)
	}
	tokens := make([]int, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		token, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid token ID %q: %w", part, err)
		}
		tokens = append(tokens, token)
	}

	return tokens, nil
}

func formatTokens(tokens []int) string {
	strs := make([]string, len(tokens))
	for i, t := range tokens {
		strs[i] = strconv.Itoa(t)
	}
	return strings.Join(strs, ", ")
}
