package main

import (
	"fmt"

	"github.com/spf13/cobra"

	tokenizer "github.com/agentstation/tokenizer"
)

var (
	infoInput  string
	infoFormat string
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Display information about a loaded tokenizer definition",
	Long: `Load a tokenizer definition (native binary, SentencePiece, Tokenizers,
Tiktoken, or Tekken) and print its vocabulary size, special tokens, and
configured encoding mode.

With no --input, reads from stdin. Format auto-detection is used unless
--format names an explicit source format.`,
	Example: `  # Inspect the native binary format
  tokenizer info --input model.tkzd

  # Inspect a HuggingFace tokenizer.json, bypassing auto-detect
  tokenizer info --input tokenizer.json --format tokenizers`,
	RunE: runInfo,
}

func init() {
	infoCmd.Flags().StringVarP(&infoInput, "input", "i", "", "path to the definition file (default: stdin)")
	infoCmd.Flags().StringVarP(&infoFormat, "format", "f", "auto", "source format: auto, native, sentencepiece, tokenizers, tiktoken, tekken")
	rootCmd.AddCommand(infoCmd)
}

func runInfo(_ *cobra.Command, _ []string) error {
	facade, warnings, err := loadFacade(infoInput, infoFormat)
	if err != nil {
		return fmt.Errorf("load definition: %w", err)
	}
	printWarnings(warnings)

	def := facade.Definition()
	cfg := facade.Config()

	fmt.Println("Tokenizer Definition")
	fmt.Println("====================")
	fmt.Println()
	fmt.Printf("Vocabulary:       %d tokens\n", len(def.Vocabulary()))
	fmt.Printf("Special tokens:   %d\n", len(def.Specials()))
	fmt.Printf("Mode:             %s\n", modeName(cfg.Mode.Kind))
	fmt.Printf("Byte fallback:    %t\n", cfg.Fallback.ByteFallback)
	fmt.Printf("Templates:        %t\n", cfg.Templates.Enable)

	return nil
}

func modeName(kind tokenizer.ModeKind) string {
	switch kind {
	case tokenizer.ModeBytePair:
		return "bytepair"
	case tokenizer.ModeUnigram:
		return "unigram"
	case tokenizer.ModeWordPiece:
		return "wordpiece"
	default:
		return "unknown"
	}
}
