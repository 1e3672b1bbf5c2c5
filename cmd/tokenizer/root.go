package main

import (
	"fmt"

	"github.com/spf13/cobra"

	llama3cmd "github.com/agentstation/tokenizer/llama3/cmd/llama3"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "tokenizer",
	Short: "A multi-model tokenizer CLI tool",
	Long: `Tokenizer is a CLI tool for tokenizing text using various language models.

This tool provides a unified interface for working with different tokenizer
implementations. Each built-in tokenizer preset is available as a subcommand
with its own set of operations, and the top-level encode/decode/convert/info
commands operate on any definition loaded from a file (native binary,
SentencePiece, HuggingFace Tokenizers, Tiktoken, or Tekken).

Currently supported tokenizer presets:
  - llama3: Meta's Llama 3 tokenizer (128k vocabulary, byte-level BPE)

Generic operations, available against any loaded definition:
  - encode:  Convert text to token IDs
  - decode:  Convert token IDs back to text
  - convert: Re-serialize a foreign format as the native binary format
  - info:    Display tokenizer definition information`,
	Example: `  # Encode text with Llama 3
  tokenizer llama3 encode "Hello, world!"

  # Encode against any loaded definition
  tokenizer encode --input model.proto "Hello, world!"

  # Convert a SentencePiece model to the native binary format
  tokenizer convert --input model.proto --from sentencepiece --output model.tkzd

  # Get info about a loaded definition
  tokenizer info --input model.tkzd`,
	SilenceUsage: true,
}

// versionCmd represents the version command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tokenizer version %s\n", version)
		if commit != "none" {
			fmt.Printf("  commit:     %s\n", commit)
		}
		if buildDate != "unknown" {
			fmt.Printf("  built:      %s\n", buildDate)
		}
		if goVersion != "unknown" {
			fmt.Printf("  go version: %s\n", goVersion)
		}
	},
}

func init() {
	// Register commands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(llama3cmd.Command())

	// Future tokenizers can be added here:
	// rootCmd.AddCommand(gpt2cmd.Command())
	// rootCmd.AddCommand(bertcmd.Command())
}
