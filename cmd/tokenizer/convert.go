package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	tokenizer "github.com/agentstation/tokenizer"
)

var (
	convInput  string
	convFormat string
	convOutput string
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a foreign tokenizer format into the native binary format",
	Long: `Read a SentencePiece, HuggingFace Tokenizers, Tiktoken, or Tekken
tokenizer file and write it back out in this module's compact native
binary format (magic "TKZD").

Any feature the source format uses that has no native equivalent is
dropped rather than failing the conversion outright. When --from names
the format, each dropped feature is reported as a warning on stderr;
with auto-detection, no warnings are printed.`,
	Example: `  # Convert a SentencePiece model to the native format
  tokenizer convert --input model.proto --from sentencepiece --output model.tkzd

  # Auto-detect the source format
  tokenizer convert --input tokenizer.json --output model.tkzd`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&convInput, "input", "i", "", "path to the foreign-format definition file (default: stdin)")
	convertCmd.Flags().StringVarP(&convFormat, "from", "f", "auto", "source format: auto, sentencepiece, tokenizers, tiktoken, tekken")
	convertCmd.Flags().StringVarP(&convOutput, "output", "o", "", "destination for the native binary output (default: stdout)")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(_ *cobra.Command, _ []string) error {
	data, err := readInput(convInput)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	var def *tokenizer.Definition
	var warnings []tokenizer.ConversionWarning
	if convFormat == "" || convFormat == "auto" {
		def, err = tokenizer.DefinitionFromBytes(data)
	} else {
		def, warnings, err = convertNamed(convFormat, data)
	}
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	printWarnings(warnings)

	out := tokenizer.DefinitionToBytes(def)

	if convOutput == "" || convOutput == "-" {
		_, err = os.Stdout.Write(out)
		return err
	}
	return os.WriteFile(convOutput, out, 0o644)
}
