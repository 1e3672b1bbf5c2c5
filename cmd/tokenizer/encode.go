package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var (
	encInput    string
	encFormat   string
	encOutput   string
	encSpecials bool
)

var encodeCmd = &cobra.Command{
	Use:   "encode [text]",
	Short: "Encode text to token IDs using a loaded tokenizer definition",
	Long: `Encode text into token IDs against a tokenizer definition loaded with
--input/--format (see "tokenizer info").

If no text is provided as an argument, reads from stdin.`,
	Example: `  # Encode using a SentencePiece model, auto-detected
  tokenizer encode --input model.proto "Hello, world!"

  # Encode from stdin, JSON output
  echo "Hello" | tokenizer encode --input model.proto --output json`,
	RunE: runEncode,
}

func init() {
	encodeCmd.Flags().StringVarP(&encInput, "input", "i", "", "path to the definition file (default: stdin, only when text is an argument)")
	encodeCmd.Flags().StringVarP(&encFormat, "format", "f", "auto", "source format: auto, native, sentencepiece, tokenizers, tiktoken, tekken")
	encodeCmd.Flags().StringVarP(&encOutput, "output", "o", "space", "output format: space, newline, json")
	encodeCmd.Flags().BoolVar(&encSpecials, "specials", true, "recognize and emit special-token spans")
	rootCmd.AddCommand(encodeCmd)
}

func runEncode(_ *cobra.Command, args []string) error {
	facade, warnings, err := loadFacade(encInput, encFormat)
	if err != nil {
		return fmt.Errorf("load definition: %w", err)
	}
	printWarnings(warnings)

	var text string
	if len(args) > 0 {
		text = strings.Join(args, " ")
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = string(data)
	}

	ids, err := facade.Encode(text, encSpecials)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	switch encOutput {
	case "json":
		data, err := json.Marshal(ids)
		if err != nil {
			return fmt.Errorf("marshal tokens: %w", err)
		}
		fmt.Println(string(data))
	case "newline":
		for _, id := range ids {
			fmt.Println(id)
		}
	case "space":
		strs := make([]string, len(ids))
		for i, id := range ids {
			strs[i] = strconv.FormatUint(uint64(id), 10)
		}
		fmt.Println(strings.Join(strs, " "))
	default:
		return fmt.Errorf("unknown output format: %s", encOutput)
	}

	return nil
}
