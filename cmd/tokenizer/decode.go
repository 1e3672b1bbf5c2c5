package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	decInput    string
	decFormat   string
	decSpecials bool
)

var decodeCmd = &cobra.Command{
	Use:   "decode [token_ids...]",
	Short: "Decode token IDs to text using a loaded tokenizer definition",
	Long: `Decode token IDs back to text against a tokenizer definition loaded with
--input/--format (see "tokenizer info").

Token IDs can be given as arguments or piped from stdin, whitespace
separated.`,
	Example: `  # Decode from arguments
  tokenizer decode --input model.proto 1 2 3

  # Round-trip through encode
  tokenizer encode --input model.proto "hi" | tokenizer decode --input model.proto`,
	RunE: runDecode,
}

func init() {
	decodeCmd.Flags().StringVarP(&decInput, "input", "i", "", "path to the definition file (default: stdin, only when IDs are arguments)")
	decodeCmd.Flags().StringVarP(&decFormat, "format", "f", "auto", "source format: auto, native, sentencepiece, tokenizers, tiktoken, tekken")
	decodeCmd.Flags().BoolVar(&decSpecials, "specials", true, "render special-token spans back to their token text")
	rootCmd.AddCommand(decodeCmd)
}

func runDecode(_ *cobra.Command, args []string) error {
	facade, warnings, err := loadFacade(decInput, decFormat)
	if err != nil {
		return fmt.Errorf("load definition: %w", err)
	}
	printWarnings(warnings)

	var ids []uint32
	if len(args) > 0 {
		for _, arg := range args {
			id, err := strconv.ParseUint(arg, 10, 32)
			if err != nil {
				return fmt.Errorf("invalid token ID %q: %w", arg, err)
			}
			ids = append(ids, uint32(id))
		}
	} else {
		scanner := bufio.NewScanner(os.Stdin)
		scanner.Split(bufio.ScanWords)
		for scanner.Scan() {
			id, err := strconv.ParseUint(scanner.Text(), 10, 32)
			if err != nil {
				return fmt.Errorf("invalid token ID %q: %w", scanner.Text(), err)
			}
			ids = append(ids, uint32(id))
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	}

	text, err := facade.Decode(ids, decSpecials)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	fmt.Print(string(text))
	return nil
}
