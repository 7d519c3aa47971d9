package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/example/starcosdriver/apdu"
	"github.com/example/starcosdriver/output"
	"github.com/example/starcosdriver/starcos"
)

var (
	version = "1.0.0"

	readerIndex int
	outputJSON  bool
	coldReset   bool
)

var rootCmd = &cobra.Command{
	Use:   "starcosctl",
	Short: "STARCOS SPK 2.3 card driver exerciser",
	Long: `starcosctl v` + version + `
Drives a STARCOS SPK 2.3 smart card through a PC/SC reader.

This tool supports:
  - Selecting files by file-id, AID, or full path
  - Creating the MF/DF/EF file system
  - Generating and installing RSA key pairs
  - Signing data (native or via INTERNAL AUTHENTICATE)
  - Erasing the card and reading its serial number
  - Running the built-in end-to-end scenario suite`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&readerIndex, "reader", "r", -1,
		"Reader index (use 'starcosctl readers' to see available readers)")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false,
		"Suppress status lines and the reader banner (results are still printed as tables; no JSON is produced)")
	rootCmd.PersistentFlags().BoolVar(&coldReset, "cold-reset", false,
		"Perform a cold reset (power cycle) before talking to the card")

	rootCmd.AddCommand(readersCmd)
	rootCmd.AddCommand(atrCmd)
	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(signCmd)
	rootCmd.AddCommand(keygenCmd)
	rootCmd.AddCommand(installKeyCmd)
	rootCmd.AddCommand(controlCmd)
	rootCmd.AddCommand(scenarioCmd)
}

var readersCmd = &cobra.Command{
	Use:   "readers",
	Short: "List available PC/SC readers",
	RunE: func(cmd *cobra.Command, args []string) error {
		readers, err := apdu.ListReaders()
		if err != nil {
			return fmt.Errorf("list readers: %w", err)
		}
		output.PrintReaderList(readers)
		return nil
	},
}

// connectAndMatch connects to the configured reader, resets it, checks
// the ATR against the STARCOS SPK 2.3 table, and returns a bound
// CardHandle ready for use.
func connectAndMatch() (*apdu.Reader, *starcos.CardHandle, error) {
	idx := readerIndex
	if idx < 0 {
		readers, err := apdu.ListReaders()
		if err != nil {
			return nil, nil, fmt.Errorf("list readers: %w", err)
		}
		if len(readers) == 0 {
			return nil, nil, fmt.Errorf("no smart card readers found")
		}
		if len(readers) > 1 {
			output.PrintReaderList(readers)
			return nil, nil, fmt.Errorf("multiple readers found, use -r <index> to select one")
		}
		idx = 0
	}

	reader, err := apdu.Connect(idx)
	if err != nil {
		return nil, nil, fmt.Errorf("connect: %w", err)
	}

	if err := reader.Reset(coldReset); err != nil {
		printWarning(fmt.Sprintf("card reset failed: %v (continuing anyway)", err))
	}

	if !outputJSON {
		output.PrintReaderInfo(reader.Name(), fmt.Sprintf("%X", reader.ATR()))
	}

	if _, ok := starcos.MatchATR(reader.ATR()); !ok {
		reader.Close()
		return nil, nil, fmt.Errorf("ATR %X does not match a STARCOS SPK 2.3 card", reader.ATR())
	}

	h := starcos.Init(reader, starcos.Options{Logger: slog.Default()})
	return reader, h, nil
}

func printSuccess(msg string) {
	if !outputJSON {
		output.PrintSuccess(msg)
	}
}

func printWarning(msg string) {
	if !outputJSON {
		output.PrintWarning(msg)
	}
}
