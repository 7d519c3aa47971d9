package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/starcosdriver/apdu"
	"github.com/example/starcosdriver/output"
	"github.com/example/starcosdriver/starcos"
)

var atrCmd = &cobra.Command{
	Use:   "atr",
	Short: "Read and decode the card's ATR without requiring a STARCOS match",
	RunE: func(cmd *cobra.Command, args []string) error {
		idx := readerIndex
		if idx < 0 {
			idx = 0
		}
		reader, err := apdu.Connect(idx)
		if err != nil {
			return fmt.Errorf("connect: %w", err)
		}
		defer reader.Close()

		if err := reader.Reset(coldReset); err != nil {
			printWarning(fmt.Sprintf("card reset failed: %v (continuing anyway)", err))
		}

		raw := reader.ATR()
		output.PrintReaderInfo(reader.Name(), fmt.Sprintf("%X", raw))

		info, err := apdu.DecodeATR(raw)
		if err != nil {
			return fmt.Errorf("decode ATR: %w", err)
		}
		output.PrintATRInfo(info)

		if _, ok := starcos.MatchATR(raw); ok {
			printSuccess("ATR matches a known STARCOS SPK 2.3 configuration")
		} else {
			printWarning("ATR does not match a known STARCOS SPK 2.3 configuration")
		}
		return nil
	},
}
