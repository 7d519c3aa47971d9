package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/starcosdriver/output"
	"github.com/example/starcosdriver/starcos"
)

var (
	selectFileID string
	selectAID    string
	selectPath   string
)

var selectCmd = &cobra.Command{
	Use:   "select",
	Short: "Select a file by file-id, AID, or full path",
	Example: `  starcosctl select --fid 2F00
  starcosctl select --aid A0000000871002
  starcosctl select --path 3F005015`,
	RunE: runSelect,
}

func init() {
	selectCmd.Flags().StringVar(&selectFileID, "fid", "", "2-byte file-id (hex)")
	selectCmd.Flags().StringVar(&selectAID, "aid", "", "1-16 byte application id (hex)")
	selectCmd.Flags().StringVar(&selectPath, "path", "", "full path, even number of bytes (hex)")
}

func runSelect(cmd *cobra.Command, args []string) error {
	var sel starcos.Selector
	switch {
	case selectFileID != "":
		b, err := parseHex(selectFileID)
		if err != nil {
			return err
		}
		sel.FileID = b
	case selectAID != "":
		b, err := parseHex(selectAID)
		if err != nil {
			return err
		}
		sel.AID = b
	case selectPath != "":
		b, err := parseHex(selectPath)
		if err != nil {
			return err
		}
		sel.Path = b
	default:
		return fmt.Errorf("one of --fid, --aid, --path is required")
	}

	reader, h, err := connectAndMatch()
	if err != nil {
		return err
	}
	defer reader.Close()
	defer h.Finish()

	fd, err := h.SelectFile(sel)
	if err != nil {
		return fmt.Errorf("select: %w", err)
	}
	output.PrintFileDescriptor(fd)
	return nil
}
