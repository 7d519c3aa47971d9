package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/starcosdriver/starcos"
)

var (
	createFileID        string
	createAID           string
	createSize          int
	createStructure     string
	createRecordCount   int
	createRecordLength  int
	createEndFileID     string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create MF/DF/EF file-system objects",
}

var createMFCmd = &cobra.Command{
	Use:   "mf",
	Short: "Create the master file",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCreate(starcos.ControlCreateMF, &starcos.FileDescriptor{Kind: starcos.KindDF, Size: createSize})
	},
}

var createDFCmd = &cobra.Command{
	Use:   "df",
	Short: "Create a dedicated file",
	RunE: func(cmd *cobra.Command, args []string) error {
		fid, err := parseHex(createFileID)
		if err != nil {
			return err
		}
		var aid []byte
		if createAID != "" {
			if aid, err = parseHex(createAID); err != nil {
				return err
			}
		}
		return runCreate(starcos.ControlCreateDF, &starcos.FileDescriptor{FileID: fid, AID: aid, Kind: starcos.KindDF, Size: createSize})
	},
}

var createEFCmd = &cobra.Command{
	Use:   "ef",
	Short: "Create an elementary file",
	RunE: func(cmd *cobra.Command, args []string) error {
		fid, err := parseHex(createFileID)
		if err != nil {
			return err
		}
		fd := &starcos.FileDescriptor{FileID: fid, Kind: starcos.KindEF}
		switch createStructure {
		case "transparent", "":
			fd.Structure = starcos.StructureTransparent
			fd.Size = createSize
		case "linear-fixed":
			fd.Structure = starcos.StructureLinearFixed
			fd.RecordCount = createRecordCount
			fd.RecordLength = createRecordLength
		case "cyclic":
			fd.Structure = starcos.StructureCyclic
			fd.RecordCount = createRecordCount
			fd.RecordLength = createRecordLength
		default:
			return fmt.Errorf("unknown structure %q (want transparent, linear-fixed, cyclic)", createStructure)
		}
		return runCreate(starcos.ControlCreateEF, fd)
	},
}

var createEndCmd = &cobra.Command{
	Use:   "end",
	Short: "Activate a just-created MF or DF",
	RunE: func(cmd *cobra.Command, args []string) error {
		fid, err := parseHex(createEndFileID)
		if err != nil {
			return err
		}
		reader, h, err := connectAndMatch()
		if err != nil {
			return err
		}
		defer reader.Close()
		defer h.Finish()

		if _, err := h.Control(starcos.ControlRequest{Op: starcos.ControlCreateEnd, FileID: fid}); err != nil {
			return fmt.Errorf("create end: %w", err)
		}
		printSuccess(fmt.Sprintf("activated %X", fid))
		return nil
	},
}

func init() {
	createCmd.PersistentFlags().StringVar(&createFileID, "fid", "", "2-byte file-id (hex)")
	createCmd.PersistentFlags().StringVar(&createAID, "aid", "", "DF application id (hex, optional)")
	createCmd.PersistentFlags().IntVar(&createSize, "size", 0, "file size in bytes (MF/DF/transparent EF)")
	createCmd.PersistentFlags().StringVar(&createStructure, "structure", "transparent", "EF structure: transparent, linear-fixed, cyclic")
	createCmd.PersistentFlags().IntVar(&createRecordCount, "record-count", 0, "record count (linear-fixed/cyclic EF)")
	createCmd.PersistentFlags().IntVar(&createRecordLength, "record-length", 0, "record length (linear-fixed/cyclic EF)")
	createEndCmd.Flags().StringVar(&createEndFileID, "fid", "", "2-byte file-id of the MF/DF to activate (hex)")

	createCmd.AddCommand(createMFCmd, createDFCmd, createEFCmd, createEndCmd)
}

func runCreate(op starcos.ControlOp, fd *starcos.FileDescriptor) error {
	reader, h, err := connectAndMatch()
	if err != nil {
		return err
	}
	defer reader.Close()
	defer h.Finish()

	if _, err := h.Control(starcos.ControlRequest{Op: op, File: fd}); err != nil {
		return fmt.Errorf("create: %w", err)
	}
	printSuccess("created")
	return nil
}
