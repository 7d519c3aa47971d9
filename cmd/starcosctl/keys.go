package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/starcosdriver/output"
	"github.com/example/starcosdriver/starcos"
)

var (
	keygenKeyID      int
	keygenModulusBits int

	installKeyID     int
	installMode      string
	installHeaderHex string
	installKeyHex    string
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Trigger on-card RSA key-pair generation",
	RunE: func(cmd *cobra.Command, args []string) error {
		reader, h, err := connectAndMatch()
		if err != nil {
			return err
		}
		defer reader.Close()
		defer h.Finish()

		modulus, err := h.GenerateKeyPair(byte(keygenKeyID), keygenModulusBits)
		if err != nil {
			return fmt.Errorf("generate key pair: %w", err)
		}
		output.PrintModulus(byte(keygenKeyID), modulus)
		return nil
	},
}

var installKeyCmd = &cobra.Command{
	Use:   "install-key",
	Short: "Install an off-card RSA key in segmented chunks",
	RunE: func(cmd *cobra.Command, args []string) error {
		header, err := parseHex(installHeaderHex)
		if err != nil {
			return err
		}
		if len(header) != 12 {
			return fmt.Errorf("key header must be 12 bytes, got %d", len(header))
		}
		var headerArr [12]byte
		copy(headerArr[:], header)

		keyBytes, err := parseHex(installKeyHex)
		if err != nil {
			return err
		}

		mode := starcos.KeyInstallNew
		if installMode == "update" {
			mode = starcos.KeyInstallUpdate
		}

		reader, h, err := connectAndMatch()
		if err != nil {
			return err
		}
		defer reader.Close()
		defer h.Finish()

		if err := h.InstallKey(headerArr, byte(installKeyID), mode, keyBytes); err != nil {
			return fmt.Errorf("install key: %w", err)
		}
		printSuccess(fmt.Sprintf("installed key 0x%02X (%d bytes)", installKeyID, len(keyBytes)))
		return nil
	},
}

func init() {
	keygenCmd.Flags().IntVar(&keygenKeyID, "key-id", 1, "key id to generate into")
	keygenCmd.Flags().IntVar(&keygenModulusBits, "bits", 1024, "modulus size in bits")

	installKeyCmd.Flags().IntVar(&installKeyID, "key-id", 1, "key id slot")
	installKeyCmd.Flags().StringVar(&installMode, "mode", "new", "new or update")
	installKeyCmd.Flags().StringVar(&installHeaderHex, "header", "", "12-byte key header (hex)")
	installKeyCmd.Flags().StringVar(&installKeyHex, "key", "", "key material (hex)")
	_ = installKeyCmd.MarkFlagRequired("header")
}
