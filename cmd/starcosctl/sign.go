package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/starcosdriver/output"
	"github.com/example/starcosdriver/starcos"
)

var (
	signHash     string
	signPadding  string
	signKeyRef   int
	signOperation string
	signHashHex  string
)

var signCmd = &cobra.Command{
	Use:   "sign",
	Short: "Negotiate a security environment and sign a hash",
	Example: `  starcosctl sign --key-ref 1 --hash sha1 --data <hash-hex>
  starcosctl sign --key-ref 2 --operation authenticate --hash sha1 --data <hash-hex>`,
	RunE: runSign,
}

func init() {
	signCmd.Flags().StringVar(&signHash, "hash", "sha1", "hash algorithm: sha1, md5, ripemd160, md5sha1")
	signCmd.Flags().StringVar(&signPadding, "padding", "pkcs1", "padding scheme: pkcs1, iso9796")
	signCmd.Flags().IntVar(&signKeyRef, "key-ref", 1, "private key reference")
	signCmd.Flags().StringVar(&signOperation, "operation", "sign", "sign or authenticate")
	signCmd.Flags().StringVar(&signHashHex, "data", "", "the hash to sign, hex-encoded")
	_ = signCmd.MarkFlagRequired("data")
}

func parseHashFlag(s string) (starcos.HashFlags, error) {
	switch strings.ToLower(s) {
	case "sha1":
		return starcos.HashSHA1, nil
	case "md5":
		return starcos.HashMD5, nil
	case "ripemd160":
		return starcos.HashRIPEMD160, nil
	case "md5sha1":
		return starcos.HashMD5SHA1, nil
	default:
		return 0, fmt.Errorf("unknown hash %q", s)
	}
}

func parsePaddingFlag(s string) (starcos.Padding, error) {
	switch strings.ToLower(s) {
	case "pkcs1":
		return starcos.PaddingPKCS1v15, nil
	case "iso9796":
		return starcos.PaddingISO9796, nil
	default:
		return 0, fmt.Errorf("unknown padding %q", s)
	}
}

func runSign(cmd *cobra.Command, args []string) error {
	hash, err := parseHashFlag(signHash)
	if err != nil {
		return err
	}
	padding, err := parsePaddingFlag(signPadding)
	if err != nil {
		return err
	}
	data, err := parseHex(signHashHex)
	if err != nil {
		return err
	}

	op := starcos.SecOpSign
	if strings.EqualFold(signOperation, "authenticate") {
		op = starcos.SecOpAuthenticate
	}

	reader, h, err := connectAndMatch()
	if err != nil {
		return err
	}
	defer reader.Close()
	defer h.Finish()

	env := starcos.SecurityEnv{
		Operation:    op,
		Algorithm:    starcos.AlgorithmRSA,
		Padding:      padding,
		Hash:         hash,
		KeyReference: signKeyRef,
	}
	if err := h.Negotiate(env); err != nil {
		return fmt.Errorf("negotiate: %w", err)
	}

	sig, err := h.Sign(data)
	if err != nil {
		return fmt.Errorf("sign: %w", err)
	}
	output.PrintSignature(sig)
	return nil
}
