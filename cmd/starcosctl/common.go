package main

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// parseHex decodes a hex string, tolerating spaces ("3F 00" or "3F00").
func parseHex(s string) ([]byte, error) {
	s = strings.ReplaceAll(s, " ", "")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex %q: %w", s, err)
	}
	return b, nil
}
