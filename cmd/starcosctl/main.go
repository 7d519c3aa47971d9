// Command starcosctl drives a STARCOS SPK 2.3 card through a PC/SC
// reader: select files, create the file system, generate and install
// RSA keys, sign, and run card-control operations, with table output.
// --json suppresses the status lines and reader banner; results are
// still printed as tables and no JSON is produced.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
