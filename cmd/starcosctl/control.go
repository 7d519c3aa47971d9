package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/starcosdriver/output"
)

var controlCmd = &cobra.Command{
	Use:   "control",
	Short: "Card-control operations: erase, serial, logout",
}

var eraseCmd = &cobra.Command{
	Use:   "erase",
	Short: "Erase the card's entire file system",
	RunE: func(cmd *cobra.Command, args []string) error {
		reader, h, err := connectAndMatch()
		if err != nil {
			return err
		}
		defer reader.Close()
		defer h.Finish()

		if err := h.EraseCard(); err != nil {
			return fmt.Errorf("erase card: %w", err)
		}
		printSuccess("card erased")
		return nil
	},
}

var serialCmd = &cobra.Command{
	Use:   "serial",
	Short: "Read the card's serial number",
	RunE: func(cmd *cobra.Command, args []string) error {
		reader, h, err := connectAndMatch()
		if err != nil {
			return err
		}
		defer reader.Close()
		defer h.Finish()

		serial, err := h.GetSerial()
		if err != nil {
			return fmt.Errorf("get serial: %w", err)
		}
		output.PrintSerial(serial)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out of the current application (select MF)",
	RunE: func(cmd *cobra.Command, args []string) error {
		reader, h, err := connectAndMatch()
		if err != nil {
			return err
		}
		defer reader.Close()
		defer h.Finish()

		if err := h.Logout(); err != nil {
			return fmt.Errorf("logout: %w", err)
		}
		printSuccess("logged out")
		return nil
	},
}

func init() {
	controlCmd.AddCommand(eraseCmd, serialCmd, logoutCmd)
}
