// Package output renders starcosctl results as terminal tables and
// colored status lines.
package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/example/starcosdriver/apdu"
	"github.com/example/starcosdriver/scenario"
	"github.com/example/starcosdriver/starcos"
)

// Color styles
var (
	colorHeader  = text.Colors{text.FgCyan, text.Bold}
	colorLabel   = text.Colors{text.FgYellow}
	colorValue   = text.Colors{text.FgWhite}
	colorSuccess = text.Colors{text.FgGreen}
	colorError   = text.Colors{text.FgRed}
	colorWarn    = text.Colors{text.FgYellow}
)

// getTableStyle returns the default table style
func getTableStyle() table.Style {
	style := table.StyleRounded
	style.Color.Header = colorHeader
	style.Color.Row = text.Colors{text.FgWhite}
	style.Color.RowAlternate = text.Colors{text.FgHiWhite}
	style.Options.SeparateRows = false
	return style
}

// newTable creates a new table writer with default settings
func newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(getTableStyle())
	t.Style().Options.SeparateRows = false
	return t
}

// PrintReaderList prints available PC/SC readers.
func PrintReaderList(readers []string) {
	fmt.Println()
	t := newTable()
	t.SetTitle("AVAILABLE SMART CARD READERS")
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Colors: colorLabel, WidthMin: 8},
		{Number: 2, Colors: colorValue, WidthMin: 50},
	})

	if len(readers) == 0 {
		t.AppendRow(table.Row{"Status", colorWarn.Sprint("No readers found")})
	} else {
		for i, r := range readers {
			t.AppendRow(table.Row{fmt.Sprintf("[%d]", i), r})
		}
	}
	t.Render()
}

// PrintReaderInfo prints the reader name and card ATR.
func PrintReaderInfo(readerName, atr string) {
	fmt.Println()
	t := newTable()
	t.SetTitle("READER & CARD")
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Colors: colorLabel, WidthMin: 15},
		{Number: 2, Colors: colorValue, WidthMin: 55},
	})
	t.AppendRow(table.Row{"Reader", readerName})
	t.AppendRow(table.Row{"ATR", atr})
	t.Render()
}

// PrintATRInfo renders a decoded ATR's structural fields (TS/T0/TA-TD,
// historical bytes, checksum, protocol list).
func PrintATRInfo(info *apdu.ATRInfo) {
	fmt.Println()
	t := newTable()
	t.SetTitle("ATR DETAIL")
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Colors: colorLabel, WidthMin: 15},
		{Number: 2, Colors: colorValue, WidthMin: 55},
	})
	t.AppendRow(table.Row{"Raw", fmt.Sprintf("%X", info.Raw)})
	t.AppendRow(table.Row{"TS", fmt.Sprintf("%02X", info.TS)})
	t.AppendRow(table.Row{"T0", fmt.Sprintf("%02X", info.T0)})
	for i := 1; i <= len(info.TD); i++ {
		if v, ok := info.TA[i]; ok {
			t.AppendRow(table.Row{fmt.Sprintf("TA%d", i), fmt.Sprintf("%02X", v)})
		}
		if v, ok := info.TB[i]; ok {
			t.AppendRow(table.Row{fmt.Sprintf("TB%d", i), fmt.Sprintf("%02X", v)})
		}
		if v, ok := info.TC[i]; ok {
			t.AppendRow(table.Row{fmt.Sprintf("TC%d", i), fmt.Sprintf("%02X", v)})
		}
		if v, ok := info.TD[i]; ok {
			t.AppendRow(table.Row{fmt.Sprintf("TD%d", i), fmt.Sprintf("%02X", v)})
		}
	}
	if len(info.Protocols) > 0 {
		protos := make([]string, len(info.Protocols))
		for i, p := range info.Protocols {
			protos[i] = fmt.Sprintf("T=%d", p)
		}
		t.AppendRow(table.Row{"Protocols", strings.Join(protos, ", ")})
	}
	if len(info.HB) > 0 {
		t.AppendRow(table.Row{"Historical bytes", fmt.Sprintf("%X", info.HB)})
	}
	if info.TCK != nil {
		t.AppendRow(table.Row{"TCK", fmt.Sprintf("%02X", *info.TCK)})
	}
	t.Render()
}

func kindString(k starcos.FileKind) string {
	if k == starcos.KindDF {
		return "DF"
	}
	return "EF"
}

func structureString(s starcos.Structure) string {
	switch s {
	case starcos.StructureTransparent:
		return "transparent"
	case starcos.StructureLinearFixed:
		return "linear-fixed"
	case starcos.StructureCyclic:
		return "cyclic"
	case starcos.StructureComputeService:
		return "compute-service"
	default:
		return "unknown"
	}
}

// PrintFileDescriptor prints the descriptor SELECT returned.
func PrintFileDescriptor(fd *starcos.FileDescriptor) {
	fmt.Println()
	t := newTable()
	t.SetTitle("SELECTED FILE")
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Colors: colorLabel, WidthMin: 18},
		{Number: 2, Colors: colorValue, WidthMin: 50},
	})

	if len(fd.FileID) > 0 {
		t.AppendRow(table.Row{"File ID", fmt.Sprintf("%X", fd.FileID)})
	}
	if len(fd.AID) > 0 {
		t.AppendRow(table.Row{"AID", fmt.Sprintf("%X", fd.AID)})
	}
	t.AppendRow(table.Row{"Kind", kindString(fd.Kind)})
	if fd.Kind == starcos.KindEF {
		t.AppendRow(table.Row{"Structure", structureString(fd.Structure)})
		if fd.ObjectEF {
			t.AppendRow(table.Row{"Object EF", colorWarn.Sprint("yes")})
		}
		switch fd.Structure {
		case starcos.StructureTransparent:
			t.AppendRow(table.Row{"Size", fmt.Sprintf("%d bytes", fd.Size)})
		case starcos.StructureLinearFixed, starcos.StructureCyclic, starcos.StructureComputeService:
			t.AppendRow(table.Row{"Records", fmt.Sprintf("%d x %d bytes", fd.RecordCount, fd.RecordLength)})
		}
	}
	t.Render()
}

// PrintModulus prints a generated RSA modulus.
func PrintModulus(keyID byte, modulus []byte) {
	fmt.Println()
	t := newTable()
	t.SetTitle("GENERATED KEY PAIR")
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Colors: colorLabel, WidthMin: 15},
		{Number: 2, Colors: colorValue, WidthMin: 70},
	})
	t.AppendRow(table.Row{"Key ID", fmt.Sprintf("0x%02X", keyID)})
	t.AppendRow(table.Row{"Modulus bits", fmt.Sprintf("%d", len(modulus)*8)})
	t.AppendRow(table.Row{"Modulus", fmt.Sprintf("%X", modulus)})
	t.Render()
}

// PrintSignature prints a signature value.
func PrintSignature(sig []byte) {
	fmt.Println()
	t := newTable()
	t.SetTitle("SIGNATURE")
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Colors: colorLabel, WidthMin: 12},
		{Number: 2, Colors: colorValue, WidthMin: 70},
	})
	t.AppendRow(table.Row{"Length", fmt.Sprintf("%d bytes", len(sig))})
	t.AppendRow(table.Row{"Value", fmt.Sprintf("%X", sig)})
	t.Render()
}

// PrintSerial prints the card serial number returned by GET CARD DATA.
func PrintSerial(serial []byte) {
	fmt.Println()
	t := newTable()
	t.SetTitle("CARD SERIAL")
	t.AppendRow(table.Row{"Serial", fmt.Sprintf("%X", serial)})
	t.Render()
}

// PrintScenarioResults renders one row per end-to-end scenario.
func PrintScenarioResults(results []scenario.Result) {
	fmt.Println()
	t := newTable()
	t.SetTitle("SCENARIO RESULTS")
	t.AppendHeader(table.Row{"Status", "Scenario", "Detail"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 6},
		{Number: 2, Colors: colorLabel, WidthMin: 30},
		{Number: 3, Colors: colorValue, WidthMin: 50},
	})

	for _, r := range results {
		status := colorSuccess.Sprint("✓")
		detail := r.Actual
		if !r.Passed {
			status = colorError.Sprint("✗")
			if r.Err != nil {
				detail = r.Err.Error()
			} else {
				detail = fmt.Sprintf("want %s, got %s", r.Expected, r.Actual)
			}
		}
		t.AppendRow(table.Row{status, r.Name, detail})
	}
	t.Render()

	summary := scenario.Summarize(results)
	fmt.Println()
	if summary.Failed == 0 {
		PrintSuccess(fmt.Sprintf("%s", summary))
	} else {
		PrintError(fmt.Sprintf("%s (failed: %s)", summary, strings.Join(summary.FailedNames, ", ")))
	}
}

// PrintError prints an error message.
func PrintError(msg string) {
	fmt.Println(colorError.Sprintf("✗ Error: %s", msg))
}

// PrintSuccess prints a success message.
func PrintSuccess(msg string) {
	fmt.Println(colorSuccess.Sprintf("✓ %s", msg))
}

// PrintWarning prints a warning message.
func PrintWarning(msg string) {
	fmt.Println(colorWarn.Sprintf("⚠ %s", msg))
}
