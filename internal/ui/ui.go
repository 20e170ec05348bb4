// Package ui renders tables and themed colors for terminal output.
package ui

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
)

// DarkTheme selects the brighter color variants.
var DarkTheme bool

// PrintTable renders a boxed table whose first row is the header.
func PrintTable(data [][]string, writer io.Writer) {
	table := pterm.DefaultTable
	table.Boxed = true

	str, err := table.WithHasHeader().WithData(data).Srender()
	if err != nil {
		pterm.Error.Printfln("Failed to render table: %s", err.Error())
		return
	}

	fmt.Fprintln(writer, str)
}

func Green(a any) string {
	if DarkTheme {
		return pterm.LightGreen(a)
	}

	return pterm.Green(a)
}

func Red(a any) string {
	if DarkTheme {
		return pterm.LightRed(a)
	}

	return pterm.Red(a)
}

func Cyan(a any) string {
	if DarkTheme {
		return pterm.LightCyan(a)
	}

	return pterm.Cyan(a)
}

func Highlight(a any) string {
	if DarkTheme {
		return pterm.LightWhite(a)
	}

	return pterm.Black(a)
}
