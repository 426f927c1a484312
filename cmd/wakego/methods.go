package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/wakego/wakego/internal/config"
)

var methodsHeaderStyle = lipgloss.NewStyle().Bold(true)

var methodsCmd = &cobra.Command{
	Use:   "methods",
	Short: "Probe every method of the selected mode and show what would work",
	Long: `Tries every registered method for the selected mode, deactivating each
successful one right away, and lists the outcome: SUCCESS (would activate
now), FAIL (with the reason at -v), UNSUPPORTED (wrong platform) or * (not
tried).`,
	RunE: runMethods,
}

func runMethods(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	m, err := buildMode(cfg)
	if err != nil {
		return err
	}
	defer m.Close()

	result, err := m.Probe()
	if err != nil {
		return err
	}

	fmt.Println(methodsHeaderStyle.Render(fmt.Sprintf("Methods for %s:", m.Name())))
	fmt.Println()
	fmt.Println(result.MethodsText(flagVerbose > 0))
	return nil
}
