package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shegge-stack/EmailGenerator/internal/prompts"
)

var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "List the available email writing styles",
	RunE:  runStyles,
}

func init() {
	rootCmd.AddCommand(stylesCmd)
}

func runStyles(_ *cobra.Command, _ []string) error {
	for _, style := range prompts.Styles() {
		fmt.Printf("%s - %s\n", style.Name, style.Title)
		fmt.Printf("    %s\n", style.Description)
		if style.ExampleSubject != "" {
			fmt.Printf("    e.g. %q\n", style.ExampleSubject)
		}
		fmt.Println()
	}
	return nil
}
