package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"mixport/internal/naming"
)

func newNameCommand() *cobra.Command {
	var seed uint64
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "name [file|-]",
		Short: "Generate a playlist name and description from track titles",
		Long: `Read one track title per line and print the generated playlist identity.

Titles are read from the given file, or from stdin when the argument is "-"
or omitted. Use --seed for repeatable output.`,
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var input io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				file, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open titles: %w", err)
				}
				defer file.Close()
				input = file
			}
			titles, err := readLines(input)
			if err != nil {
				return fmt.Errorf("read titles: %w", err)
			}

			var picker naming.Picker
			if cmd.Flags().Changed("seed") {
				picker = naming.NewSeededPicker(seed)
			}
			generator := naming.NewGenerator(picker)
			identity := generator.CreateIdentity(titles)

			if jsonOutput {
				return writeJSON(cmd, struct {
					naming.Identity
					Analysis naming.Analysis `json:"analysis"`
				}{identity, naming.Analyze(titles)})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name: %s\n", identity.Name)
			fmt.Fprintf(out, "Description: %s\n", identity.Description)
			return nil
		},
	}
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for deterministic template selection")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the identity and analysis as JSON")
	return cmd
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}
