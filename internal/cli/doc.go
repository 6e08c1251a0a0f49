// Package cli holds helpers shared by the gridvoice and gridvoiced
// command trees.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// FlagDoc describes one flag in the machine-readable help output.
type FlagDoc struct {
	Name        string `json:"name"`
	Shorthand   string `json:"shorthand,omitempty"`
	Type        string `json:"type"`
	Default     string `json:"default,omitempty"`
	Description string `json:"description,omitempty"`
}

// CommandDoc describes a command and its visible subtree.
type CommandDoc struct {
	Name        string       `json:"name"`
	Use         string       `json:"use,omitempty"`
	Description string       `json:"description,omitempty"`
	Long        string       `json:"long,omitempty"`
	Flags       []FlagDoc    `json:"flags,omitempty"`
	Subcommands []CommandDoc `json:"subcommands,omitempty"`
}

// DescribeCommand walks cmd and its visible subcommands into a CommandDoc.
func DescribeCommand(cmd *cobra.Command) CommandDoc {
	doc := CommandDoc{
		Name:        cmd.Name(),
		Use:         cmd.Use,
		Description: cmd.Short,
		Long:        cmd.Long,
		Flags:       describeFlags(cmd),
	}

	for _, sub := range cmd.Commands() {
		if sub.Name() == "help" || sub.Hidden {
			continue
		}
		doc.Subcommands = append(doc.Subcommands, DescribeCommand(sub))
	}

	return doc
}

func describeFlags(cmd *cobra.Command) []FlagDoc {
	var flags []FlagDoc

	cmd.LocalFlags().VisitAll(func(f *pflag.Flag) {
		if f.Name == "help" || f.Name == "help-json" {
			return
		}
		flags = append(flags, FlagDoc{
			Name:        f.Name,
			Shorthand:   f.Shorthand,
			Type:        f.Value.Type(),
			Default:     f.DefValue,
			Description: f.Usage,
		})
	})

	return flags
}

// WriteDoc writes the doc for cmd to w as indented JSON.
func WriteDoc(w io.Writer, cmd *cobra.Command) error {
	out, err := json.MarshalIndent(DescribeCommand(cmd), "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// AddHelpJSONFlag registers the --help-json persistent flag on cmd.
func AddHelpJSONFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().Bool("help-json", false, "Output command documentation as JSON")
}

// HandleHelpJSON scans os.Args for --help-json and, when present, prints
// the doc for the addressed command and exits. Call before Execute so the
// flag works even when required arguments are missing.
func HandleHelpJSON(rootCmd *cobra.Command) {
	for i, arg := range os.Args {
		if arg == "--help-json" {
			target := resolveCommand(rootCmd, os.Args[1:i])
			if err := WriteDoc(os.Stdout, target); err != nil {
				fmt.Fprintf(os.Stderr, "Error generating documentation: %v\n", err)
				os.Exit(1)
			}
			os.Exit(0)
		}
	}
}

func resolveCommand(cmd *cobra.Command, args []string) *cobra.Command {
	if len(args) == 0 {
		return cmd
	}

	for _, sub := range cmd.Commands() {
		if sub.Name() == args[0] || sub.HasAlias(args[0]) {
			return resolveCommand(sub, args[1:])
		}
	}

	return cmd
}
