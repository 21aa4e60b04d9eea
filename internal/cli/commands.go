package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/seqfile/internal/version"
	"github.com/arthur-debert/seqfile/pkg/cobrax/topics"
	"github.com/arthur-debert/seqfile/pkg/logging"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:   "seqfile",
		Short: "Sequenced, crash-safe file publication",
		Long: `seqfile publishes files so that partially written payloads are never
visible under their final name, conflicting existing files are resolved
by a configurable policy, writes happen in a caller-enforced order, and
an optional done file signals downstream consumers that the payload is
complete.`,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	// Use the topic-based help command instead of cobra's default
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newPublishCmd())

	// Help topics live next to the binary or in the working tree
	exe, err := os.Executable()
	if err == nil {
		possiblePaths := []string{
			filepath.Join(filepath.Dir(exe), "..", "..", "docs", "help"), // Development
			filepath.Join(filepath.Dir(exe), "docs", "help"),             // Installed
			"docs/help", // Current directory
		}
		for _, helpPath := range possiblePaths {
			if _, err := os.Stat(helpPath); err == nil {
				if err := topics.Initialize(rootCmd, helpPath); err == nil {
					break
				}
			}
		}
	}

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("seqfile version %s\n", version.Version)
			fmt.Printf("  commit: %s\n", version.Commit)
			fmt.Printf("  built:  %s\n", version.Date)
		},
	}
}
