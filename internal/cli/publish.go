package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/seqfile/pkg/config"
	"github.com/arthur-debert/seqfile/pkg/filesystem"
	"github.com/arthur-debert/seqfile/pkg/policy"
	"github.com/arthur-debert/seqfile/pkg/publisher"
	"github.com/arthur-debert/seqfile/pkg/types"
)

func newPublishCmd() *cobra.Command {
	var (
		profile      string
		fileExist    string
		tempPrefix   string
		tempFileName string
		eagerDelete  bool
		moveExisting string
		doneFileName string
		previousFile string
		input        string
	)

	cmd := &cobra.Command{
		Use:   "publish DIRECTORY NAME",
		Short: "Publish a payload into a directory under a final name",
		Long: `Publish reads a payload (from --input or stdin) and writes it into
DIRECTORY under NAME, honoring the endpoint's conflict policy,
temp-and-rename strategy, predecessor gate and done file.`,
		Example: `  seqfile publish out report.csv --input report.csv --temp-prefix inprogress. --done-file-name '${file:name}.done'
  cat data.json | seqfile publish out data.json --file-exist Fail
  seqfile publish out b.txt --input b.txt --previous-file a.txt`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ep, err := config.Load(profile, args[0])
			if err != nil {
				return err
			}

			// Flags beat the profile, but only when actually set
			if cmd.Flags().Changed("file-exist") {
				if ep.FileExist, err = policy.Parse(fileExist); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("temp-prefix") {
				ep.TempPrefix = tempPrefix
			}
			if cmd.Flags().Changed("temp-file-name") {
				ep.TempFileName = tempFileName
			}
			if cmd.Flags().Changed("eager-delete") {
				ep.EagerDeleteTargetFile = eagerDelete
			}
			if cmd.Flags().Changed("move-existing") {
				ep.MoveExisting = moveExisting
			}
			if cmd.Flags().Changed("done-file-name") {
				ep.DoneFileName = doneFileName
			}

			body, err := readPayload(input)
			if err != nil {
				return fmt.Errorf("cannot read payload: %w", err)
			}

			pub, err := publisher.New(ep, filesystem.NewOS())
			if err != nil {
				return err
			}

			res, err := pub.Publish(types.Request{
				FileName:         args[1],
				Body:             body,
				PreviousFileName: previousFile,
			})

			printResult(cmd.OutOrStdout(), res, err)
			return err
		},
	}

	cmd.Flags().StringVar(&profile, "profile", "", "Endpoint profile file (seqfile.toml or seqfile.yaml)")
	cmd.Flags().StringVar(&fileExist, "file-exist", "Override", "Conflict policy: Override, Ignore, Fail, Move, TryRename, Append")
	cmd.Flags().StringVar(&tempPrefix, "temp-prefix", "", "Write through <prefix><name> and rename to the target")
	cmd.Flags().StringVar(&tempFileName, "temp-file-name", "", "Template for the temp name, e.g. 'inprogress-${file:onlyname}'")
	cmd.Flags().BoolVar(&eagerDelete, "eager-delete", true, "Resolve target conflicts before the temp write instead of after")
	cmd.Flags().StringVar(&moveExisting, "move-existing", "", "Relocation template for fileExist=Move, e.g. '${file:parent}/archive/${file:onlyname}'")
	cmd.Flags().StringVar(&doneFileName, "done-file-name", "", "Done file pattern, e.g. '${file:name}.done'")
	cmd.Flags().StringVar(&previousFile, "previous-file", "", "File that must be gone from the target directory before this write")
	cmd.Flags().StringVar(&input, "input", "", "Payload file ('-' or empty reads stdin)")

	cmd.MarkFlagsMutuallyExclusive("temp-prefix", "temp-file-name")

	return cmd
}

// readPayload reads the payload from a file, or from stdin when path
// is empty or "-".
func readPayload(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
