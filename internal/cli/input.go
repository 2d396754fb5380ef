package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"gridart/diagram"
	"gridart/errors"
	"gridart/importer"
)

// readInput reads the file named by args, or standard input when there is
// no argument or it is "-". It returns the content and the path read.
func readInput(cmd *cobra.Command, args []string) (string, string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), "", nil
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", "", errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return "", "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), path, nil
}

// loadDiagram reads and imports the input. An explicit format wins, then
// the file extension, then content detection.
func loadDiagram(cmd *cobra.Command, args []string, format string) (*diagram.Diagram, error) {
	content, path, err := readInput(cmd, args)
	if err != nil {
		return nil, err
	}

	reg := importer.NewRegistry()
	if format == "" && path != "" {
		if imp, ok := reg.ForExtension(path); ok {
			return imp.Import(content)
		}
	}
	return reg.ImportFormat(content, format)
}

// writeOutput writes text to path, or to the command's stdout when path is
// empty, ending it with a newline.
func writeOutput(cmd *cobra.Command, path, text string) error {
	if path == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), text)
		return err
	}
	if err := os.WriteFile(path, []byte(text+"\n"), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
