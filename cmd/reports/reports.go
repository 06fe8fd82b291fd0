package reports

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/devops-sherpas/jfrog-sagen/cmd/cmdutils"
	"github.com/devops-sherpas/jfrog-sagen/internal/config"
	harvest "github.com/devops-sherpas/jfrog-sagen/internal/reports"
)

var exportFormats = map[string]bool{
	"pdf":  true,
	"json": true,
	"csv":  true,
}

// NewReportsCmd wires up:
//
//	sagen reports export-definitions
//	sagen reports import-definitions
//	sagen reports export-contents
func NewReportsCmd(f *cmdutils.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Export, import and download Xray report definitions and contents",
	}
	cmd.PersistentFlags().StringVar(&config.Global.URL, "url", "", "Artifactory root URL")
	cmd.PersistentFlags().StringVar(&config.Global.Token, "token", "", "identity / access token")

	cmd.AddCommand(newExportDefinitionsCmd(f))
	cmd.AddCommand(newImportDefinitionsCmd(f))
	cmd.AddCommand(newExportContentsCmd(f))
	return cmd
}

func requireCredentials() error {
	if config.Global.URL == "" || config.Global.Token == "" {
		return errors.New("url and token are required (flags or saved profile)")
	}
	return nil
}

func newExportDefinitionsCmd(f *cmdutils.Factory) *cobra.Command {
	var outputDir string
	cmd := &cobra.Command{
		Use:   "export-definitions",
		Short: "Export every report's summary and full definition to a directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireCredentials(); err != nil {
				return err
			}
			if err := os.MkdirAll(outputDir, 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}
			service := harvest.NewService(f.XrayClient())
			return service.ExportDefinitions(cmd.Context(), &definitionDirSink{dir: outputDir})
		},
	}
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "directory to write definition files to")
	cmd.MarkFlagRequired("output-dir")
	return cmd
}

func newImportDefinitionsCmd(f *cmdutils.Factory) *cobra.Command {
	var inputDir string
	cmd := &cobra.Command{
		Use:   "import-definitions",
		Short: "Import report definitions from a directory of JSON files",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireCredentials(); err != nil {
				return err
			}
			service := harvest.NewService(f.XrayClient())
			return service.ImportDefinitions(cmd.Context(), &definitionDirSource{dir: inputDir})
		},
	}
	cmd.Flags().StringVar(&inputDir, "input-dir", "", "directory to read definition files from")
	cmd.MarkFlagRequired("input-dir")
	return cmd
}

func newExportContentsCmd(f *cmdutils.Factory) *cobra.Command {
	var outputDir string
	var format string
	var verify bool
	cmd := &cobra.Command{
		Use:   "export-contents",
		Short: "Download every report's generated contents as ZIP archives",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireCredentials(); err != nil {
				return err
			}
			if !exportFormats[format] {
				return fmt.Errorf("unsupported format %q: must be pdf, json or csv", format)
			}
			if err := os.MkdirAll(outputDir, 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}
			service := harvest.NewService(f.XrayClient())
			return service.ExportContents(cmd.Context(), format, &contentDirSink{dir: outputDir}, verify)
		},
	}
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "directory to write archives to")
	cmd.Flags().StringVar(&format, "format", "", "report format inside the archive: pdf, json or csv")
	cmd.Flags().BoolVar(&verify, "verify", false, "check each downloaded archive is a readable ZIP")
	cmd.MarkFlagRequired("output-dir")
	cmd.MarkFlagRequired("format")
	return cmd
}
