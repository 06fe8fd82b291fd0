package sitesdiff

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	"github.com/devops-sherpas/jfrog-sagen/cmd/cmdutils"
	"github.com/devops-sherpas/jfrog-sagen/internal/config"
	diffsvc "github.com/devops-sherpas/jfrog-sagen/internal/sitesdiff"
)

// NewSitesDiffCmd wires up:
//
//	sagen sites-diff
func NewSitesDiffCmd(f *cmdutils.Factory) *cobra.Command {
	var excludeArtifacts bool
	var concurrency int
	cmd := &cobra.Command{
		Use:   "sites-diff",
		Short: "Compare repositories and artifacts of two Artifactory sites",
		Long: "Performs a site differences analysis between two Artifactory sites: " +
			"which repositories exist on one and not the other, and which artifacts differ. " +
			"The JSON report is printed to stdout; logs go to stderr.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.Global.URL1 == "" || config.Global.URL2 == "" ||
				config.Global.Token1 == "" || config.Global.Token2 == "" {
				return errors.New("both site URLs and tokens are required (flags or saved profile)")
			}
			service := diffsvc.NewService(f.Site1Client(), f.Site2Client(), diffsvc.Options{
				ExcludeArtifacts: excludeArtifacts,
				Concurrency:      concurrency,
			})
			report, err := service.Run(cmd.Context())
			if err != nil {
				return err
			}
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(report)
		},
	}

	cmd.Flags().StringVar(&config.Global.URL1, "url-1", "", "Artifactory root URL for site 1")
	cmd.Flags().StringVar(&config.Global.URL2, "url-2", "", "Artifactory root URL for site 2")
	cmd.Flags().StringVar(&config.Global.Token1, "token-1", "", "identity / access token for site 1")
	cmd.Flags().StringVar(&config.Global.Token2, "token-2", "", "identity / access token for site 2")
	cmd.Flags().BoolVar(&excludeArtifacts, "exclude-artifacts", false, "exclude artifacts comparison")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "repositories compared at once (0 = one per CPU)")

	return cmd
}
