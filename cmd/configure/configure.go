package configure

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/devops-sherpas/jfrog-sagen/internal/config"
)

// NewConfigureCmd wires up:
//
//	sagen configure
//
// It prompts for the site URLs and tokens and saves them to the profile.
// Empty answers keep the previously saved value.
func NewConfigureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "configure",
		Short: "Save service URLs and access tokens to the profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.DefaultProfilePath()
			if err != nil {
				return err
			}
			profile, err := config.LoadProfile(path)
			if err != nil {
				profile = &config.Profile{}
			}

			if err := promptSite("Site 1 (Artifactory)", &profile.Site1); err != nil {
				return err
			}
			if err := promptSite("Site 2 (Artifactory)", &profile.Site2); err != nil {
				return err
			}
			if err := promptSite("Xray", &profile.Xray); err != nil {
				return err
			}

			if err := config.SaveProfile(path, profile); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile saved to %s\n", path)
			return nil
		},
	}
}

func promptSite(label string, site *config.SiteProfile) error {
	url, err := readInput(fmt.Sprintf("%s URL [%s]: ", label, site.URL))
	if err != nil {
		return err
	}
	if url != "" {
		site.URL = url
	}
	token, err := readToken(fmt.Sprintf("%s token (hidden, empty keeps current): ", label))
	if err != nil {
		return err
	}
	if token != "" {
		site.Token = token
	}
	return nil
}

// readToken reads a token from stdin without echoing it
func readToken(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	token, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("error reading token: %w", err)
	}
	return strings.TrimSpace(string(token)), nil
}

// readInput reads a line of text from stdin
func readInput(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("error reading input: %w", err)
	}
	return strings.TrimSpace(input), nil
}
