package cmdutils

import (
	"github.com/devops-sherpas/jfrog-sagen/internal/api/artifactory"
	"github.com/devops-sherpas/jfrog-sagen/internal/api/xray"
	"github.com/devops-sherpas/jfrog-sagen/internal/config"
)

// Factory builds the remote clients from the global configuration. Commands
// call the constructors lazily so flag and profile hydration has happened by
// the time a client is built.
type Factory struct {
	Site1Client func() *artifactory.Client
	Site2Client func() *artifactory.Client
	XrayClient  func() *xray.Client
}

func NewFactory() *Factory {
	return &Factory{
		Site1Client: func() *artifactory.Client {
			return artifactory.NewClient(config.Global.URL1, config.Global.Token1)
		},
		Site2Client: func() *artifactory.Client {
			return artifactory.NewClient(config.Global.URL2, config.Global.Token2)
		},
		XrayClient: func() *xray.Client {
			return xray.NewClient(config.Global.URL, config.Global.Token)
		},
	}
}
