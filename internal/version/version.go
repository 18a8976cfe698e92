// Package version carries build metadata injected through -ldflags.
package version

import "fmt"

// Set with -ldflags "-X github.com/smsactivate/mcp-sms-activate/internal/version.Version=v1.0.0".
var (
	Version   = "dev"
	Commit    = "dev"
	BuildDate = "dev"
)

// Product names this binary in the User-Agent header.
const Product = "mcp-sms-activate"

// Info describes build metadata.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"buildDate"`
}

// Get returns build metadata, defaulting empty fields to "dev".
func Get() Info {
	return Info{
		Version:   defaultOr(Version, "dev"),
		Commit:    defaultOr(Commit, "dev"),
		BuildDate: defaultOr(BuildDate, "dev"),
	}
}

func (i Info) String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", i.Version, i.Commit, i.BuildDate)
}

// UserAgent identifies upstream requests, e.g. "mcp-sms-activate/v1.0.0".
func UserAgent() string {
	return Product + "/" + Get().Version
}

func defaultOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
