package misc

import "fmt"

const (
	// Prefix is the application environment variables prefix.
	Prefix = "LOCATOR"

	// AgentName is the name of the agent application.
	AgentName = "locator-agent"
)

// These variables are changed in compile time.
var (
	// Build is an application build time.
	Build = "now"

	// Version is an application version.
	Version = "dev"

	// Debug is an application debug mode flag.
	Debug = "false"
)

// BuildInfo returns human-readable build info of the named component.
func BuildInfo(component string) string {
	return fmt.Sprintf("%s\nVersion: %s \nBuild: %s \nDebug: %s\n",
		component, Version, Build, Debug)
}
