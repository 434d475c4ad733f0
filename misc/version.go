// Package misc keeps build time information about the program.
package misc

// Set during build with -ldflags "-X svgsprite/misc.version=... -X svgsprite/misc.gitHash=...".
var (
	appName = "svgsprite"
	version = "dev"
	gitHash = "unknown"
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}
