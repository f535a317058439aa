// Package utils holds small helpers shared by the ores commands.
package utils

// Set at build time with -ldflags "-X".
var (
	Version   = "dev"
	Sha       = "HEAD"
	Buildtime = "dev"
)

// UserAgent is the default User-Agent sent by the API client.
func UserAgent() string {
	return "ores/" + Version
}
