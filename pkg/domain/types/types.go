package types

// AppName is the application name used for CLI metadata and env prefixes
const AppName = "datafetch"

// Version is set via -ldflags at build time
var Version = "dev"
