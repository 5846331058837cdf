package settings

// set by -ldflags "-X github.com/liut/finai/pkg/settings.version=..."
var version = "dev"
