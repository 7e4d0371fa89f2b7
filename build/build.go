package build

var (
	Name    = "htmlwalk"
	Version = "v0.0.1+dev"
)
