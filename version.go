package treeline

// Version is the current treeline release.
var Version = "0.1.0"
