package deps

// Default returns the external binaries the pipeline executes. The ffmpeg
// and ffprobe commands are configurable so distro-specific paths work.
func Default(ffmpegCommand, ffprobeCommand string) []Requirement {
	if ffmpegCommand == "" {
		ffmpegCommand = "ffmpeg"
	}
	if ffprobeCommand == "" {
		ffprobeCommand = "ffprobe"
	}
	return []Requirement{
		{
			Name:        "FFmpeg",
			Command:     ffmpegCommand,
			Description: "Extracts, mutes, and remuxes audio and subtitle streams",
		},
		{
			Name:        "FFprobe",
			Command:     ffprobeCommand,
			Description: "Inspects container streams for track selection",
		},
	}
}

// AllAvailable reports whether every non-optional requirement resolved.
func AllAvailable(statuses []Status) bool {
	for _, status := range statuses {
		if !status.Optional && !status.Available {
			return false
		}
	}
	return true
}
