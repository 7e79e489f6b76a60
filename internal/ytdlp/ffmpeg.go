package ytdlp

import (
	"os"
	"os/exec"
)

// lookPath is swappable in tests so the probe does not depend on the host PATH.
var lookPath = exec.LookPath

// ProbeFFmpeg locates an ffmpeg binary: first on PATH, then at the configured
// portable path. Returns ("", false) when neither exists. The result decides
// whether extractions may merge separate audio and video streams.
func ProbeFFmpeg(portable string) (string, bool) {
	if p, err := lookPath("ffmpeg"); err == nil {
		return p, true
	}
	if portable != "" {
		if info, err := os.Stat(portable); err == nil && !info.IsDir() {
			return portable, true
		}
	}
	return "", false
}
