// Package check provides system diagnostics (the check subcommand) and
// pre-run dependency validation for ffmpeg, ffprobe, and the encoders and
// filters the jobs rely on.
package check

import (
	"bytes"
	"errors"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

// Sentinel errors returned by Deps when a required tool or capability is missing.
var (
	ErrFfmpegNotFound  = errors.New("ffmpeg not found on PATH")
	ErrFfprobeNotFound = errors.New("ffprobe not found on PATH")
	ErrX264Missing     = errors.New("ffmpeg build lacks the libx264 encoder")
)

// Deps verifies the external tools every job needs: ffmpeg, ffprobe, and an
// ffmpeg built with libx264. Called before any pipeline work starts so a
// bad environment fails fast instead of mid-batch.
func Deps(ffmpegBin, ffprobeBin string) error {
	if _, err := exec.LookPath(ffmpegBin); err != nil {
		return ErrFfmpegNotFound
	}
	if _, err := exec.LookPath(ffprobeBin); err != nil {
		return ErrFfprobeNotFound
	}
	if !hasEncoder(ffmpegBin, "libx264") {
		return ErrX264Missing
	}
	return nil
}

// Run executes the interactive diagnostics flow: tool availability, encoder
// support, and filter support for pad/xstack/eq/color. Informational only;
// it does not stop on failure.
func Run(ffmpegBin, ffprobeBin string, log *logrus.Logger) {
	log.Info("=== System Check ===")

	checkTool(log, ffmpegBin, "ffmpeg")
	checkTool(log, ffprobeBin, "ffprobe")

	if hasEncoder(ffmpegBin, "libx264") {
		log.Info("libx264 encoder: available")
	} else {
		log.Error("libx264 encoder: MISSING (outputs will not be browser-safe H.264)")
	}

	for _, f := range []string{"pad", "xstack", "eq", "setpts"} {
		if hasFilter(ffmpegBin, f) {
			log.Infof("filter %s: available", f)
		} else {
			log.Errorf("filter %s: MISSING", f)
		}
	}

	if hasDemuxer(ffmpegBin, "lavfi") {
		log.Info("lavfi input device: available (filler tiles supported)")
	} else {
		log.Error("lavfi input device: MISSING (missing grid sources cannot be filled)")
	}
}

func checkTool(log *logrus.Logger, bin, name string) {
	path, err := exec.LookPath(bin)
	if err != nil {
		log.Errorf("%s: NOT FOUND on PATH", name)
		return
	}
	log.WithField("path", path).Infof("%s: found", name)

	if v := toolVersion(bin); v != "" {
		log.Infof("  %s", v)
	}
}

// toolVersion returns the first line of "-version" output.
func toolVersion(bin string) string {
	out, err := exec.Command(bin, "-version").Output()
	if err != nil {
		return ""
	}
	line, _, _ := bytes.Cut(out, []byte("\n"))
	return strings.TrimSpace(string(line))
}

func hasEncoder(bin, name string) bool {
	return listContains(bin, "-encoders", name)
}

func hasFilter(bin, name string) bool {
	return listContains(bin, "-filters", name)
}

func hasDemuxer(bin, name string) bool {
	return listContains(bin, "-devices", name) || listContains(bin, "-formats", name)
}

func listContains(bin, listFlag, name string) bool {
	out, err := exec.Command(bin, "-hide_banner", listFlag).Output()
	if err != nil {
		return false
	}
	for _, line := range strings.Split(string(out), "\n") {
		fields := strings.Fields(line)
		for _, f := range fields {
			if f == name {
				return true
			}
		}
	}
	return false
}
