package config

// CLI flag parsing: one flag.FlagSet per subcommand, shared display flags
// registered on each. Flags are applied after LoadEnv so the precedence is
// built-in < environment < flag.

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/egoengine/clipmill/internal/term"
)

// version is shown in --version and help; override at build time with
// -ldflags "-X ...config.version=...".
var version = "1.0.0-dev"

// ParseArgs parses the subcommand and its flags into cfg. On help or
// version requests it prints and exits. A missing or unknown subcommand is
// an error.
func ParseArgs(cfg *Config, args []string) error {
	if len(args) == 0 {
		printUsage()
		return fmt.Errorf("missing command")
	}

	switch args[0] {
	case "-h", "--help", "help":
		printUsage()
		os.Exit(0)
	case "-V", "--version", "version":
		fmt.Printf("clipmill %s\n", version)
		os.Exit(0)
	}

	cmd, rest := args[0], args[1:]
	switch Command(cmd) {
	case CmdTune:
		return parseTune(cfg, rest)
	case CmdFix:
		return parseFix(cfg, rest)
	case CmdEq:
		return parseEq(cfg, rest)
	case CmdMosaic:
		return parseMosaic(cfg, rest)
	case CmdCheck:
		cfg.Command = CmdCheck
		return newFlagSet(cfg, "check").Parse(rest)
	default:
		printUsage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// newFlagSet builds a FlagSet carrying the flags every subcommand shares.
func newFlagSet(cfg *Config, name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "verbose output (tee ffmpeg stderr)")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "shorthand for --verbose")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "append logs to file")
	fs.StringVar(&cfg.FFmpegBin, "ffmpeg", cfg.FFmpegBin, "ffmpeg binary")
	fs.StringVar(&cfg.FFprobeBin, "ffprobe", cfg.FFprobeBin, "ffprobe binary")
	fs.Var(&colorModeValue{&cfg.ColorMode}, "color", "color mode: auto, always, never")

	return fs
}

func parseTune(cfg *Config, args []string) error {
	cfg.Command = CmdTune
	t := &cfg.Tune
	fs := newFlagSet(cfg, "tune")
	fs.StringVar(&t.Input, "i", t.Input, "input clip path")
	fs.StringVar(&t.Output, "o", t.Output, "output clip path")
	fs.Float64Var(&t.Exposure, "exposure", t.Exposure, "brightness multiplier (>1 brighter)")
	fs.Float64Var(&t.Contrast, "contrast", t.Contrast, "contrast multiplier around mid-gray")
	fs.Float64Var(&t.GainR, "r", t.GainR, "red channel multiplier")
	fs.Float64Var(&t.GainG, "g", t.GainG, "green channel multiplier")
	fs.Float64Var(&t.GainB, "b", t.GainB, "blue channel multiplier")
	fs.Float64Var(&t.Gamma, "gamma", t.Gamma, "gamma (1.0 = off; >1 brightens shadows)")
	fs.Int64Var(&t.Limit, "limit", t.Limit, "cap on processed frames (0 = all)")
	return fs.Parse(args)
}

func parseFix(cfg *Config, args []string) error {
	cfg.Command = CmdFix
	f := &cfg.Fix
	fs := newFlagSet(cfg, "fix")
	fs.StringVar(&f.Root, "root", f.Root, "root directory holding per-clip subfolders")
	fs.StringVar(&f.Name, "name", f.Name, "clip filename inside each subfolder")
	fs.Float64Var(&f.Power, "power", f.Power, "gray-world power-mean exponent")
	fs.Float64Var(&f.Epsilon, "eps", f.Epsilon, "gray-world epsilon")
	fs.BoolVar(&cfg.DryRun, "dry-run", cfg.DryRun, "list jobs without touching files")
	return fs.Parse(args)
}

func parseEq(cfg *Config, args []string) error {
	cfg.Command = CmdEq
	e := &cfg.Eq
	fs := newFlagSet(cfg, "eq")
	fs.StringVar(&e.Root, "root", e.Root, "root directory holding per-clip subfolders")
	fs.StringVar(&e.Name, "name", e.Name, "clip filename inside each subfolder")
	fs.Float64Var(&e.Brightness, "brightness", e.Brightness, "brightness offset (-1..1, <0 darker)")
	fs.Float64Var(&e.Contrast, "contrast", e.Contrast, "contrast multiplier (1.0 no change)")
	fs.BoolVar(&cfg.DryRun, "dry-run", cfg.DryRun, "list jobs without touching files")
	return fs.Parse(args)
}

func parseMosaic(cfg *Config, args []string) error {
	cfg.Command = CmdMosaic
	m := &cfg.Mosaic
	fs := newFlagSet(cfg, "mosaic")
	var folders string
	fs.StringVar(&m.Root, "root", m.Root, "root directory holding the listed folders")
	fs.StringVar(&folders, "folders", "", "comma-separated folder names, row-major grid order")
	fs.StringVar(&m.Kind, "kind", m.Kind, "clip filename inside each folder")
	fs.IntVar(&m.Cols, "cols", m.Cols, "grid columns")
	fs.IntVar(&m.Rows, "rows", m.Rows, "grid rows")
	fs.IntVar(&m.FPS, "fps", m.FPS, "output frame rate")
	fs.StringVar(&m.Output, "o", m.Output, "output mosaic path")
	fs.Float64Var(&m.FallbackDur, "fallback-dur", m.FallbackDur, "filler duration when no source has one (seconds)")
	fs.StringVar((*string)(&m.Publish), "publish", string(m.Publish), "deliver the result: 'local' or 's3'")
	fs.StringVar(&m.PublishDir, "publish-dir", m.PublishDir, "destination directory for --publish local")
	fs.StringVar(&m.Key, "key", m.Key, "publish key (default: output basename)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if folders != "" {
		m.Folders = SplitFolders(folders)
	}
	return nil
}

func printUsage() {
	lines := []string{
		"clipmill - batch clip color correction and mosaic composition",
		"",
		"Usage:",
		"  clipmill tune   -i IN -o OUT [--exposure N] [--contrast N] [--r N] [--g N] [--b N] [--gamma N] [--limit N]",
		"  clipmill fix    --root DIR [--name FILE] [--power N] [--eps N] [--dry-run]",
		"  clipmill eq     --root DIR [--name FILE] [--brightness N] [--contrast N] [--dry-run]",
		"  clipmill mosaic --root DIR --folders a,b,c --cols C --rows R [-o OUT] [--fps N]",
		"                  [--kind FILE] [--fallback-dur S] [--publish local|s3] [--publish-dir DIR] [--key KEY]",
		"  clipmill check",
		"",
		"Common flags: --verbose, --color auto|always|never, --log FILE, --ffmpeg BIN, --ffprobe BIN",
		"Environment:  CLIPMILL_FFMPEG, CLIPMILL_FFPROBE, CLIPMILL_TMPDIR, CLIPMILL_LOG_LEVEL,",
		"              CLIPMILL_LOG_FILE, S3_BUCKET, S3_REGION, S3_ENDPOINT",
	}
	fmt.Fprintln(os.Stderr, strings.Join(lines, "\n"))
}

// colorModeValue adapts term.Mode to the flag.Value interface.
type colorModeValue struct{ p *term.Mode }

func (c *colorModeValue) String() string {
	if c.p == nil {
		return string(term.ModeAuto)
	}
	return string(*c.p)
}

func (c *colorModeValue) Set(s string) error {
	switch term.Mode(strings.ToLower(s)) {
	case term.ModeAuto:
		*c.p = term.ModeAuto
	case term.ModeAlways:
		*c.p = term.ModeAlways
	case term.ModeNever:
		*c.p = term.ModeNever
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", s)
	}
	return nil
}
