// Package config holds runtime configuration: defaults, environment
// overrides, CLI flag parsing, and validation. Job parameter structs carry
// validate tags; [Config.Validate] runs the active job's struct through the
// validator so range errors abort before any external process is spawned.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/egoengine/clipmill/internal/publish"
	"github.com/egoengine/clipmill/internal/term"
)

// Command selects which job the process runs.
type Command string

const (
	CmdTune   Command = "tune"   // Single-clip exposure/contrast/gain/gamma.
	CmdFix    Command = "fix"    // Batch in-place gray-world equalization.
	CmdEq     Command = "eq"     // Batch in-place eq-filter adjustment.
	CmdMosaic Command = "mosaic" // Grid composition.
	CmdCheck  Command = "check"  // System diagnostics.
)

// PublishMode selects where a finished mosaic is delivered.
type PublishMode string

const (
	PublishNone  PublishMode = ""      // Leave the output where it was written.
	PublishLocal PublishMode = "local" // Copy into the publish directory.
	PublishS3    PublishMode = "s3"    // Upload to the configured bucket.
)

// TuneParams configures the single-clip color pipeline job.
type TuneParams struct {
	Input    string  `validate:"required"`
	Output   string  `validate:"required"`
	Exposure float64 `validate:"gt=0"`
	Contrast float64 `validate:"gt=0"`
	GainR    float64 `validate:"gt=0"`
	GainG    float64 `validate:"gt=0"`
	GainB    float64 `validate:"gt=0"`
	Gamma    float64 `validate:"gt=0"`
	Limit    int64   `validate:"gte=0"` // 0 = all frames
}

// FixParams configures the batch gray-world job.
type FixParams struct {
	Root    string  `validate:"required"`
	Name    string  `validate:"required"` // per-folder clip filename
	Power   float64 `validate:"gte=1"`
	Epsilon float64 `validate:"gt=0"`
}

// EqParams configures the declarative brightness/contrast batch job.
type EqParams struct {
	Root       string  `validate:"required"`
	Name       string  `validate:"required"`
	Brightness float64 `validate:"gte=-1,lte=1"`
	Contrast   float64 `validate:"gt=0"`
}

// MosaicParams configures the grid composition job. Cols and Rows have no
// defaults: a grid job without an explicit shape is a configuration error.
type MosaicParams struct {
	Root        string   `validate:"required"`
	Folders     []string `validate:"required,min=1"`
	Kind        string   `validate:"required"` // clip filename inside each folder
	Cols        int      `validate:"gte=1"`
	Rows        int      `validate:"gte=1"`
	FPS         int      `validate:"gt=0"`
	Output      string   `validate:"required"`
	FallbackDur float64  `validate:"gt=0"` // filler length when no source has a duration
	Publish     PublishMode
	PublishDir  string // destination for PublishLocal
	Key         string // object key / relative path; defaults to the output basename
}

// Config holds all runtime settings. Populated by [Default], then mutated by
// [LoadEnv] and [ParseArgs] before being passed (by pointer) to packages
// that need it.
type Config struct {
	Command Command

	// External tools.
	FFmpegBin  string
	FFprobeBin string
	TempDir    string // base for per-job private temp dirs; "" = os default

	// Encode settings.
	Preset    string // libx264 preset for every encode
	StreamCRF int    // raw-pipe writer quality (tune/fix/eq)
	TileCRF   int    // tile normalization and mosaic quality

	// Behavior.
	DryRun bool

	// Display and logging.
	Verbose   bool
	ColorMode term.Mode
	LogLevel  string
	LogFile   string

	// Job parameter sections; only the one matching Command is used.
	Tune   TuneParams
	Fix    FixParams
	Eq     EqParams
	Mosaic MosaicParams

	// S3 publishing (from environment).
	S3 publish.S3Config
}

// Default returns a Config with the defaults every job starts from.
func Default() Config {
	return Config{
		FFmpegBin:  "ffmpeg",
		FFprobeBin: "ffprobe",
		Preset:     "veryfast",
		StreamCRF:  18,
		TileCRF:    20,
		ColorMode:  term.ModeAuto,
		LogLevel:   "info",
		Tune: TuneParams{
			Exposure: 1, Contrast: 1,
			GainR: 1, GainG: 1, GainB: 1,
			Gamma: 1,
		},
		Fix: FixParams{
			Name:    "cropped_video.mp4",
			Power:   6.0,
			Epsilon: 1e-6,
		},
		Eq: EqParams{
			Name:       "cropped_video.mp4",
			Brightness: -0.05,
			Contrast:   1.10,
		},
		Mosaic: MosaicParams{
			Kind:        "cropped_video.mp4",
			FPS:         30,
			Output:      "teaser.mp4",
			FallbackDur: 10.0,
		},
	}
}

var validate = validator.New()

// Validate checks enum fields and runs the active job's parameter struct
// through the validator. Configuration errors abort the whole run before
// any encoding work starts.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case term.ModeAuto, term.ModeAlways, term.ModeNever:
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	var err error
	switch c.Command {
	case CmdTune:
		err = validate.Struct(&c.Tune)
	case CmdFix:
		err = validate.Struct(&c.Fix)
	case CmdEq:
		err = validate.Struct(&c.Eq)
	case CmdMosaic:
		if err := c.validateMosaic(); err != nil {
			return err
		}
	case CmdCheck:
		return nil
	default:
		return fmt.Errorf("unknown command %q", c.Command)
	}
	if err != nil {
		return friendlyValidation(err)
	}
	return nil
}

func (c *Config) validateMosaic() error {
	m := &c.Mosaic
	if err := validate.Struct(m); err != nil {
		return friendlyValidation(err)
	}
	switch m.Publish {
	case PublishNone, PublishLocal, PublishS3:
	default:
		return fmt.Errorf("invalid publish mode %q (use 'local' or 's3')", m.Publish)
	}
	if m.Publish == PublishLocal && m.PublishDir == "" {
		return errors.New("publish=local requires --publish-dir")
	}
	if m.Publish == PublishS3 && (c.S3.Bucket == "" || c.S3.Region == "") {
		return publish.ErrS3NotConfigured
	}
	if len(m.Folders) != m.Cols*m.Rows {
		return fmt.Errorf("grid %dx%d wants %d folders, got %d",
			m.Cols, m.Rows, m.Cols*m.Rows, len(m.Folders))
	}
	return nil
}

// friendlyValidation rewrites the validator's first failure into a flag-level
// message users can act on.
func friendlyValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("missing required parameter %q", field)
	case "gt", "gte", "lt", "lte", "min":
		return fmt.Errorf("parameter %q out of range (%s %s)", field, fe.Tag(), fe.Param())
	default:
		return fmt.Errorf("invalid parameter %q", field)
	}
}

// SplitFolders parses a comma-separated folder list, trimming whitespace
// and dropping empty entries.
func SplitFolders(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
