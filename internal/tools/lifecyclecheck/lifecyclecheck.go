// Package lifecyclecheck evaluates one lifecycle request document offline:
// it runs the phase resolver or a guard against the document input and
// prints the verdict as localized JSON.
package lifecyclecheck

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gopkg.in/yaml.v3"

	entrypoint "github.com/louisbranch/hackathon.space/internal/platform/cmd"
	apperrors "github.com/louisbranch/hackathon.space/internal/platform/errors"
	"github.com/louisbranch/hackathon.space/internal/platform/i18n/catalog"
	"github.com/louisbranch/hackathon.space/internal/platform/otel"
	"github.com/louisbranch/hackathon.space/internal/platform/timeouts"
	"github.com/louisbranch/hackathon.space/internal/services/hackathon/domain/timeline"
	"github.com/louisbranch/hackathon.space/internal/services/hackathon/domain/verdict"
)

// ErrInvalid is returned in strict mode when the evaluated request is
// refused. The returned error also wraps the gRPC status of the first error.
var ErrInvalid = errors.New("request refused")

// Config holds evaluator configuration.
type Config struct {
	File    string        `env:"HACKATHON_SPACE_LIFECYCLE_FILE" envDefault:"-"`
	Locale  string        `env:"HACKATHON_SPACE_LIFECYCLE_LOCALE" envDefault:"en-US"`
	Now     string        `env:"HACKATHON_SPACE_LIFECYCLE_NOW"`
	Timeout time.Duration `env:"HACKATHON_SPACE_LIFECYCLE_TIMEOUT"`
	Strict  bool          `env:"HACKATHON_SPACE_LIFECYCLE_STRICT"`
	NoTrace bool          `env:"HACKATHON_SPACE_LIFECYCLE_NO_TRACE"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = timeouts.Evaluation
	}
	fs.StringVar(&cfg.File, "file", cfg.File, "request document path, - for stdin")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "locale used when the document has none")
	fs.StringVar(&cfg.Now, "now", cfg.Now, "evaluation instant used when the document has none (default: current time)")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "overall timeout")
	fs.BoolVar(&cfg.Strict, "strict", cfg.Strict, "exit with an error when the request is refused")
	fs.BoolVar(&cfg.NoTrace, "no-trace", cfg.NoTrace, "skip trace export even when an OTLP endpoint is configured")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if cfg.Now != "" {
		if _, ok := timeline.ParseDate(cfg.Now); !ok {
			return Config{}, fmt.Errorf("invalid -now %q", cfg.Now)
		}
	}
	return cfg, nil
}

// RunOptions returns the entrypoint options for cfg.
func (c Config) RunOptions() entrypoint.RunOptions {
	options := entrypoint.RunOptions{}
	if c.NoTrace {
		options.Telemetry = &otel.Config{}
	}
	return options
}

// document is one evaluation request. YAML and JSON are both accepted.
type document struct {
	Kind   string         `yaml:"kind"`
	Now    string         `yaml:"now"`
	Locale string         `yaml:"locale"`
	Input  map[string]any `yaml:"input"`
}

// Open returns the document reader named by cfg.File.
func Open(cfg Config) (io.ReadCloser, error) {
	if cfg.File == "" || cfg.File == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	file, err := os.Open(cfg.File)
	if err != nil {
		return nil, fmt.Errorf("open request: %w", err)
	}
	return file, nil
}

// Run evaluates the document read from in and writes the report to out.
func Run(ctx context.Context, cfg Config, in io.Reader, out io.Writer) error {
	if in == nil {
		return errors.New("request reader is required")
	}
	if out == nil {
		out = io.Discard
	}

	var doc document
	if err := yaml.NewDecoder(in).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request document is empty")
		}
		return fmt.Errorf("decode request: %w", err)
	}

	kind := Kind(strings.TrimSpace(doc.Kind))
	evaluate, ok := evaluators[kind]
	if !ok {
		return fmt.Errorf("unknown kind %q (known: %s)", doc.Kind, strings.Join(kindNames(), ", "))
	}

	now, err := resolveNow(doc.Now, cfg.Now)
	if err != nil {
		return err
	}
	locale := catalog.Default().Resolve(firstNonEmpty(doc.Locale, cfg.Locale))

	ctx, span := otel.Tracer().Start(ctx, "lifecyclecheck."+string(kind))
	defer span.End()
	span.SetAttributes(
		attribute.String("lifecycle.kind", string(kind)),
		attribute.String("lifecycle.locale", locale),
	)
	if err := ctx.Err(); err != nil {
		return err
	}

	input, err := json.Marshal(doc.Input)
	if err != nil {
		return fmt.Errorf("encode input: %w", err)
	}
	result, err := evaluate(now, input)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid input")
		return fmt.Errorf("%s: %w", kind, err)
	}

	report := newReport(kind, now, locale, result)
	span.SetAttributes(
		attribute.Bool("lifecycle.valid", report.Valid),
		attribute.Int("lifecycle.errors", len(report.Errors)),
		attribute.Int("lifecycle.warnings", len(report.Warnings)),
	)

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if cfg.Strict && !report.Valid {
		span.SetStatus(codes.Error, "refused")
		return refusal(result.verdict, locale, report.Errors[0].Message)
	}
	return nil
}

// refusal wraps ErrInvalid with the gRPC status of the first error.
func refusal(v verdict.Verdict, locale, userMessage string) error {
	var refused *apperrors.Error
	if !errors.As(v.Err(), &refused) {
		return ErrInvalid
	}
	return fmt.Errorf("%w: %w", ErrInvalid, refused.ToGRPCStatus(locale, userMessage))
}

func resolveNow(values ...string) (time.Time, error) {
	for _, value := range values {
		if strings.TrimSpace(value) == "" {
			continue
		}
		now, ok := timeline.ParseDate(value)
		if !ok {
			return time.Time{}, fmt.Errorf("invalid now %q", value)
		}
		return now, nil
	}
	return time.Now().UTC(), nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
