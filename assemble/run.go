package assemble

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/ianaindex"

	"svgsprite/config"
	"svgsprite/state"
	"svgsprite/styles"
	"svgsprite/symbol"
	"svgsprite/utils/debug"
	"svgsprite/utils/images"
)

// ErrMissingPattern is returned when no source pattern is given.
var ErrMissingPattern = errors.New(".svg path required")

// Flags returns command line flags understood by Run. When set they override
// configuration values.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "conflict",
			Usage: "conflicting style rules resolution `POLICY` (supported: " + strings.Join(config.ConflictPolicyNames(), ", ") + ")"},
		&cli.StringFlag{Name: "equality",
			Usage: "declarations comparison `MODE` (supported: " + strings.Join(config.EqualityModeNames(), ", ") + ")"},
		&cli.StringFlag{Name: "order",
			Usage: "sources `ORDER` (supported: " + strings.Join(config.DiscoveryOrderNames(), ", ") + ")"},
		&cli.BoolFlag{Name: "skip-bad", Usage: "skip sources which cannot be read or parsed instead of aborting"},
		&cli.IntFlag{Name: "concurrency", Aliases: []string{"j"}, Usage: "maximum number of sources loaded at the same time, 0 - number of CPUs"},
		&cli.StringFlag{Name: "id-prefix", Usage: "`PREFIX` for all symbol ids"},
		&cli.BoolFlag{Name: "slugify", Usage: "normalize symbol ids to lowercase ASCII slugs"},
		&cli.StringFlag{Name: "preview", Usage: "render PNG preview of every source into `DIR`"},
		&cli.StringFlag{Name: "force-zip-cp",
			Usage: "Force `ENCODING` for ALL non UTF-8 file names in processed archives (see IANA.org for character set names)"},
	}
}

// Run is the action for sprite building command.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.RunLogger().Named("assemble")

	pattern := cmd.Args().Get(0)
	if len(pattern) == 0 {
		return ErrMissingPattern
	}
	dst := cmd.Args().Get(1)
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	if err := applyFlags(cmd, &env.Cfg.Sprite); err != nil {
		return err
	}
	sc := &env.Cfg.Sprite

	// Since zip "standard" does not define file name encoding we may need to
	// force archaic code page for old archives
	cp := cmd.String("force-zip-cp")
	if len(cp) > 0 {
		env.CodePage, err = ianaindex.IANA.Encoding(cp)
		if err != nil || env.CodePage == nil {
			log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
			env.CodePage = nil
		} else {
			n, _ := ianaindex.IANA.Name(env.CodePage)
			log.Debug("Forcefully converting all non UTF-8 file names in archives", zap.String("charset", n))
		}
	}

	opts, err := buildOptions(sc)
	if err != nil {
		return err
	}

	target := dst
	if len(target) == 0 {
		target = "STDOUT"
	}
	log.Info("Processing starting", zap.String("source", pattern), zap.String("destination", target),
		zap.Stringer("conflict", sc.Styles.Conflict), zap.Stringer("equality", sc.Styles.Equality))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	sources, err := Discover(ctx, pattern, DiscoverOptions{Order: sc.Order, CodePage: env.CodePage}, log)
	if err != nil {
		return fmt.Errorf("unable to discover sources: %w", err)
	}
	if len(sources) == 0 {
		log.Warn("No sources matched pattern, sprite will be empty", zap.String("pattern", pattern))
	}
	if env.Rpt != nil {
		env.Rpt.StoreText("sources.txt", dumpSources(sources))
	}

	store := styles.NewStore(styles.Options{Conflict: sc.Styles.Conflict, Equality: sc.Styles.Equality}, log)
	sprite, err := Build(ctx, sources, store, opts, log)
	if env.Rpt != nil {
		env.Rpt.StoreText("styles.txt", store.Dump())
	}
	if err != nil {
		return err
	}

	data := sprite.Bytes()
	if env.Rpt != nil {
		env.Rpt.StoreData("sprite.svg", data)
	}
	if err := writeDestination(dst, data); err != nil {
		return err
	}

	log.Info("Sprite written", zap.String("destination", target), zap.Int("symbols", len(sprite.Fragments)),
		zap.Int("styles", store.Len()), zap.Int("skipped", len(sprite.Skipped)))
	return nil
}

// applyFlags overrides configuration with explicitly set command line flags.
func applyFlags(cmd *cli.Command, sc *config.SpriteConfig) (err error) {
	if cmd.IsSet("conflict") {
		if sc.Styles.Conflict, err = config.ParseConflictPolicy(cmd.String("conflict")); err != nil {
			return err
		}
	}
	if cmd.IsSet("equality") {
		if sc.Styles.Equality, err = config.ParseEqualityMode(cmd.String("equality")); err != nil {
			return err
		}
	}
	if cmd.IsSet("order") {
		if sc.Order, err = config.ParseDiscoveryOrder(cmd.String("order")); err != nil {
			return err
		}
	}
	if cmd.IsSet("skip-bad") {
		sc.OnError = config.ErrorPolicyAbort
		if cmd.Bool("skip-bad") {
			sc.OnError = config.ErrorPolicySkip
		}
	}
	if cmd.IsSet("concurrency") {
		if n := cmd.Int("concurrency"); n >= 0 {
			sc.Concurrency = n
		} else {
			return fmt.Errorf("bad concurrency value: %d", n)
		}
	}
	if cmd.IsSet("id-prefix") {
		sc.Symbol.IDPrefix = cmd.String("id-prefix")
	}
	if cmd.IsSet("slugify") {
		sc.Symbol.Slugify = cmd.Bool("slugify")
	}
	if cmd.IsSet("preview") {
		sc.Preview.Enable = true
		sc.Preview.Destination = cmd.String("preview")
	}
	return nil
}

func buildOptions(sc *config.SpriteConfig) (Options, error) {
	opts := Options{
		Concurrency: sc.Concurrency,
		OnError:     sc.OnError,
		Symbol:      symbol.Options{DefaultViewBox: sc.Symbol.DefaultViewBox},
		IDs: symbol.IDOptions{
			Prefix:   sc.Symbol.IDPrefix,
			Template: sc.Symbol.IDTemplate,
			Slugify:  sc.Symbol.Slugify,
		},
	}
	if !sc.Preview.Enable {
		return opts, nil
	}

	if len(sc.Preview.Destination) == 0 {
		return opts, errors.New("preview destination is not specified")
	}
	bg, err := images.ParseHexColor(sc.Preview.Background)
	if err != nil {
		return opts, err
	}
	if err := os.MkdirAll(sc.Preview.Destination, 0755); err != nil {
		return opts, fmt.Errorf("unable to create preview directory: %w", err)
	}
	opts.Preview = &PreviewOptions{
		Destination: sc.Preview.Destination,
		PreviewOptions: images.PreviewOptions{
			Width:       sc.Preview.Width,
			Height:      sc.Preview.Height,
			StrokeScale: sc.Preview.StrokeScale,
			Background:  bg,
		},
	}
	return opts, nil
}

// writeDestination opens destination once and writes complete document,
// empty name means STDOUT.
func writeDestination(dst string, data []byte) (err error) {
	if len(dst) == 0 {
		if _, err := os.Stdout.Write(data); err != nil {
			return fmt.Errorf("unable to write sprite: %w", err)
		}
		return nil
	}

	if dir := filepath.Dir(dst); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("unable to create output directory: %w", err)
		}
	}
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("unable to create destination file '%s': %w", dst, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("unable to close destination file '%s': %w", dst, cerr)
		}
	}()
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("unable to write sprite: %w", err)
	}
	return nil
}

func dumpSources(sources []Source) string {
	names := make([]string, 0, len(sources))
	for _, s := range sources {
		names = append(names, s.Name)
	}
	tw := debug.NewTreeWriter()
	tw.List(0, "sources", names)
	return tw.String()
}
