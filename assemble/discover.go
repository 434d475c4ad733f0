package assemble

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/maruel/natural"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"svgsprite/archive"
	"svgsprite/config"
)

// defaultArchivePattern selects entries when pattern names archive itself.
const defaultArchivePattern = "**/*.svg"

// Source is a single discovered input document.
type Source struct {
	// Name is the path as discovered, for archive entries it is archive path
	// joined with (decoded) entry name.
	Name string
	// Stem is base name without extension.
	Stem string
	// Open returns reader for source content.
	Open func() (io.ReadCloser, error)
}

// DiscoverOptions controls source discovery.
type DiscoverOptions struct {
	Order config.DiscoveryOrder
	// CodePage is used for non UTF-8 entry names in archives.
	CodePage encoding.Encoding
}

// Discover resolves pattern into ordered list of sources. Pattern is either
// filesystem glob (doublestar syntax) or path to existing zip archive
// optionally followed by glob for entries inside it
// ("icons.zip/svg/**/*.svg"). Zero matches is not an error.
func Discover(ctx context.Context, pattern string, opts DiscoverOptions, log *zap.Logger) ([]Source, error) {
	if len(pattern) == 0 {
		return nil, errors.New("empty source pattern")
	}
	if log == nil {
		log = zap.NewNop()
	}

	arc, inner, err := splitArchivePattern(ctx, pattern)
	if err != nil {
		return nil, err
	}

	var sources []Source
	if len(arc) > 0 {
		sources, err = discoverArchive(ctx, arc, inner, opts.CodePage, log)
	} else {
		sources, err = discoverFiles(ctx, pattern, log)
	}
	if err != nil {
		return nil, err
	}

	switch opts.Order {
	case config.DiscoveryOrderNatural:
		sort.SliceStable(sources, func(i, j int) bool { return natural.Less(sources[i].Name, sources[j].Name) })
	default:
		sort.SliceStable(sources, func(i, j int) bool { return sources[i].Name < sources[j].Name })
	}

	log.Debug("Sources discovered", zap.String("pattern", pattern), zap.Int("count", len(sources)), zap.Stringer("order", opts.Order))
	return sources, nil
}

// splitArchivePattern walks pattern prefixes looking for existing zip
// archive. When found it returns archive path and pattern for entries inside
// it (always with forward slashes).
func splitArchivePattern(ctx context.Context, pattern string) (string, string, error) {
	for head := pattern; len(head) != 0; head, _ = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return "", "", err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))
		if len(head) == 0 {
			break
		}

		fi, err := os.Stat(head)
		if err != nil {
			// does not exist - probably glob or path in archive
			continue
		}
		if !fi.Mode().IsRegular() {
			// directories and everything else are handled by glob
			break
		}

		ok, err := isArchiveFile(head)
		if err != nil {
			return "", "", fmt.Errorf("unable to check archive type: %w", err)
		}
		if !ok {
			break
		}
		inner := strings.TrimPrefix(strings.TrimPrefix(pattern, head), string(filepath.Separator))
		if len(inner) == 0 {
			inner = defaultArchivePattern
		}
		return head, filepath.ToSlash(inner), nil
	}
	return "", "", nil
}

func discoverFiles(ctx context.Context, pattern string, log *zap.Logger) ([]Source, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("unable to expand pattern %q: %w", pattern, err)
	}

	sources := make([]Source, 0, len(matches))
	for _, name := range matches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fi, err := os.Stat(name)
		if err != nil {
			log.Warn("Skipping path", zap.String("path", name), zap.Error(err))
			continue
		}
		if !fi.Mode().IsRegular() {
			continue
		}
		sources = append(sources, Source{
			Name: name,
			Stem: stem(filepath.Base(name)),
			Open: func() (io.ReadCloser, error) { return os.Open(name) },
		})
	}
	return sources, nil
}

func discoverArchive(ctx context.Context, arc, pattern string, cp encoding.Encoding, log *zap.Logger) ([]Source, error) {
	var sources []Source
	err := archive.Walk(arc, pattern, func(arc string, f *zip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		entry := f.FileHeader.Name
		name := entry
		if cp != nil && f.FileHeader.NonUTF8 {
			// forcing zip file name encoding
			if n, err := cp.NewDecoder().String(entry); err == nil {
				name = n
			} else {
				n, _ = ianaindex.IANA.Name(cp)
				log.Warn("Unable to convert archive name from specified encoding",
					zap.String("charset", n), zap.String("path", entry), zap.Error(err))
			}
		}

		sources = append(sources, Source{
			Name: filepath.Join(arc, filepath.FromSlash(name)),
			Stem: stem(path.Base(name)),
			Open: func() (io.ReadCloser, error) { return archive.OpenEntry(arc, entry) },
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to process archive %q: %w", arc, err)
	}
	return sources, nil
}

func stem(base string) string {
	return strings.TrimSuffix(base, path.Ext(base))
}
