package semantic_tokens

// `semantic-tokens` classifies YAML tree snapshots and prints their ranges,
// either one per line or as the LSP textDocument/semanticTokens result.

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/walteh/tmplsem/pkg/directive"
	"github.com/walteh/tmplsem/pkg/lsp"
	"github.com/walteh/tmplsem/pkg/position"
	"github.com/walteh/tmplsem/pkg/semtok"
	"github.com/walteh/tmplsem/pkg/syntax"
	"gitlab.com/tozd/go/errors"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
)

type Handler struct {
	fs       afero.Fs
	patterns []string
	viewport string
	encode   bool
	registry *directive.Registry
}

// EncodedFile is one file's output in --encode mode.
type EncodedFile struct {
	URI    uri.URI                  `json:"uri"`
	Tokens *protocol.SemanticTokens `json:"tokens"`
}

func NewHandler(fs afero.Fs) *Handler {
	return &Handler{fs: fs, registry: directive.NewDefaultRegistry()}
}

func NewSemanticTokensCommand(fs afero.Fs) *cobra.Command {
	me := NewHandler(fs)

	cmd := &cobra.Command{
		Use:   "semantic-tokens [pattern...]",
		Short: "classify tree snapshots matching the glob patterns",
	}

	cmd.Flags().StringVar(&me.viewport, "range", "", "only emit tokens overlapping line:char-line:char")
	cmd.Flags().BoolVar(&me.encode, "encode", false, "print LSP encoded tokens as JSON")
	cmd.Args = cobra.MinimumNArgs(1)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		me.patterns = args
		return me.Run(cmd.Context(), cmd.OutOrStdout())
	}

	return cmd
}

func (me *Handler) Run(ctx context.Context, out io.Writer) error {
	var bounds *position.Range
	if me.viewport != "" {
		rng, err := ParseRange(me.viewport)
		if err != nil {
			return err
		}
		bounds = &rng
	}

	files, err := me.expand()
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.Errorf("no files match %v", me.patterns)
	}

	var result *multierror.Error
	for _, file := range files {
		if err := me.runFile(ctx, out, file, bounds); err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Str("file", file).Msg("classification failed")
			result = multierror.Append(result, errors.Errorf("%s: %w", file, err))
		}
	}

	return result.ErrorOrNil()
}

func (me *Handler) runFile(ctx context.Context, out io.Writer, file string, bounds *position.Range) error {
	f, err := me.fs.Open(file)
	if err != nil {
		return errors.Errorf("opening tree: %w", err)
	}
	defer f.Close()

	tree, err := syntax.DecodeTree(f, me.registry)
	if err != nil {
		return errors.Errorf("decoding tree: %w", err)
	}

	if err := me.registry.ValidateOccurrences(syntax.Directives(tree.Root)); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("file", file).Msg("directive usage")
	}

	ranges, err := semtok.Classify(ctx, tree, bounds)
	if err != nil {
		return err
	}

	if me.encode {
		abs, err := filepath.Abs(file)
		if err != nil {
			abs = file
		}
		enc := json.NewEncoder(out)
		if err := enc.Encode(EncodedFile{URI: uri.File(abs), Tokens: lsp.EncodeSemanticTokens(ranges)}); err != nil {
			return errors.Errorf("encoding tokens: %w", err)
		}
		return nil
	}

	fmt.Fprintf(out, "%s\n", file)
	for _, r := range ranges {
		fmt.Fprintf(out, "  %-12s %-22s %q\n", r.Range, r.Type, tree.Source.Text(spanOf(tree.Source, r.Range)))
	}
	return nil
}

func spanOf(doc *position.Document, rng position.Range) position.Span {
	start := doc.OffsetOf(rng.Start)
	return position.NewSpan(start, doc.OffsetOf(rng.End)-start)
}

// expand resolves every pattern against the filesystem, sorted and deduplicated.
func (me *Handler) expand() ([]string, error) {
	seen := map[string]bool{}
	var result *multierror.Error

	for _, pattern := range me.patterns {
		pattern = filepath.ToSlash(pattern)
		if !doublestar.ValidatePattern(pattern) {
			result = multierror.Append(result, errors.Errorf("invalid pattern %q", pattern))
			continue
		}

		base, _ := doublestar.SplitPattern(pattern)
		err := afero.Walk(me.fs, filepath.FromSlash(base), func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return nil
			}
			if ok, _ := doublestar.Match(pattern, filepath.ToSlash(path)); ok {
				seen[path] = true
			}
			return nil
		})
		if err != nil {
			result = multierror.Append(result, errors.Errorf("expanding %q: %w", pattern, err))
		}
	}

	files := make([]string, 0, len(seen))
	for f := range seen {
		files = append(files, f)
	}
	sort.Strings(files)

	return files, result.ErrorOrNil()
}

// ParseRange reads a viewport written as line:char-line:char.
func ParseRange(s string) (position.Range, error) {
	var sl, sc, el, ec int
	if _, err := fmt.Sscanf(s, "%d:%d-%d:%d", &sl, &sc, &el, &ec); err != nil {
		return position.Range{}, errors.Errorf("parsing range %q: %w", s, err)
	}

	rng := position.NewRange(sl, sc, el, ec)
	if rng.End.Compare(rng.Start) < 0 {
		return position.Range{}, errors.Errorf("range %q ends before it starts", s)
	}
	return rng, nil
}
