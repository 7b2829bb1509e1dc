package show_tooltip

// `show-tooltip` renders the hover text a client would receive for a list of
// bound element and attribute descriptions.

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/walteh/tmplsem/pkg/config"
	"github.com/walteh/tmplsem/pkg/lsp"
	"github.com/walteh/tmplsem/pkg/tooltip"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

type Handler struct {
	fs         afero.Fs
	configPath string
	file       string
}

// DescriptionFile is the on-disk list of candidate bindings at one location.
type DescriptionFile struct {
	Elements   []ElementEntry   `yaml:"elements"`
	Attributes []AttributeEntry `yaml:"attributes"`
}

type ElementEntry struct {
	TypeName      string `yaml:"type_name"`
	Documentation string `yaml:"documentation"`
}

type AttributeEntry struct {
	ReturnTypeName string `yaml:"return_type_name"`
	TypeName       string `yaml:"type_name"`
	PropertyName   string `yaml:"property_name"`
	Documentation  string `yaml:"documentation"`
}

func NewShowTooltipCommand(fs afero.Fs) *cobra.Command {
	me := &Handler{fs: fs}

	cmd := &cobra.Command{
		Use:   "show-tooltip [description-file]",
		Short: "render tooltips for bound element and attribute descriptions",
	}

	cmd.Flags().StringVar(&me.configPath, "config", "", "client config (yaml or hcl), defaults to a markdown client")
	cmd.Args = cobra.ExactArgs(1)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		me.file = args[0]
		return me.Run(cmd.Context(), cmd.OutOrStdout())
	}

	return cmd
}

func (me *Handler) Run(ctx context.Context, out io.Writer) error {
	cfg := config.Default()
	if me.configPath != "" {
		loaded, err := config.Load(me.fs, me.configPath)
		if err != nil {
			return errors.Errorf("loading config: %w", err)
		}
		cfg = loaded
		if cfg.LogLevel != "" {
			ctx = zerolog.Ctx(ctx).Level(cfg.Level()).WithContext(ctx)
		}
	}

	desc, err := me.readDescriptions()
	if err != nil {
		return err
	}

	factory, err := tooltip.NewFactory(lsp.NewCapabilitySource(cfg.ClientCapabilities()))
	if err != nil {
		return errors.Errorf("creating tooltip factory: %w", err)
	}

	elements := tooltip.AggregateElementDescription{}
	for _, e := range desc.Elements {
		elements.Descriptions = append(elements.Descriptions, tooltip.ElementDescription{
			TypeName:      e.TypeName,
			Documentation: e.Documentation,
		})
	}

	attributes := tooltip.AggregateAttributeDescription{}
	for _, a := range desc.Attributes {
		attributes.Descriptions = append(attributes.Descriptions, tooltip.AttributeDescription{
			ReturnTypeName: a.ReturnTypeName,
			TypeName:       a.TypeName,
			PropertyName:   a.PropertyName,
			Documentation:  a.Documentation,
		})
	}

	rendered := false
	if content, ok := factory.TryCreateElementTooltip(ctx, elements); ok {
		fmt.Fprintf(out, "# element (%s)\n%s\n", content.Kind, content.Value)
		rendered = true
	}
	if content, ok := factory.TryCreateAttributeTooltip(ctx, attributes); ok {
		fmt.Fprintf(out, "# attribute (%s)\n%s\n", content.Kind, content.Value)
		rendered = true
	}

	if !rendered {
		zerolog.Ctx(ctx).Info().Str("file", me.file).Msg("nothing to show")
	}
	return nil
}

func (me *Handler) readDescriptions() (*DescriptionFile, error) {
	f, err := me.fs.Open(me.file)
	if err != nil {
		return nil, errors.Errorf("opening descriptions: %w", err)
	}
	defer f.Close()

	var desc DescriptionFile
	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&desc); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Errorf("parsing descriptions: %w", err)
	}
	return &desc, nil
}
