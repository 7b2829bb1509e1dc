package show_tooltip

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const descriptions = `
elements:
  - type_name: Acme.Widgets.Counter
    documentation: |
      <summary>
        Counts clicks on a <see cref="T:Acme.Widgets.Button" />.
      </summary>
attributes:
  - return_type_name: System.Int32
    type_name: Acme.Widgets.Counter
    property_name: Amount
    documentation: <summary>How much to add.</summary>
`

func TestShowTooltip(t *testing.T) {
	tests := []struct {
		name       string
		files      map[string]string
		configPath string
		want       string
		wantErr    bool
	}{
		{
			name:  "default_markdown_client",
			files: map[string]string{"/desc.yaml": descriptions},
			want: "# element (markdown)\n**Counter**\n\nCounts clicks on a `Button`.\n" +
				"# attribute (markdown)\n**int** Counter.**Amount**\n\nHow much to add.\n",
		},
		{
			name: "plain_text_client_from_hcl",
			files: map[string]string{
				"/desc.yaml":  descriptions,
				"/client.hcl": "client {\n  completion_formats = [plaintext]\n}\n",
			},
			configPath: "/client.hcl",
			want: "# element (plaintext)\nCounter\n\nCounts clicks on a `Button`.\n" +
				"# attribute (plaintext)\nint Counter.Amount\n\nHow much to add.\n",
		},
		{
			name:  "nothing_to_show",
			files: map[string]string{"/desc.yaml": "elements: []\n"},
			want:  "",
		},
		{
			name: "bad_config",
			files: map[string]string{
				"/desc.yaml":  descriptions,
				"/client.yml": "client:\n  hover_formats: [html]\n",
			},
			configPath: "/client.yml",
			wantErr:    true,
		},
		{
			name:    "unknown_description_field",
			files:   map[string]string{"/desc.yaml": "elements:\n  - name: Counter\n"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			for name, content := range tt.files {
				require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
			}

			me := &Handler{fs: fs, configPath: tt.configPath, file: "/desc.yaml"}

			var out bytes.Buffer
			err := me.Run(context.Background(), &out)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.String())
		})
	}
}
