package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/Fedja/cloud-tools/pkg/models"
	"github.com/Fedja/cloud-tools/pkg/providers/gcp"
	"github.com/Fedja/cloud-tools/pkg/table"
	"sigs.k8s.io/yaml"
)

const (
	OutputText  = "text"
	OutputTable = "table"
	OutputYAML  = "yaml"
)

var OutputFormats = []string{OutputText, OutputTable, OutputYAML}

func ValidateOutputFormat(format string) error {
	for _, f := range OutputFormats {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf(
		"invalid output format %q, must be one of: %s",
		format,
		strings.Join(OutputFormats, ", "),
	)
}

type dryRun struct {
	Cluster models.ClusterConfig `json:"cluster"`
	Command []string             `json:"command"`
}

// RenderCommand prints cmd, which would create cfg's cluster, in format.
func RenderCommand(w io.Writer, format string, cfg models.ClusterConfig, cmd gcp.Command) error {
	switch format {
	case OutputText, "":
		_, err := fmt.Fprintln(w, cmd.String())
		return err

	case OutputTable:
		st := table.NewSettingsTable(w)
		st.AddSetting("binary", cmd.Name)
		st.AddSetting(models.KeyName, cfg.Name)
		for _, arg := range cmd.Args {
			if !strings.HasPrefix(arg, "--") {
				continue
			}
			key, value, _ := strings.Cut(strings.TrimPrefix(arg, "--"), "=")
			st.AddSetting(key, value)
		}
		st.Render()
		return nil

	case OutputYAML:
		out, err := yaml.Marshal(dryRun{
			Cluster: cfg,
			Command: append([]string{cmd.Name}, cmd.Args...),
		})
		if err != nil {
			return fmt.Errorf("failed to marshal command: %w", err)
		}
		_, err = w.Write(out)
		return err

	default:
		return ValidateOutputFormat(format)
	}
}
