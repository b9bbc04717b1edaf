package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"sigs.k8s.io/yaml"

	"github.com/osanchez42/Racktables-to-Device42-Migration/pkg/version"
)

type VersionOptions struct {
	Output string
}

func DefaultVersionOptions() *VersionOptions {
	return &VersionOptions{
		Output: "",
	}
}

func NewCmdVersion() *cobra.Command {
	o := DefaultVersionOptions()
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print rt2d42 version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.Run(cmd.Context(), args)
		},
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *VersionOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVarP(&o.Output, "output", "o", o.Output, "Output format. One of: (json, yaml)")
}

func (o *VersionOptions) Run(ctx context.Context, args []string) error {
	versionInfo := version.Get()
	switch o.Output {
	case jsonFormat:
		marshalled, err := json.MarshalIndent(versionInfo, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(marshalled))
	case yamlFormat:
		marshalled, err := yaml.Marshal(versionInfo)
		if err != nil {
			return err
		}
		fmt.Print(string(marshalled))
	default:
		fmt.Printf("rt2d42 Version: %s\n", versionInfo.String())
	}
	return nil
}
