package cmd

import (
	"fmt"

	internal_gcp "github.com/Fedja/cloud-tools/internal/clouds/gcp"
	"github.com/Fedja/cloud-tools/pkg/providers/gcp"
	"github.com/Fedja/cloud-tools/pkg/table"
	"github.com/spf13/cobra"
)

func newMachineTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "machine-types",
		Short: "List the master machine types and the driver memory each one gets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := table.NewSettingsTable(cmd.OutOrStdout(), "Machine type", "Resources")
			for _, machineType := range internal_gcp.SupportedMachineTypes() {
				mem, err := internal_gcp.MachineMemoryGB(machineType)
				if err != nil {
					return err
				}
				st.AddSetting(
					machineType,
					fmt.Sprintf("%gGB memory, %dg driver", mem, gcp.DriverMemoryGB(mem)),
				)
			}
			st.Render()
			return nil
		},
	}
}
