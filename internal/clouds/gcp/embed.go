package internal_gcp

import (
	"embed"
)

//go:embed machine_types.yaml
var machineTypeData embed.FS

func GetMachineTypeData() ([]byte, error) {
	data, err := machineTypeData.ReadFile("machine_types.yaml")
	if err != nil {
		return nil, err
	}
	return data, nil
}
