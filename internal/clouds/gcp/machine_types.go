package internal_gcp

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v2"
)

var ErrUnknownMachineType = errors.New("unknown machine type")

type MachineTypeData struct {
	MachineTypes map[string]float64 `yaml:"machineTypes"`
}

var (
	loadOnce     sync.Once
	machineTypes map[string]float64
	loadErr      error
)

func loadMachineTypes() (map[string]float64, error) {
	loadOnce.Do(func() {
		raw, err := GetMachineTypeData()
		if err != nil {
			loadErr = fmt.Errorf("failed to read machine type data: %w", err)
			return
		}

		var data MachineTypeData
		if err := yaml.Unmarshal(raw, &data); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal machine type data: %w", err)
			return
		}
		if len(data.MachineTypes) == 0 {
			loadErr = errors.New("machine type data is empty")
			return
		}
		machineTypes = data.MachineTypes
	})
	return machineTypes, loadErr
}

// MachineMemoryGB returns the memory of machineType in GiB. Names match
// exactly; gcloud only accepts the lowercase form.
func MachineMemoryGB(machineType string) (float64, error) {
	table, err := loadMachineTypes()
	if err != nil {
		return 0, err
	}

	mem, ok := table[machineType]
	if !ok {
		return 0, fmt.Errorf(
			"%w: %q (supported: %s)",
			ErrUnknownMachineType,
			machineType,
			strings.Join(SupportedMachineTypes(), ", "),
		)
	}
	return mem, nil
}

func IsValidMachineType(machineType string) bool {
	_, err := MachineMemoryGB(machineType)
	return err == nil
}

// SupportedMachineTypes returns the known machine types in sorted order.
func SupportedMachineTypes() []string {
	table, err := loadMachineTypes()
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
