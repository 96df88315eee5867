package models

import (
	"errors"
	"fmt"
	"strings"

	internal_gcp "github.com/Fedja/cloud-tools/internal/clouds/gcp"
	"github.com/spf13/viper"
)

// Configuration keys. They double as flag names and config file keys.
const (
	KeyName                          = "name"
	KeyImageVersion                  = "image-version"
	KeyMasterMachineType             = "master-machine-type"
	KeyMasterBootDiskSize            = "master-boot-disk-size"
	KeyNumMasterLocalSSDs            = "num-master-local-ssds"
	KeyNumPreemptibleWorkers         = "num-preemptible-workers"
	KeyNumWorkerLocalSSDs            = "num-worker-local-ssds"
	KeyNumWorkers                    = "num-workers"
	KeyPreemptibleWorkerBootDiskSize = "preemptible-worker-boot-disk-size"
	KeyWorkerBootDiskSize            = "worker-boot-disk-size"
	KeyWorkerMachineType             = "worker-machine-type"
	KeyZone                          = "zone"
	KeyProperties                    = "properties"
	KeyVEP                           = "vep"
	KeyProject                       = "project"
	KeyRegion                        = "region"
)

const (
	DefaultImageVersion                  = "1.1"
	DefaultMasterMachineType             = "n1-highmem-8"
	DefaultMasterBootDiskSize            = "100GB"
	DefaultNumMasterLocalSSDs            = "0"
	DefaultNumPreemptibleWorkers         = "0"
	DefaultNumWorkerLocalSSDs            = "0"
	DefaultNumWorkers                    = "2"
	DefaultPreemptibleWorkerBootDiskSize = "40GB"
	DefaultWorkerBootDiskSize            = "40GB"
	DefaultWorkerMachineType             = "n1-standard-8"
	DefaultZone                          = "us-central1-b"
)

var ErrMissingClusterName = errors.New("cluster name is required")

// ClusterConfig is the fully resolved set of parameters for one cluster.
// Counts and sizes are kept as strings and handed to gcloud verbatim.
type ClusterConfig struct {
	Name                          string `yaml:"name"                              json:"name"`
	ImageVersion                  string `yaml:"image-version"                     json:"image-version"`
	MasterMachineType             string `yaml:"master-machine-type"               json:"master-machine-type"`
	MasterBootDiskSize            string `yaml:"master-boot-disk-size"             json:"master-boot-disk-size"`
	NumMasterLocalSSDs            string `yaml:"num-master-local-ssds"             json:"num-master-local-ssds"`
	NumPreemptibleWorkers         string `yaml:"num-preemptible-workers"           json:"num-preemptible-workers"`
	NumWorkerLocalSSDs            string `yaml:"num-worker-local-ssds"             json:"num-worker-local-ssds"`
	NumWorkers                    string `yaml:"num-workers"                       json:"num-workers"`
	PreemptibleWorkerBootDiskSize string `yaml:"preemptible-worker-boot-disk-size" json:"preemptible-worker-boot-disk-size"`
	WorkerBootDiskSize            string `yaml:"worker-boot-disk-size"             json:"worker-boot-disk-size"`
	WorkerMachineType             string `yaml:"worker-machine-type"               json:"worker-machine-type"`
	Zone                          string `yaml:"zone"                              json:"zone"`
	Properties                    string `yaml:"properties,omitempty"              json:"properties,omitempty"`
	VEP                           bool   `yaml:"vep"                               json:"vep"`
	Project                       string `yaml:"project,omitempty"                 json:"project,omitempty"`
	Region                        string `yaml:"region,omitempty"                  json:"region,omitempty"`
}

// NewClusterConfig returns a config named name with every other field defaulted.
func NewClusterConfig(name string) ClusterConfig {
	return ClusterConfig{
		Name:                          name,
		ImageVersion:                  DefaultImageVersion,
		MasterMachineType:             DefaultMasterMachineType,
		MasterBootDiskSize:            DefaultMasterBootDiskSize,
		NumMasterLocalSSDs:            DefaultNumMasterLocalSSDs,
		NumPreemptibleWorkers:         DefaultNumPreemptibleWorkers,
		NumWorkerLocalSSDs:            DefaultNumWorkerLocalSSDs,
		NumWorkers:                    DefaultNumWorkers,
		PreemptibleWorkerBootDiskSize: DefaultPreemptibleWorkerBootDiskSize,
		WorkerBootDiskSize:            DefaultWorkerBootDiskSize,
		WorkerMachineType:             DefaultWorkerMachineType,
		Zone:                          DefaultZone,
	}
}

// SetDefaults registers every default on v so that config files and flags
// layer over the same values NewClusterConfig uses.
func SetDefaults(v *viper.Viper) {
	for key, value := range NewClusterConfig("").settings() {
		if key == KeyName {
			continue
		}
		v.SetDefault(key, value)
	}
}

// settings maps each configuration key to its value in c.
func (c ClusterConfig) settings() map[string]interface{} {
	return map[string]interface{}{
		KeyName:                          c.Name,
		KeyImageVersion:                  c.ImageVersion,
		KeyMasterMachineType:             c.MasterMachineType,
		KeyMasterBootDiskSize:            c.MasterBootDiskSize,
		KeyNumMasterLocalSSDs:            c.NumMasterLocalSSDs,
		KeyNumPreemptibleWorkers:         c.NumPreemptibleWorkers,
		KeyNumWorkerLocalSSDs:            c.NumWorkerLocalSSDs,
		KeyNumWorkers:                    c.NumWorkers,
		KeyPreemptibleWorkerBootDiskSize: c.PreemptibleWorkerBootDiskSize,
		KeyWorkerBootDiskSize:            c.WorkerBootDiskSize,
		KeyWorkerMachineType:             c.WorkerMachineType,
		KeyZone:                          c.Zone,
		KeyProperties:                    c.Properties,
		KeyVEP:                           c.VEP,
		KeyProject:                       c.Project,
		KeyRegion:                        c.Region,
	}
}

func ReadClusterConfigFromViper(v *viper.Viper) ClusterConfig {
	return ClusterConfig{
		Name:                          strings.TrimSpace(v.GetString(KeyName)),
		ImageVersion:                  v.GetString(KeyImageVersion),
		MasterMachineType:             v.GetString(KeyMasterMachineType),
		MasterBootDiskSize:            v.GetString(KeyMasterBootDiskSize),
		NumMasterLocalSSDs:            v.GetString(KeyNumMasterLocalSSDs),
		NumPreemptibleWorkers:         v.GetString(KeyNumPreemptibleWorkers),
		NumWorkerLocalSSDs:            v.GetString(KeyNumWorkerLocalSSDs),
		NumWorkers:                    v.GetString(KeyNumWorkers),
		PreemptibleWorkerBootDiskSize: v.GetString(KeyPreemptibleWorkerBootDiskSize),
		WorkerBootDiskSize:            v.GetString(KeyWorkerBootDiskSize),
		WorkerMachineType:             v.GetString(KeyWorkerMachineType),
		Zone:                          v.GetString(KeyZone),
		Properties:                    v.GetString(KeyProperties),
		VEP:                           v.GetBool(KeyVEP),
		Project:                       v.GetString(KeyProject),
		Region:                        v.GetString(KeyRegion),
	}
}

// Validate checks the only two things the command cannot do without: a
// cluster name and a master machine type with a known memory size.
func (c ClusterConfig) Validate() error {
	if c.Name == "" {
		return ErrMissingClusterName
	}
	if _, err := internal_gcp.MachineMemoryGB(c.MasterMachineType); err != nil {
		return fmt.Errorf("invalid master machine type: %w", err)
	}
	return nil
}
