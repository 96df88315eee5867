package gcp

import (
	"fmt"
	"math"
	"strings"

	internal_gcp "github.com/Fedja/cloud-tools/internal/clouds/gcp"
)

// DriverMemoryFraction is the share of the master's memory given to the
// Spark driver.
const DriverMemoryFraction = 0.8

const (
	PrefixSpark = "spark"
	PrefixHDFS  = "hdfs"
)

// Property is one entry of the gcloud --properties flag, rendered as
// prefix:key=value.
type Property struct {
	Prefix string
	Key    string
	Value  string
}

func (p Property) String() string {
	return fmt.Sprintf("%s:%s=%s", p.Prefix, p.Key, p.Value)
}

// tuningProperties follow the driver memory entry, in this order.
var tuningProperties = []Property{
	{Prefix: PrefixSpark, Key: "spark.driver.maxResultSize", Value: "0"},
	{Prefix: PrefixSpark, Key: "spark.task.maxFailures", Value: "20"},
	{Prefix: PrefixSpark, Key: "spark.kryoserializer.buffer.max", Value: "1g"},
	{Prefix: PrefixSpark, Key: "spark.driver.extraJavaOptions", Value: "-Xss4M"},
	{Prefix: PrefixSpark, Key: "spark.executor.extraJavaOptions", Value: "-Xss4M"},
	{Prefix: PrefixHDFS, Key: "dfs.replication", Value: "1"},
}

// DriverMemoryGB rounds the driver's share of memoryGB down to whole GiB.
func DriverMemoryGB(memoryGB float64) int {
	return int(math.Floor(memoryGB * DriverMemoryFraction))
}

// ClusterProperties returns the driver memory entry for masterMachineType
// followed by the fixed tuning entries.
func ClusterProperties(masterMachineType string) ([]Property, error) {
	mem, err := internal_gcp.MachineMemoryGB(masterMachineType)
	if err != nil {
		return nil, err
	}

	props := make([]Property, 0, len(tuningProperties)+1)
	props = append(props, Property{
		Prefix: PrefixSpark,
		Key:    "spark.driver.memory",
		Value:  fmt.Sprintf("%dg", DriverMemoryGB(mem)),
	})
	return append(props, tuningProperties...), nil
}

// BuildProperties renders ClusterProperties as the comma-joined value of
// the --properties flag.
func BuildProperties(masterMachineType string) (string, error) {
	props, err := ClusterProperties(masterMachineType)
	if err != nil {
		return "", err
	}

	entries := make([]string, len(props))
	for i, p := range props {
		entries[i] = p.String()
	}
	return strings.Join(entries, ","), nil
}

// MergeProperties appends user supplied properties after the derived ones.
func MergeProperties(derived, extra string) string {
	extra = strings.Trim(strings.TrimSpace(extra), ",")
	if extra == "" {
		return derived
	}
	return derived + "," + extra
}
