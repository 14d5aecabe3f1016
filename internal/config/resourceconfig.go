package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// ResourceConfig describes the cluster topology the orchestration platform
// hands to every new machine: named instance groups, each listing its member
// instances and their addresses.
type ResourceConfig struct {
	ClusterName    string          `json:"ClusterName,omitempty"`
	InstanceGroups []InstanceGroup `json:"InstanceGroups"`
}

// InstanceGroup is a named set of instances with a shared role.
type InstanceGroup struct {
	Name      string     `json:"Name"`
	Instances []Instance `json:"Instances"`
}

// Instance identifies a single machine in the cluster.
type Instance struct {
	InstanceName      string `json:"InstanceName"`
	CustomerIPAddress string `json:"CustomerIpAddress"`
	AgentIPAddress    string `json:"AgentIpAddress,omitempty"`
}

// LoadResourceConfig reads and parses a resource-config JSON file.
func LoadResourceConfig(path string) (*ResourceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resource config: %w", err)
	}

	var cfg ResourceConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse resource config: %w", err)
	}

	return &cfg, nil
}

// FindInstanceByAddress locates the group and instance owning the given IP
// address. The third return value is false when no instance matches.
func (c *ResourceConfig) FindInstanceByAddress(addr string) (*InstanceGroup, *Instance, bool) {
	for gi := range c.InstanceGroups {
		group := &c.InstanceGroups[gi]
		for ii := range group.Instances {
			if group.Instances[ii].CustomerIPAddress == addr {
				return group, &group.Instances[ii], true
			}
		}
	}
	return nil, nil, false
}

// AddressesOf returns the customer IP addresses of every instance in the
// named group, or nil if the group does not exist.
func (c *ResourceConfig) AddressesOf(groupName string) []string {
	for _, group := range c.InstanceGroups {
		if group.Name != groupName {
			continue
		}
		addrs := make([]string, 0, len(group.Instances))
		for _, inst := range group.Instances {
			addrs = append(addrs, inst.CustomerIPAddress)
		}
		return addrs
	}
	return nil
}

// ProvisioningParameters carries operator-supplied knobs that accompany the
// resource config.
type ProvisioningParameters struct {
	WorkloadManager string `json:"workload_manager,omitempty"`
	ControllerGroup string `json:"controller_group,omitempty"`
}

// LoadProvisioningParameters reads and parses a provisioning-parameters JSON
// file.
func LoadProvisioningParameters(path string) (*ProvisioningParameters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read provisioning parameters: %w", err)
	}

	var params ProvisioningParameters
	if err := json.Unmarshal(data, &params); err != nil {
		return nil, fmt.Errorf("failed to parse provisioning parameters: %w", err)
	}

	return &params, nil
}
