package cmd

import (
	"github.com/spf13/cobra"

	"storeops.GO/core/registry"
)

// Register queues a command for the storeops CLI. Extension packages call
// this from init(); the built-in stock commands use it too. Panics after
// Apply has sealed the command set.
func Register(c *cobra.Command) {
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryCmd) {
		panic("cmd/registry: locked (register only during init before Apply)")
	}
	list := registered()
	list = append(list, c)
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryCmd, list)
}

func registered() []*cobra.Command {
	if v, ok := registry.GlobalRegistry.GetGlobal(registry.KeyRegistryCmd); ok && v != nil {
		return v.([]*cobra.Command)
	}
	return nil
}

// Apply attaches every queued command to the root command and seals the
// registry. Execute calls this before dispatch.
func Apply() {
	for _, c := range registered() {
		rootCmd.AddCommand(c)
	}
	registry.GlobalRegistry.Lock(registry.KeyRegistryCmd)
}
