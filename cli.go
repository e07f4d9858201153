//go:build cli
// +build cli

package main

import (
	_ "storeops.GO/custom"

	"storeops.GO/cmd"
	"storeops.GO/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
