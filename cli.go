//go:build cli
// +build cli

package main

import (
	_ "storefront.GO/cron/jobs"
	_ "storefront.GO/custom"

	"storefront.GO/cmd"
	"storefront.GO/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
