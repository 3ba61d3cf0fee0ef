// Package main writer 命令行入口
package main

import (
	"os"

	"writemaster-api/internal/interfaces/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
