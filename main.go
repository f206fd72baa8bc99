// Package main is the entry point for the mavis-config application
package main

import (
	"github.com/bcgsc/mavis-config/cmd"
)

func main() {
	cmd.Execute()
}
