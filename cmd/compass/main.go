// main is the entry point for the compass CLI.
package main

import (
	"github.com/huangsam/compass/cmd"
	"github.com/huangsam/compass/internal/contract"
	"github.com/huangsam/compass/internal/iohistory"
)

func main() {
	err := cmd.Execute()

	// LogFatal exits, so the store is closed explicitly rather than deferred.
	iohistory.CloseHistory()
	if err != nil {
		contract.LogFatal("Command failed", err)
	}
}
