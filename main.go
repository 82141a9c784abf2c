package main

import (
	"os"

	"github.com/AliArsal1512/clarifai-app/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
