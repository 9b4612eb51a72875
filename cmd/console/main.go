package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		_ = zap.L().Sync()
		os.Exit(1)
	}
}
