package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/quorumlabs/govern/cmd/govern"
)

func main() {
	// Optional .env with default file paths; missing files are fine.
	_ = godotenv.Load()

	rootCmd := govern.BuildGovernCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
