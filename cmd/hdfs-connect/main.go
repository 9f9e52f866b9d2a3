// hdfs-connect collects HDFS connection parameters and prints connection URLs.
package main

import (
	"fmt"
	"os"

	"github.com/acolita/hdfs-connect/cmd/hdfs-connect/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
