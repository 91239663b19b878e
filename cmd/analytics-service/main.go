package main

import (
	"fmt"
	"os"

	"github.com/soma-project/soma-analytics/pkg/analytics"
)

func main() {
	if err := analytics.Command().Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
