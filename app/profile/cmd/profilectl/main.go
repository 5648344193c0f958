package main

import (
	"os"

	"github.com/iWorld-y/customer_profile/app/profile/pkg/logger"
)

func main() {
	if err := RootCommand().Execute(); err != nil {
		logger.Log.Error(err)
		os.Exit(1)
	}
}
