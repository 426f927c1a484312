package main

import (
	"log"
	"os"

	"github.com/wakego/wakego/internal/methods"
)

func main() {
	log.SetFlags(0)
	if err := methods.RegisterDefaults(nil); err != nil {
		log.Fatalf("wakego: registering methods: %v", err)
	}
	if err := rootCmd.Execute(); err != nil {
		log.Printf("wakego: %v", err)
		os.Exit(1)
	}
}
