package main

import (
	"log"

	"github.com/nikolayk812/storefront/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatal(err)
	}
}
