package main

import (
	"log"
	"os"

	"github.com/viant/mcp-obo/bridge"
	_ "github.com/viant/scy/kms/blowfish"
)

func main() {
	if err := bridge.Run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
