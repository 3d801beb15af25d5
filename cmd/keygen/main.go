package main

import (
	"fmt"
	"os"

	"github.com/arnavshah/troop-swap-api-go/pkg/auth"
	"github.com/arnavshah/troop-swap-api-go/pkg/config"
)

func main() {
	config.LoadDotEnv()

	if len(os.Args) < 2 {
		fmt.Println("Usage: keygen <alliance>")
		os.Exit(1)
	}

	alliance := os.Args[1]
	keys := auth.Keys{MasterSecret: []byte(os.Getenv("API_MASTER_SECRET"))}
	key, err := keys.GenerateHMACKey(alliance)
	if err != nil {
		fmt.Println("Error: API_MASTER_SECRET not found in .env")
		os.Exit(1)
	}

	fmt.Printf("Generated Key for %s:\n%s\n", alliance, key)
}
