// Command hashpin prints the bcrypt hash of a supervisor PIN for
// BISTRO_AUTH_SUPERVISOR_PIN_HASH.
//
//	go run ./cmd/hashpin 2468
package main

import (
	"fmt"
	"os"

	"github.com/mmynk/bistro/internal/auth"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: hashpin <pin>")
		os.Exit(2)
	}
	hash, err := auth.HashPIN(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
