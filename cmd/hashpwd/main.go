// Générateur de hashes bcrypt pour provisionner les comptes du
// dashboard : un mot de passe par argument, le hash sur stdout.
package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: hashpwd <mot de passe>...")
		os.Exit(2)
	}
	for _, pwd := range os.Args[1:] {
		hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
		if err != nil {
			fmt.Fprintln(os.Stderr, "hash:", err)
			os.Exit(1)
		}
		fmt.Println(string(hash))
	}
}
