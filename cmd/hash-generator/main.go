// Command hash-generator prints the stored form of passwords under a password
// scheme. Use it to prepare account rows when switching auth.password_scheme
// to bcrypt.
//
//	hash-generator -scheme bcrypt secret1 secret2
//	printf 'secret\n' | hash-generator
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/phrazzld/todo-api/internal/service/auth"
)

func main() {
	scheme := flag.String("scheme", "bcrypt", "password scheme (plain or bcrypt)")
	flag.Parse()

	if err := run(*scheme, flag.Args(), os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "hash-generator: %v\n", err)
		os.Exit(1)
	}
}

// run hashes each password in args, or each line of in when args is empty,
// and writes one stored value per line.
func run(scheme string, args []string, in io.Reader, out io.Writer) error {
	verifier, err := auth.NewPasswordVerifier(scheme)
	if err != nil {
		return err
	}

	passwords := args
	if len(passwords) == 0 {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			if line := scanner.Text(); line != "" {
				passwords = append(passwords, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("failed to read passwords: %w", err)
		}
	}

	for _, password := range passwords {
		stored, err := verifier.Hash(password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		if _, err := fmt.Fprintln(out, stored); err != nil {
			return err
		}
	}
	return nil
}
