package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"bank-ledger.backend/internal/config"
	"bank-ledger.backend/pkg/jwt"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	if err := run(os.Args[1:], config.Load().JWT, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// run mints a bearer token signed with the configured identity secret
func run(args []string, cfg config.JWTConfig, out io.Writer) error {
	fs := flag.NewFlagSet("token-gen", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	subject := fs.String("sub", "", "identity subject (required)")
	email := fs.String("email", "", "email claim")
	firstName := fs.String("first-name", "", "firstName claim")
	lastName := fs.String("last-name", "", "lastName claim")
	expiry := fs.Duration("expiry", cfg.TokenExpiry, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *subject == "" {
		return errors.New("-sub is required")
	}
	if *expiry <= 0 {
		return fmt.Errorf("invalid expiry: %s", *expiry)
	}

	svc := jwt.NewJWTService(cfg.Secret, cfg.Issuer, *expiry)
	token, err := svc.GenerateToken(*subject, *email, *firstName, *lastName)
	if err != nil {
		return fmt.Errorf("failed to sign token: %w", err)
	}

	fmt.Fprintf(out, "TOKEN=%s\n", token)
	fmt.Fprintf(out, "EXPIRES_AT=%s\n", time.Now().Add(*expiry).UTC().Format(time.RFC3339))
	return nil
}
