// Command token mints a signed API token for local development and support.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"accounting_docs_service/internal/domain/notification"
	"accounting_docs_service/internal/infra/config"
	"accounting_docs_service/internal/infra/httpapi"
	"accounting_docs_service/internal/infra/logger"
)

func main() {
	role := flag.String("role", "admin", "principal role: admin, accountant or company")
	id := flag.Int64("id", 1, "principal id")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("Could not load application configuration: %v", err)
	}

	recipientType, err := notification.ParseRecipientType(*role)
	if err != nil {
		logger.Log.Fatalf("Invalid role: %v", err)
	}
	if *id <= 0 {
		logger.Log.Fatalf("Invalid id: %d", *id)
	}

	tok, err := httpapi.GenerateToken(cfg.JWTSecret, notification.Recipient{Type: recipientType, ID: *id}, *ttl)
	if err != nil {
		logger.Log.Fatalf("Could not generate token: %v", err)
	}
	fmt.Fprintln(os.Stdout, tok)
}
