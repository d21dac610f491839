package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Invoicing API
// @version         1.0
// @description     Jobs, invoice numbering, PDF invoices and payment links.

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /api

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
