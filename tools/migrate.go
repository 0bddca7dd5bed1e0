package main

import (
	"fmt"
	"os"

	"ticket-booking/database"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage:")
		fmt.Println("  go run tools/migrate.go migrate           - Run database migrations")
		fmt.Println("  go run tools/migrate.go hashpw <password> - Hash an admin password")
		return
	}

	command := os.Args[1]

	switch command {
	case "migrate":
		fmt.Println("🚀 Running database migrations...")
		if _, err := database.InitDB(); err != nil {
			fmt.Printf("❌ Migration failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("✅ Migration completed successfully!")

	case "hashpw":
		if len(os.Args) < 3 {
			fmt.Println("Please provide a password to hash")
			fmt.Println("Example: go run tools/migrate.go hashpw 's3cret'")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(os.Args[2]), 12)
		if err != nil {
			fmt.Printf("❌ Failed to hash password: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Set this as ADMIN_PASSWORD_HASH:")
		fmt.Println(string(hash))

	default:
		fmt.Printf("Unknown command: %s\n", command)
		fmt.Println("Available commands: migrate, hashpw")
	}
}
