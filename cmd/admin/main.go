package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/term"

	"rupeeflow/internal/domain/user"
	"rupeeflow/internal/infrastructure/postgres"
	"rupeeflow/internal/shared/auth"
	"rupeeflow/internal/shared/config"
)

const usage = `Rupeeflow Admin CLI - Management commands for the Rupeeflow API

Usage:
  admin <command> [options]

Commands:
  add-user            Create a user account
  list-users          List all user accounts
  clear-transactions  Delete every transaction owned by a user

Examples:
  # Create a user, prompting for the password
  admin add-user --username=alice

  # List users with their transaction counts
  admin list-users

  # Clear one user's ledger
  admin clear-transactions --user-id=2f1c...
`

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "add-user":
		runAddUser(os.Args[2:])
	case "list-users":
		runListUsers(os.Args[2:])
	case "clear-transactions":
		runClearTransactions(os.Args[2:])
	case "help", "-h", "--help":
		fmt.Println(usage)
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		fmt.Println(usage)
		os.Exit(1)
	}
}

func connect() *postgres.DB {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

func runAddUser(args []string) {
	fs := flag.NewFlagSet("add-user", flag.ExitOnError)
	username := fs.String("username", "", "Username for the new account")
	passwordFlag := fs.String("password", "", "Password (optional, will prompt if omitted)")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *username == "" {
		fmt.Println("Error: --username is required")
		fs.PrintDefaults()
		os.Exit(1)
	}

	password := *passwordFlag
	if password == "" {
		fmt.Print("Password: ")
		var err error
		password, err = readPassword(os.Stdin)
		if err != nil {
			log.Fatalf("Failed to read password: %v", err)
		}
		fmt.Println()
	}
	if strings.TrimSpace(password) == "" {
		log.Fatal("Password cannot be empty")
	}

	db := connect()
	defer db.Close()

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userRepo := postgres.NewUserRepository(db)
	created, err := userRepo.Create(ctx, user.CreateUserParams{
		ID:           uuid.NewString(),
		Username:     *username,
		PasswordHash: hash,
	})
	if err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	fmt.Printf("User %s created with id %s\n", created.Username, created.ID)
}

func runListUsers(args []string) {
	fs := flag.NewFlagSet("list-users", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	db := connect()
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	userRepo := postgres.NewUserRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)

	users, err := userRepo.List(ctx)
	if err != nil {
		log.Fatalf("Failed to list users: %v", err)
	}

	for _, u := range users {
		count, err := transactionRepo.CountByUserID(ctx, u.ID)
		if err != nil {
			log.Fatalf("Failed to count transactions for %s: %v", u.ID, err)
		}
		fmt.Printf("%s  %-20s  %d transactions\n", u.ID, u.Username, count)
	}
	fmt.Printf("%d users\n", len(users))
}

func runClearTransactions(args []string) {
	fs := flag.NewFlagSet("clear-transactions", flag.ExitOnError)
	userID := fs.String("user-id", "", "User whose transactions should be removed")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *userID == "" {
		fmt.Println("Error: --user-id is required")
		fs.PrintDefaults()
		os.Exit(1)
	}

	db := connect()
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	userRepo := postgres.NewUserRepository(db)
	if _, err := userRepo.GetByID(ctx, *userID); err != nil {
		log.Fatalf("Failed to resolve user %s: %v", *userID, err)
	}

	transactionRepo := postgres.NewTransactionRepository(db)
	count, err := transactionRepo.CountByUserID(ctx, *userID)
	if err != nil {
		log.Fatalf("Failed to count transactions: %v", err)
	}

	if err := transactionRepo.DeleteAllByUserID(ctx, *userID); err != nil {
		log.Fatalf("Failed to clear transactions: %v", err)
	}

	fmt.Printf("Removed %d transactions for user %s\n", count, *userID)
}

func readPassword(stdin io.Reader) (string, error) {
	// Hide input when stdin is a terminal
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		bytePassword, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(bytePassword), nil
	}

	// Fallback for non-terminal input (pipes)
	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
