// Command create-user adds the owner account to a Postgres database and
// seeds an empty coin balance. Sqlite deployments set OWNER_USERNAME and
// OWNER_PASSWORD instead and the server creates the account on start.
//
//	go run ./cmd/create-user --username sam --email sam@example.com
//
// Anything not given as a flag is asked for on stdin.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

type owner struct {
	Username string
	Email    string
	Password string
}

func main() {
	if err := newCreateUserCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "create-user:", err)
		os.Exit(1)
	}
}

func newCreateUserCmd() *cobra.Command {
	var o owner
	var dbURL string
	cmd := &cobra.Command{
		Use:           "create-user",
		Short:         "Create the owner account in Postgres",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("load .env: %w", err)
			}
			if dbURL == "" {
				dbURL = os.Getenv("DB_URL")
			}
			if !strings.HasPrefix(dbURL, "postgres://") && !strings.HasPrefix(dbURL, "postgresql://") {
				return fmt.Errorf("DB_URL must be a postgres URL, got %q", dbURL)
			}
			return askMissing(cmd.InOrStdin(), cmd.OutOrStdout(), &o)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			conn, err := pgx.Connect(ctx, dbURL)
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			defer conn.Close(ctx)

			id, token, err := insertOwner(ctx, conn, o)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\nOwner %q saved as user %d.\n", o.Username, id)
			fmt.Fprintf(out, "Bearer token: %s\n", token)
			return nil
		},
	}
	cmd.Flags().StringVar(&o.Username, "username", "", "login name")
	cmd.Flags().StringVar(&o.Email, "email", "", "contact email (optional)")
	cmd.Flags().StringVar(&dbURL, "db-url", "", "Postgres URL (default $DB_URL)")
	return cmd
}

// askMissing prompts for the username and password when they were not given
// and for the email when the username was also prompted for. The password is
// never taken from a flag.
func askMissing(in io.Reader, out io.Writer, o *owner) error {
	r := bufio.NewReader(in)
	ask := func(label string) string {
		fmt.Fprintf(out, "%s: ", label)
		line, _ := r.ReadString('\n')
		return strings.TrimSpace(line)
	}
	if o.Username == "" {
		o.Username = ask("Username")
		if o.Email == "" {
			o.Email = ask("Email")
		}
	}
	o.Password = ask("Password")

	if strings.TrimSpace(o.Username) == "" {
		return errors.New("a username is required")
	}
	if o.Password == "" {
		return errors.New("a password is required")
	}
	return nil
}

// insertOwner stores the user with a hashed password and a fresh auth token,
// seeding coin_balance in the same transaction.
func insertOwner(ctx context.Context, conn *pgx.Conn, o owner) (int, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(o.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, "", fmt.Errorf("hash password: %w", err)
	}
	token := uuid.New().String()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return 0, "", err
	}
	defer tx.Rollback(ctx)

	var id int
	err = tx.QueryRow(ctx,
		`INSERT INTO users (username, email, password, auth_token)
		 VALUES (@username, @email, @password, @auth_token) RETURNING id`,
		pgx.NamedArgs{
			"username":   strings.TrimSpace(o.Username),
			"email":      o.Email,
			"password":   string(hash),
			"auth_token": token,
		}).Scan(&id)
	if err != nil {
		return 0, "", fmt.Errorf("insert user %q: %w", o.Username, err)
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO coin_balance (id, balance) VALUES (1, 0) ON CONFLICT (id) DO NOTHING`); err != nil {
		return 0, "", fmt.Errorf("seed coin balance: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, "", err
	}
	return id, token, nil
}
