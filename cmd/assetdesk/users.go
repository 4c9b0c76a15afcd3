package main

import (
	"bufio"
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/assetdesk/assetdesk/internal/auth"
	"github.com/assetdesk/assetdesk/internal/config"
	"github.com/assetdesk/assetdesk/internal/db"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage AssetDesk accounts.",
}

var (
	bootstrapAdminEmail          string
	bootstrapAdminPassword       string
	bootstrapAdminPasswordStdin  bool
	bootstrapAdminGeneratePasswd bool
)

var bootstrapAdminCmd = &cobra.Command{
	Use:   "bootstrap-admin",
	Short: "Create the first admin account (a no-op once any admin exists).",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		email := auth.NormalizeEmail(bootstrapAdminEmail)
		if email == "" {
			return errors.New("--email is required")
		}
		password, generated, err := resolveBootstrapPassword(cmd)
		if err != nil {
			return err
		}
		return runBootstrapAdmin(cmd, email, password, generated)
	},
}

func runBootstrapAdmin(cmd *cobra.Command, email, password string, generated bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()
	q := db.New(pool)

	admins, err := q.CountAuthAdmins(ctx)
	if err != nil {
		return err
	}
	if admins > 0 {
		cmd.Println("an admin account already exists; nothing to do")
		return nil
	}

	// The email may still be taken by a regular account.
	if _, err := q.GetAuthUserByEmail(ctx, email); err == nil {
		return fmt.Errorf("account already exists: %s", email)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	if _, err := q.CreateAuthUser(ctx, db.CreateAuthUserParams{
		Email:        email,
		PasswordHash: hash,
		Role:         auth.RoleAdmin,
		IsActive:     true,
	}); err != nil {
		return err
	}

	cmd.Printf("created admin account: %s\n", email)
	if generated {
		cmd.Printf("generated password: %s\n", password)
	}
	return nil
}

// resolveBootstrapPassword picks the password source: at most one of
// --password, --password-stdin and --generate-password, falling back to an
// interactive prompt. The bool reports whether the password was generated
// and should be echoed back.
func resolveBootstrapPassword(cmd *cobra.Command) (string, bool, error) {
	sources := 0
	for _, set := range []bool{bootstrapAdminPassword != "", bootstrapAdminPasswordStdin, bootstrapAdminGeneratePasswd} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return "", false, errors.New("--password, --password-stdin and --generate-password are mutually exclusive")
	}

	switch {
	case bootstrapAdminPasswordStdin:
		password, err := readPasswordStdin()
		if err != nil {
			return "", false, err
		}
		if password == "" {
			return "", false, errors.New("password is empty")
		}
		return password, false, nil

	case bootstrapAdminGeneratePasswd:
		password, err := generatePassword(24)
		if err != nil {
			return "", false, err
		}
		return password, true, nil

	case bootstrapAdminPassword != "":
		return bootstrapAdminPassword, false, nil
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", false, errors.New("no password provided (use --password, --password-stdin, or --generate-password)")
	}
	return promptPasswordTwice(cmd)
}

func promptPasswordTwice(cmd *cobra.Command) (string, bool, error) {
	cmd.Print("Password: ")
	first, err := term.ReadPassword(int(os.Stdin.Fd()))
	cmd.Println()
	if err != nil {
		return "", false, err
	}
	if len(first) == 0 {
		return "", false, errors.New("password is empty")
	}

	cmd.Print("Confirm password: ")
	second, err := term.ReadPassword(int(os.Stdin.Fd()))
	cmd.Println()
	if err != nil {
		return "", false, err
	}
	if string(first) != string(second) {
		return "", false, errors.New("passwords do not match")
	}
	return string(first), false, nil
}

// readPasswordStdin takes the first line of piped stdin, for
// `... --password-stdin < secret.txt` and secret-manager pipelines.
func readPasswordStdin() (string, error) {
	info, err := os.Stdin.Stat()
	if err != nil {
		return "", err
	}
	if info.Mode()&os.ModeCharDevice != 0 {
		return "", errors.New("stdin is a terminal; use --password or omit to prompt")
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// generatePassword draws from an alphabet without lookalike characters
// (no l/I, no O/0/1).
func generatePassword(length int) (string, error) {
	if length < 16 {
		return "", errors.New("password length too short")
	}
	const alphabet = "abcdefghijkmnopqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	out := make([]byte, length)
	max := big.NewInt(int64(len(alphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = alphabet[n.Int64()]
	}
	return string(out), nil
}

func init() {
	usersCmd.AddCommand(bootstrapAdminCmd)
	bootstrapAdminCmd.Flags().StringVar(&bootstrapAdminEmail, "email", "", "Email address for the admin account")
	bootstrapAdminCmd.Flags().StringVar(&bootstrapAdminPassword, "password", "", "Password for the admin account (prefer --password-stdin)")
	bootstrapAdminCmd.Flags().BoolVar(&bootstrapAdminPasswordStdin, "password-stdin", false, "Read the password from stdin")
	bootstrapAdminCmd.Flags().BoolVar(&bootstrapAdminGeneratePasswd, "generate-password", false, "Generate a random password and print it")
	_ = bootstrapAdminCmd.MarkFlagRequired("email")
}
