package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/matchpulse/season-compare/internal/infrastructure/repository/postgres"
)

var errUnknownCommand = errors.New("unknown command")

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	if err := run(strings.ToLower(strings.TrimSpace(os.Args[1])), os.Args[2:]); err != nil {
		if errors.Is(err, errUnknownCommand) {
			printUsage()
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

func run(cmd string, args []string) error {
	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		return errors.New("DB_URL is required")
	}
	dbURL = withBinaryResultsDisabled(dbURL)

	// Seeding goes through sqlx directly; no migration source needed.
	if cmd == "seed" {
		if err := runBootstrapSeed(dbURL); err != nil {
			return fmt.Errorf("bootstrap seed: %w", err)
		}
		log.Printf("bootstrap seed applied")
		return nil
	}

	migrationsDir, err := resolveMigrationsDir()
	if err != nil {
		return fmt.Errorf("resolve migrations dir: %w", err)
	}

	sourceURL := "file://" + filepath.ToSlash(migrationsDir)
	m, err := migrate.New(sourceURL, dbURL)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer closeMigrator(m)

	switch cmd {
	case "up":
		if err := skipNoChange(m.Up()); err != nil {
			return err
		}
		log.Printf("migrations applied (source=%s)", sourceURL)
	case "down":
		steps, err := parseSteps(args)
		if err != nil {
			return err
		}
		if err := skipNoChange(m.Steps(-steps)); err != nil {
			return err
		}
		log.Printf("rolled back %d migration(s)", steps)
	case "version":
		return printMigrationVersion(m)
	case "force":
		version, err := parseVersion(args)
		if err != nil {
			return err
		}
		if err := m.Force(version); err != nil {
			return fmt.Errorf("force version %d: %w", version, err)
		}
		log.Printf("forced version to %d", version)
	case "goto", "migrate":
		target, err := parseTarget(args)
		if err != nil {
			return err
		}
		if err := skipNoChange(m.Migrate(target)); err != nil {
			return err
		}
		log.Printf("migrated to version %d", target)
	default:
		return fmt.Errorf("%w: %s", errUnknownCommand, cmd)
	}

	return nil
}

func runBootstrapSeed(dbURL string) error {
	db, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer func() {
		_ = db.Close()
	}()

	return postgres.BootstrapSeed(context.Background(), db)
}

func printMigrationVersion(m *migrate.Migrate) error {
	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		fmt.Println("version: none")
		fmt.Println("dirty: false")
		return nil
	case err != nil:
		return fmt.Errorf("read version: %w", err)
	}

	fmt.Printf("version: %d\ndirty: %t\n", version, dirty)
	return nil
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}

	steps, err := strconv.Atoi(strings.TrimSpace(args[0]))
	switch {
	case err != nil:
		return 0, fmt.Errorf("invalid down steps %q: %w", args[0], err)
	case steps <= 0:
		return 0, errors.New("down steps must be > 0")
	}

	return steps, nil
}

func parseVersion(args []string) (int, error) {
	if len(args) == 0 {
		return 0, errors.New("force requires a version argument")
	}

	value, err := strconv.ParseInt(strings.TrimSpace(args[0]), 10, strconv.IntSize)
	switch {
	case err != nil:
		return 0, fmt.Errorf("invalid version %q: %w", args[0], err)
	case value < 0:
		return 0, errors.New("version must be >= 0")
	}

	return int(value), nil
}

func parseTarget(args []string) (uint, error) {
	if len(args) == 0 {
		return 0, errors.New("goto requires a target version argument")
	}

	value, err := strconv.ParseUint(strings.TrimSpace(args[0]), 10, strconv.IntSize)
	if err != nil {
		return 0, fmt.Errorf("invalid target version %q: %w", args[0], err)
	}

	return uint(value), nil
}

// skipNoChange keeps an already-current schema from failing the run.
func skipNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		log.Printf("no migration changes")
		return nil
	}
	return err
}

func closeMigrator(m *migrate.Migrate) {
	if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
		log.Printf("close migrator: source=%v db=%v", srcErr, dbErr)
	}
}

func resolveMigrationsDir() (string, error) {
	candidates := []string{
		os.Getenv("MIGRATIONS_DIR"),
		os.Getenv("MIGRATIONS_PATH"),
		"./db/migrations",
		"/app/db/migrations",
	}

	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, nil
		}
	}

	return "", errors.New("migration directory not found (checked MIGRATIONS_DIR, MIGRATIONS_PATH, ./db/migrations, /app/db/migrations)")
}

// withBinaryResultsDisabled mirrors the API process's DSN handling so
// migrations run through the same pooler settings.
func withBinaryResultsDisabled(raw string) string {
	if !envBool("DB_DISABLE_PREPARED_BINARY_RESULT") {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed == nil {
		return raw
	}

	query := parsed.Query()
	if query.Get("disable_prepared_binary_result") != "" {
		return raw
	}
	query.Set("disable_prepared_binary_result", "yes")
	parsed.RawQuery = query.Encode()

	return parsed.String()
}

var truthy = map[string]bool{"1": true, "true": true, "t": true, "yes": true, "y": true, "on": true}

func envBool(key string) bool {
	return truthy[strings.TrimSpace(strings.ToLower(os.Getenv(key)))]
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, `usage: %[1]s <up|down|version|force|goto|seed> [args]
examples:
  %[1]s up
  %[1]s seed
  %[1]s down 1
  %[1]s version
  %[1]s force 2
  %[1]s goto 2
`, prog)
}
