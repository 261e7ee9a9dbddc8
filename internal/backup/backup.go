// Package backup dumps and restores the MySQL database with the mysqldump
// and mysql client binaries.
package backup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/iliyamo/flight-booking-api/internal/config"
)

// DefaultDir is where backups are written and listed.
const DefaultDir = "database_backups"

const stampLayout = "20060102_150405"

// Runner executes a client binary with stdin and stdout attached.  Tests
// replace it to avoid needing MySQL tools on the path.
type Runner func(ctx context.Context, name string, args []string, env []string, stdin io.Reader, stdout io.Writer) error

// ExecRunner runs the binary with os/exec, forwarding stderr.
func ExecRunner(ctx context.Context, name string, args []string, env []string, stdin io.Reader, stdout io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = append(os.Environ(), env...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Tool creates, lists and restores backups of one database.
type Tool struct {
	DB  config.DB
	Dir string
	Run Runner
	Now func() time.Time
}

// New returns a Tool writing to DefaultDir through ExecRunner.
func New(db config.DB) *Tool {
	return &Tool{DB: db, Dir: DefaultDir, Run: ExecRunner, Now: time.Now}
}

// Info describes one backup file.
type Info struct {
	Name     string
	Path     string
	SizeMB   float64
	Modified time.Time
}

// FileName is the backup name for a dump taken at t.
func (t *Tool) FileName(at time.Time) string {
	return fmt.Sprintf("%s_backup_%s.sql", t.DB.Name, at.Format(stampLayout))
}

// connArgs are the connection flags shared by mysqldump and mysql.  The
// password travels in MYSQL_PWD so it does not show up in the process list.
func (t *Tool) connArgs() ([]string, []string) {
	args := []string{"--host=" + t.DB.Host, "--port=" + t.DB.Port, "--user=" + t.DB.User}
	var env []string
	if t.DB.Pass != "" {
		env = append(env, "MYSQL_PWD="+t.DB.Pass)
	}
	return args, env
}

// Backup dumps the database into a new timestamped file and returns its
// path.  A failed dump leaves no partial file behind.
func (t *Tool) Backup(ctx context.Context) (string, error) {
	if err := os.MkdirAll(t.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}
	path := filepath.Join(t.Dir, t.FileName(t.Now()))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create backup file: %w", err)
	}

	args, env := t.connArgs()
	args = append(args, "--single-transaction", "--routines", "--triggers", "--events", t.DB.Name)
	log.Printf("backup: dumping database %q to %s", t.DB.Name, path)
	runErr := t.Run(ctx, "mysqldump", args, env, nil, f)
	closeErr := f.Close()
	if err := errors.Join(runErr, closeErr); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("mysqldump: %w", err)
	}
	return path, nil
}

// List returns the .sql files in the backup directory, newest name first.
// A missing directory is an empty list.
func (t *Tool) List() ([]Info, error) {
	entries, err := os.ReadDir(t.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var out []Info
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			return nil, err
		}
		out = append(out, Info{
			Name:     e.Name(),
			Path:     filepath.Join(t.Dir, e.Name()),
			SizeMB:   float64(int64(float64(fi.Size())/(1024*1024)*100+0.5)) / 100,
			Modified: fi.ModTime(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name > out[j].Name })
	return out, nil
}

// Restore feeds a dump file into the mysql client.
func (t *Tool) Restore(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("backup file not found: %s", path)
		}
		return err
	}
	defer f.Close()

	args, env := t.connArgs()
	args = append(args, t.DB.Name)
	log.Printf("backup: restoring database %q from %s", t.DB.Name, path)
	if err := t.Run(ctx, "mysql", args, env, f, io.Discard); err != nil {
		return fmt.Errorf("mysql: %w", err)
	}
	return nil
}
