package cmd

import (
	"bufio"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"github.com/glint-lang/glint/internal/config"
	"github.com/glint-lang/glint/pkg/glint"
)

var (
	replHistoryPath string
	replReplay      bool
	replSearch      string
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive Glint REPL",
	Long: `Read-eval-print loop over a single persistent Engine. Every
evaluated line is recorded to a local SQLite database, and
"glint repl --replay" or "glint repl --search <pattern>" read that same
database back out instead of starting a new session - grounded on
funvibe-funxy and sentra-language-sentra's shared direct dependency on
a modernc.org/sqlite-family driver.`,
	RunE: runREPL,
}

func init() {
	rootCmd.AddCommand(replCmd)
	home, _ := os.UserHomeDir()
	replCmd.Flags().StringVar(&replHistoryPath, "history", filepath.Join(home, ".glint_history.db"), "path to the REPL history database")
	replCmd.Flags().BoolVar(&replReplay, "replay", false, "print every past session entry instead of starting a new REPL")
	replCmd.Flags().StringVar(&replSearch, "search", "", "print past session entries whose input matches this substring, instead of starting a new REPL")
}

func runREPL(_ *cobra.Command, _ []string) error {
	config.IsREPLMode = true

	db, err := openHistory(replHistoryPath)
	if err != nil {
		return fmt.Errorf("opening history database: %w", err)
	}
	defer db.Close()

	if replReplay || replSearch != "" {
		return showHistory(db, replSearch)
	}

	engine := glint.New()
	applyProjectGlobals(engine)
	prompt := "glint> "
	if colorize(os.Stdout) {
		prompt = "\033[1;36mglint>\033[0m "
	}

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Fprint(os.Stdout, prompt)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			fmt.Fprint(os.Stdout, prompt)
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		v, evalErr := engine.EvalString(line)
		var resultText, errText string
		if evalErr != nil {
			errText = evalErr.Error()
			fmt.Fprintln(os.Stderr, errText)
		} else {
			resultText = v.String()
			fmt.Fprintln(os.Stdout, resultText)
		}
		recordHistory(db, line, resultText, errText)

		fmt.Fprint(os.Stdout, prompt)
	}
	return scanner.Err()
}

func openHistory(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		input TEXT NOT NULL,
		result TEXT,
		error TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// showHistory replays the recorded transcript, filtering to rows whose
// input contains pattern (an empty pattern replays everything), the read
// side of the "glint repl --history" SQLite transcript.
func showHistory(db *sql.DB, pattern string) error {
	rows, err := db.Query(
		`SELECT input, result, error, created_at FROM history
		 WHERE ? = '' OR input LIKE '%' || ? || '%'
		 ORDER BY id`,
		pattern, pattern,
	)
	if err != nil {
		return fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var input, createdAt string
		var result, errText sql.NullString
		if err := rows.Scan(&input, &result, &errText, &createdAt); err != nil {
			return fmt.Errorf("reading history row: %w", err)
		}
		fmt.Printf("[%s] glint> %s\n", createdAt, input)
		if errText.Valid && errText.String != "" {
			fmt.Fprintln(os.Stderr, errText.String)
		} else if result.Valid {
			fmt.Println(result.String)
		}
	}
	return rows.Err()
}

func recordHistory(db *sql.DB, input, result, errText string) {
	_, err := db.Exec(`INSERT INTO history (input, result, error) VALUES (?, ?, ?)`, input, result, nullIfEmpty(errText))
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to record history: %v\n", err)
	}
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
