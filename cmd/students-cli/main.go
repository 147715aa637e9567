// Command students-cli lists, fetches and creates students over the roster
// API, and can seed a database directly.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/aanand-mishra/student-roster/internal/client"
	"github.com/aanand-mishra/student-roster/internal/config"
	"github.com/aanand-mishra/student-roster/internal/storage/open"
	"github.com/aanand-mishra/student-roster/internal/storage/seed"
	"github.com/aanand-mishra/student-roster/internal/types"
)

const defaultServer = "http://localhost:5000"

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	server := os.Getenv("ROSTER_SERVER")
	if server == "" {
		server = defaultServer
	}

	ctx := context.Background()
	c := client.New(server)

	var err error
	switch command := os.Args[1]; command {
	case "list":
		err = runList(ctx, c, os.Args[2:], os.Stdout)
	case "get":
		err = runGet(ctx, c, os.Args[2:], os.Stdout)
	case "create":
		err = runCreate(ctx, c, os.Args[2:], os.Stdout)
	case "seed":
		err = runSeed(ctx, os.Stdout)
	case "help", "-h", "--help":
		printUsage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage(os.Stderr)
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runList(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	search := fs.String("search", "", "Only show students whose name, email or grade contains this text")
	if err := fs.Parse(args); err != nil {
		return err
	}

	q := client.NewStudentsQuery(c)
	students, err := q.Fetch(ctx)
	if err != nil {
		return err
	}
	students = client.FilterStudents(students, *search)
	if len(students) == 0 {
		fmt.Fprintln(out, "No students found.")
		return nil
	}
	for _, s := range students {
		fmt.Fprintf(out, "%d\t%s\t%s\t%s\n", s.ID, s.Name, s.Email, s.Grade)
	}
	return nil
}

func runGet(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	if len(args) < 1 {
		return errors.New("'get' command requires a student id")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid student id %q", args[0])
	}

	s, err := c.GetStudent(ctx, id)
	if err != nil {
		return err
	}
	return printJSON(out, s)
}

func runCreate(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	values := make(map[string]*string, len(client.Fields))
	for _, f := range client.Fields {
		values[f.Name] = fs.String(f.Name, "", f.Label)
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	form := client.NewForm(client.NewCreateStudentMutation(c, nil, nil), nil)
	for _, f := range client.Fields {
		if err := form.Set(f.Name, *values[f.Name]); err != nil {
			return err
		}
	}

	created, err := form.Submit(ctx)
	var verr *types.ValidationError
	if errors.As(err, &verr) {
		return fmt.Errorf("invalid input: --%s: %s", verr.Field, verr.Message)
	}
	if err != nil {
		return err
	}
	return printJSON(out, created)
}

// runSeed talks to the database directly, using the same configuration as
// the server.
func runSeed(ctx context.Context, out io.Writer) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return err
	}

	store, _, err := open.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := seed.IfEmpty(ctx, store)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Inserted %d students.\n", n)
	return nil
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, `Usage: students-cli <command>

Commands:
  list [--search q]   List all students, optionally filtered by name, email or grade
  get <id>            Show one student
  create [flags]      Create a student
                      --name --fatherName --motherName --brotherName --email --grade
  seed                Insert the sample roster if the database is empty
  help                Show this help message

Environment Variables:
  ROSTER_SERVER       API base URL (default %s)
  DATABASE_URL        Database connection URL (seed only)

Examples:
  students-cli list
  students-cli list --search "10th"
  students-cli get 1
  students-cli create --name "Alice Johnson" --fatherName "John Johnson" \
      --motherName "Mary Johnson" --brotherName "Jack Johnson" \
      --email alice@example.com --grade "10th Grade"
`, defaultServer)
}
