package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"

	"users-api/internal/client"
	"users-api/internal/core/config"
)

const usage = `usage: usersctl [-api URL] <command> [flags]

commands:
  list                      print every user
  add -name N -email E      create a user
  health                    print the server health
`

func main() {
	_ = godotenv.Load()
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	cfg, err := config.Parse(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("usersctl", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() { fmt.Fprint(out, usage) }
	apiURL := fs.String("api", cfg.Client.BaseURL, "API base URL")
	asJSON := fs.Bool("json", false, "print raw JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("missing command")
	}

	c := client.New(*apiURL, time.Duration(cfg.Client.TimeoutSec)*time.Second)
	cmd, rest := fs.Arg(0), fs.Args()[1:]

	switch cmd {
	case "list":
		users, err := c.ListUsers(ctx)
		if err != nil {
			return err
		}
		if *asJSON {
			return printJSON(out, users)
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tCREATED")
		for _, u := range users {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.CreatedAt.Format(time.RFC3339))
		}
		fmt.Fprintf(tw, "\n%d user(s)\n", len(users))
		return tw.Flush()

	case "add":
		addFS := flag.NewFlagSet("add", flag.ContinueOnError)
		addFS.SetOutput(out)
		name := addFS.String("name", "", "user name")
		email := addFS.String("email", "", "user email")
		if err := addFS.Parse(rest); err != nil {
			return err
		}
		u, err := c.CreateUser(ctx, *name, *email)
		if err != nil {
			return err
		}
		if *asJSON {
			return printJSON(out, u)
		}
		fmt.Fprintf(out, "created %s (%s <%s>)\n", u.ID, u.Name, u.Email)
		return nil

	case "health":
		h, err := c.Health(ctx)
		if err != nil {
			return err
		}
		if *asJSON {
			return printJSON(out, h)
		}
		fmt.Fprintf(out, "%s: %s [%s] at %s\n", h.Status, h.Message, h.Environment, h.Timestamp)
		return nil
	}
	fs.Usage()
	return fmt.Errorf("unknown command %q", cmd)
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
