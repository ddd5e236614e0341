package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/goliatone/go-recipebook"
	"github.com/goliatone/go-recipebook/pkg/contract"
)

func runExport(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("export")
	name := fs.String("collection", "recipes", "recipes or ingredients")
	format := fs.String("format", "", "renderer name (defaults to the configured renderer)")
	output := fs.String("output", "", "output file (stdout if empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	col, err := recipebook.Collection(*name)
	if err != nil {
		return err
	}
	out, _, err := e.app.Export(ctx, col, *format)
	if err != nil {
		return err
	}

	if *output == "" {
		_, err := e.stdout.Write(out)
		return err
	}
	if err := os.WriteFile(*output, out, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(e.stderr, "%s written to %s\n", col.Name, *output)
	return nil
}

func runContract(_ context.Context, e *env, args []string) error {
	fs := newFlagSet("contract")
	dump := fs.Bool("dump", false, "print the embedded OpenAPI document")
	asJSON := fs.Bool("json", false, "print operations as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *dump {
		_, err := e.stdout.Write(contract.EmbeddedDocument())
		return err
	}

	ct := e.app.Contract
	if ct == nil {
		var err error
		if ct, err = contract.Default(); err != nil {
			return err
		}
	}
	ops := ct.Operations()
	if *asJSON {
		enc := json.NewEncoder(e.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(ops)
	}
	for _, op := range ops {
		fmt.Fprintf(e.stdout, "%-7s %-20s %s\n", op.Method, op.Path, op.ID)
	}
	return nil
}

func runConfig(_ context.Context, e *env, args []string) error {
	if err := newFlagSet("config").Parse(args); err != nil {
		return err
	}
	out, err := e.app.Config.Marshal()
	if err != nil {
		return err
	}
	_, err = e.stdout.Write(out)
	return err
}
