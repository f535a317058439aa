package main

import (
	"context"
	"errors"
	"fmt"

	"dagger/ores/internal/dagger"
)

// CheckGoModTidy fails if "go mod tidy" changes go.mod or go.sum.
//
// +check
func (o *Ores) CheckGoModTidy(ctx context.Context) (string, error) {
	return o.checkClean(ctx, "go.mod and go.sum are not tidy: run 'go mod tidy'",
		[]string{"cp", "go.mod", "go.mod.HEAD"},
		[]string{"cp", "go.sum", "go.sum.HEAD"},
		[]string{"go", "mod", "tidy"},
		[]string{"sh", "-c", "diff -u go.mod.HEAD go.mod && diff -u go.sum.HEAD go.sum"},
	)
}

// CheckVet runs "go vet" over every package.
//
// +check
func (o *Ores) CheckVet(ctx context.Context) (string, error) {
	return o.checkClean(ctx, "go vet reported problems",
		[]string{"go", "vet", "./..."},
	)
}

// CheckFmt fails if any file is not gofmt'ed.
//
// +check
func (o *Ores) CheckFmt(ctx context.Context) (string, error) {
	return o.checkClean(ctx, "files need gofmt",
		[]string{"sh", "-c", `test -z "$(gofmt -l ./cli ./cmd ./pkg)"`},
	)
}

// checkClean runs execs in order and turns a failing exec into an error
// carrying its output.
func (o *Ores) checkClean(ctx context.Context, msg string, execs ...[]string) (string, error) {
	ctr := o.goContainer()
	for _, args := range execs {
		ctr = ctr.WithExec(args)
	}

	out, err := ctr.Stdout(ctx)

	var e *dagger.ExecError
	if errors.As(err, &e) {
		return "", fmt.Errorf("%s\n\n%s%s", msg, e.Stdout, e.Stderr)
	} else if err != nil {
		return "", fmt.Errorf("unexpected error: %w", err)
	}

	return out, nil
}
