// Package primecli holds the commands of the primes command line application.
package primecli

import (
	"context"
	"fmt"
	"io"
	"iter"

	"go.llib.dev/frameless/pkg/cli"
	"go.llib.dev/frameless/pkg/env"
	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/pkg/iterkit"
	"go.llib.dev/frameless/pkg/logger"
	"go.llib.dev/frameless/pkg/logging"

	"go.llib.dev/primes/pkg/primekit"
)

// ErrInvalidRange is returned when the requested part of the prime sequence is empty or unbounded.
const ErrInvalidRange errorkit.Error = "ErrInvalidRange"

// CountEnvKey names the environment variable that sets the default number of primes printed by list.
const CountEnvKey = "PRIMES_COUNT"

const defaultCount = 10

// Config holds the environment driven settings of the application.
type Config struct {
	// Count is the default limit of the list command.
	Count int
}

// LoadConfig reads the Config from the environment.
func LoadConfig() (Config, error) {
	count, _, err := env.Lookup[int](CountEnvKey, env.DefaultValue(fmt.Sprint(defaultCount)))
	if err != nil {
		return Config{}, err
	}
	if count < 0 {
		return Config{}, ErrInvalidRange.F("%s must not be negative: %d", CountEnvKey, count)
	}
	return Config{Count: count}, nil
}

// Mux returns the command multiplexer of the primes application.
func Mux(c Config) *cli.Mux {
	var m cli.Mux
	m.Handle("check", CheckCommand{})
	m.Handle("list", ListCommand{Count: c.Count})
	m.Handle("nth", NthCommand{})
	return &m
}

///////////////////////////////////////////////////////////////////////////////////////////////////

// CheckCommand tells whether its argument is a prime.
type CheckCommand struct {
	N uint64 `arg:"0" required:"true" desc:"the number to test for primality"`
}

func (cmd CheckCommand) Summary() string { return "tells whether a number is prime" }

func (cmd CheckCommand) ServeCLI(w cli.Response, r *cli.Request) {
	ctx := logging.ContextWith(r.Context(), logging.Field("command", "check"))
	logger.Debug(ctx, "checking primality", logging.Field("n", cmd.N))

	verdict := "is not prime"
	if primekit.IsPrime(cmd.N) {
		verdict = "is prime"
	}
	if _, err := fmt.Fprintf(w, "%d %s\n", cmd.N, verdict); err != nil {
		handleError(ctx, w, err)
	}
}

///////////////////////////////////////////////////////////////////////////////////////////////////

// ListCommand prints the primes in ascending order.
//
// Count keeps its injected value when the -n flag is absent,
// which is how PRIMES_COUNT becomes the default limit.
type ListCommand struct {
	Count int    `flag:"n" desc:"the maximum number of primes to print, 0 means no limit but then -to is required"`
	From  uint64 `flag:"from" desc:"skip the primes below this value"`
	To    uint64 `flag:"to" desc:"stop after the last prime not greater than this value, 0 means unbounded"`
}

func (cmd ListCommand) Summary() string { return "prints the primes in ascending order" }

func (cmd ListCommand) ServeCLI(w cli.Response, r *cli.Request) {
	ctx := logging.ContextWith(r.Context(), logging.Field("command", "list"))
	logger.Debug(ctx, "listing primes",
		logging.Field("count", cmd.Count),
		logging.Field("from", cmd.From),
		logging.Field("to", cmd.To))

	if err := cmd.Run(ctx, w); err != nil {
		handleError(ctx, w, err)
	}
}

// Run writes the selected primes to w, one per line.
// It stops with the context's error when ctx is cancelled.
func (cmd ListCommand) Run(ctx context.Context, w io.Writer) error {
	if err := cmd.validate(); err != nil {
		return err
	}
	var i int
	for p := range cmd.primes() {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		i++
		if _, err := fmt.Fprintln(w, p); err != nil {
			return err
		}
	}
	return nil
}

func (cmd ListCommand) validate() error {
	if cmd.Count < 0 {
		return ErrInvalidRange.F("-n must not be negative: %d", cmd.Count)
	}
	if cmd.To != 0 && cmd.To < cmd.From {
		return ErrInvalidRange.F("-from %d is greater than -to %d", cmd.From, cmd.To)
	}
	if cmd.Count == 0 && cmd.To == 0 {
		return ErrInvalidRange.F("listing without -n requires -to")
	}
	return nil
}

func (cmd ListCommand) primes() iter.Seq[uint64] {
	seq := primekit.SeqFrom(cmd.From)
	if 0 < cmd.To {
		seq = upTo(seq, cmd.To)
	}
	if 0 < cmd.Count {
		seq = iterkit.Head(seq, cmd.Count)
	}
	return seq
}

// upTo ends an ascending sequence at the last value not greater than limit.
func upTo(seq iter.Seq[uint64], limit uint64) iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		for v := range seq {
			if limit < v || !yield(v) {
				return
			}
		}
	}
}

///////////////////////////////////////////////////////////////////////////////////////////////////

// NthCommand prints the prime at a given position of the sequence.
type NthCommand struct {
	K uint64 `arg:"0" required:"true" desc:"the 1-based position of the prime"`
}

func (cmd NthCommand) Summary() string { return "prints the k-th prime" }

func (cmd NthCommand) ServeCLI(w cli.Response, r *cli.Request) {
	ctx := logging.ContextWith(r.Context(), logging.Field("command", "nth"))
	logger.Debug(ctx, "looking up the nth prime", logging.Field("k", cmd.K))

	p, err := Nth(ctx, cmd.K)
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	if _, err := fmt.Fprintln(w, p); err != nil {
		handleError(ctx, w, err)
	}
}

// Nth returns the k-th prime, counting from 1.
// The walk stops early with the context's error when ctx is cancelled.
func Nth(ctx context.Context, k uint64) (_ uint64, rErr error) {
	if k == 0 {
		return 0, ErrInvalidRange.F("the position of a prime starts from 1")
	}
	g := primekit.New()
	defer errorkit.Finish(&rErr, g.Close)
	for i := uint64(0); i < k; i++ {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}
		if !g.Next() {
			return 0, g.Err()
		}
	}
	return g.Value(), nil
}

func handleError(ctx context.Context, w cli.Response, err error) {
	logger.Error(ctx, "command failed", logging.ErrField(err))
	w.ExitCode(cli.ExitCodeError)
	fmt.Fprintln(w, err.Error())
}
