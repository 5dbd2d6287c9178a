// Command keyswap builds key dictionaries and tokenizes or restores documents
// in JSON, YAML, MessagePack or BSON.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/zoobzio/keyswap"
	"github.com/zoobzio/keyswap/json"
)

const version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run dispatches a subcommand and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 2
	}

	command, rest := args[0], args[1:]
	switch command {
	case "dict", "tokenize", "detokenize", "watch":
	case "version":
		fmt.Fprintf(stdout, "keyswap %s\n", version)
		return 0
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", command)
		printUsage(stderr)
		return 2
	}

	cfg, verbose, err := parseConfig(command, rest, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "%s: %v\n", command, err)
		return 2
	}
	logger := newLogger(stderr, verbose)

	cmd := &commander{cfg: cfg, logger: logger, stdin: stdin, stdout: stdout}
	switch command {
	case "dict":
		err = cmd.dict()
	case "tokenize":
		err = cmd.convert(ctx, true)
	case "detokenize":
		err = cmd.convert(ctx, false)
	case "watch":
		err = cmd.watch(ctx)
	}
	if err != nil {
		logger.Error("command failed", slog.String("command", command), slog.Any("error", err))
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "Usage: keyswap <command> [options]\n")
	fmt.Fprintf(w, "\nCommands:\n")
	fmt.Fprintf(w, "  dict        Print the dictionary for the configured keys\n")
	fmt.Fprintf(w, "  tokenize    Replace keys with tokens in a document\n")
	fmt.Fprintf(w, "  detokenize  Restore keys from tokens in a document\n")
	fmt.Fprintf(w, "  watch       Re-tokenize the input file whenever it changes\n")
	fmt.Fprintf(w, "  version     Show version information\n")
	fmt.Fprintf(w, "\nRun 'keyswap <command> -h' for help on a specific command.\n")
}

// parseConfig layers the config file, environment and flags, then validates
// them for command.
func parseConfig(command string, args []string, stderr io.Writer) (*Config, bool, error) {
	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Path to a TOML or YAML configuration file")
	envFile := fs.String("env", "", "Path to a .env file with KEYSWAP_* variables")
	keys := fs.String("keys", "", "Comma-separated source keys, in token order")
	method := fs.String("method", "", "Token method: "+joinMethods())
	prefix := fs.String("prefix", "", "Prefix prepended to every token")
	padding := fs.Int("padding", keyswap.DefaultPaddingLength, "Width for the padded method")
	format := fs.String("format", "", "Document format: json, yaml, msgpack, bson")
	input := fs.String("in", "", "Input file (default stdin)")
	output := fs.String("out", "", "Output file (default stdout)")
	verbose := fs.Bool("v", false, "Verbose output")

	if err := fs.Parse(args); err != nil {
		return nil, false, err
	}

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		return nil, false, err
	}
	lookup, err := envLookup(*envFile)
	if err != nil {
		return nil, false, err
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, false, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "keys":
			cfg.Keys = splitKeys(*keys)
		case "method":
			cfg.Method = *method
		case "prefix":
			cfg.Prefix = *prefix
		case "padding":
			cfg.Padding = *padding
		case "format":
			cfg.Format = *format
		case "in":
			cfg.Input = *input
		case "out":
			cfg.Output = *output
		}
	})

	if err := cfg.ValidateFor(command); err != nil {
		return nil, false, err
	}
	return cfg, *verbose, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func joinMethods() string {
	methods := keyswap.Methods()
	names := make([]string, 0, len(methods))
	for _, m := range methods {
		if m != keyswap.MethodCustom {
			names = append(names, string(m))
		}
	}
	return strings.Join(names, ", ")
}

// commander runs one subcommand against a validated config.
type commander struct {
	cfg    *Config
	logger *slog.Logger
	stdin  io.Reader
	stdout io.Writer
}

func (c *commander) processor() (*keyswap.Processor, error) {
	dict, err := keyswap.Build(c.cfg.Keys, c.cfg.Options()...)
	if err != nil {
		return nil, err
	}
	codec, err := c.cfg.Codec()
	if err != nil {
		return nil, err
	}
	c.logger.Debug("dictionary built",
		slog.String("method", string(dict.Method())),
		slog.String("fingerprint", dict.Fingerprint()),
		slog.Int("keys", dict.Len()),
	)
	return keyswap.Use(codec, dict)
}

// dict writes the dictionary as a JSON object in key order.
func (c *commander) dict() error {
	dict, err := keyswap.Build(c.cfg.Keys, c.cfg.Options()...)
	if err != nil {
		return err
	}

	tokens := keyswap.NewObject()
	for _, k := range dict.Keys() {
		tok, _ := dict.Token(k)
		tokens.Set(k, keyswap.String(tok))
	}
	out := keyswap.NewObject()
	out.Set("method", keyswap.String(dict.Method()))
	out.Set("deterministic", keyswap.Bool(dict.Deterministic()))
	out.Set("fingerprint", keyswap.String(dict.Fingerprint()))
	out.Set("tokens", tokens)

	data, err := json.New().Marshal(out)
	if err != nil {
		return err
	}
	return c.write(append(data, '\n'))
}

// convert reads one document, tokenizes or detokenizes it, and writes the result.
func (c *commander) convert(ctx context.Context, tokenize bool) error {
	proc, err := c.processor()
	if err != nil {
		return err
	}
	data, err := c.read()
	if err != nil {
		return err
	}

	var out []byte
	if tokenize {
		out, err = proc.Tokenize(ctx, data)
	} else {
		out, err = proc.Detokenize(ctx, data)
	}
	if err != nil {
		return err
	}

	c.logger.Debug("converted",
		slog.Bool("tokenize", tokenize),
		slog.Int("in_bytes", len(data)),
		slog.Int("out_bytes", len(out)),
	)
	return c.write(out)
}

func (c *commander) read() ([]byte, error) {
	if c.cfg.Input == "" {
		return io.ReadAll(c.stdin)
	}
	return os.ReadFile(c.cfg.Input)
}

func (c *commander) write(data []byte) error {
	if c.cfg.Output == "" {
		_, err := c.stdout.Write(data)
		return err
	}
	return os.WriteFile(c.cfg.Output, data, 0o644)
}
