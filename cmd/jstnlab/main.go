package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	json "github.com/goccy/go-json"

	jstnlab "github.com/reoring/jstnlab"
	"github.com/reoring/jstnlab/i18n"
	"github.com/reoring/jstnlab/internal/config"
	"github.com/reoring/jstnlab/internal/logging"
	"github.com/reoring/jstnlab/internal/server"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return 2
	}
	switch args[0] {
	case "check":
		return checkCmd(args[1:], stdin, stdout, stderr)
	case "fmt":
		return fmtCmd(args[1:], stdin, stdout, stderr)
	case "serve":
		return serveCmd(args[1:], stderr)
	case "-h", "-help", "--help", "help":
		usage(stdout)
		return 0
	default:
		usage(stderr)
		return 2
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "jstnlab: check JSON documents against JSTN type declarations\n\nUsage:\n  jstnlab check -type FILE -data FILE [-lang en|ja] [-json]\n  jstnlab fmt -role json|jstn FILE\n  jstnlab serve [-config FILE] [-addr ADDR]\n\nA FILE of - reads standard input.")
}

func readInput(name string, stdin io.Reader) (string, error) {
	if name == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return string(b), nil
}

// checkCmd exits 0 when the pair validates, 1 when it does not.
func checkCmd(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var typeFile, dataFile, lang string
	var asJSON bool
	fs.StringVar(&typeFile, "type", "", "JSTN type declaration file")
	fs.StringVar(&dataFile, "data", "", "JSON data document file")
	fs.StringVar(&lang, "lang", "en", "message language (en, ja)")
	fs.BoolVar(&asJSON, "json", false, "print the snapshot as JSON")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if typeFile == "" || dataFile == "" || (typeFile == "-" && dataFile == "-") {
		fs.Usage()
		return 2
	}
	if !i18n.Supported(lang) {
		fmt.Fprintf(stderr, "unsupported language %q\n", lang)
		return 2
	}

	decl, err := readInput(typeFile, stdin)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	data, err := readInput(dataFile, stdin)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	cfg := config.Default()
	cfg.Language = lang
	snap := jstnlab.NewEngine(decl, data, cfg.EngineOptions()...).Snapshot()

	if asJSON {
		out, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			fmt.Fprintf(stderr, "encoding snapshot: %v\n", err)
			return 2
		}
		fmt.Fprintln(stdout, string(out))
	} else {
		printSnapshot(stdout, snap)
	}
	if !snap.Validates {
		return 1
	}
	return 0
}

func printSnapshot(w io.Writer, snap jstnlab.Snapshot) {
	for _, role := range jstnlab.Roles {
		v := snap.View(role)
		fmt.Fprintf(w, "%s: %s\n", role.Title(), v.Message)
		for _, iss := range v.Issues {
			fmt.Fprintf(w, "  %s\n", issueLine(iss))
		}
		for _, iss := range v.Warnings {
			fmt.Fprintf(w, "  warning: %s\n", issueLine(iss))
		}
	}
	for _, m := range snap.Mismatches {
		fmt.Fprintf(w, "  %s\n", issueLine(m))
	}
}

// issueLine leads with the localized summary and keeps the code, location
// and detail after it.
func issueLine(iss jstnlab.Issue) string {
	detail := jstnlab.Issues{iss}.Error()
	if iss.Summary == "" || iss.Summary == iss.Code {
		return detail
	}
	return iss.Summary + " (" + detail + ")"
}

// fmtCmd prints the normalized form of one document.
func fmtCmd(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("fmt", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var roleName string
	fs.StringVar(&roleName, "role", "json", "document kind (json, jstn)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	role, err := jstnlab.ParseRole(roleName)
	if err != nil || fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	text, err := readInput(fs.Arg(0), stdin)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	opts := append(config.Default().EngineOptions(), jstnlab.WithDeclarationFormatting(true))
	e := jstnlab.NewEngine("", "", opts...)
	e.Edit(role, text)
	if res := e.Result(role); !res.OK() {
		fmt.Fprintf(stderr, "%s: %v\n", fs.Arg(0), res.Issues)
		return 1
	}
	e.Normalize(role)
	fmt.Fprintln(stdout, e.Text(role))
	return 0
}

func serveCmd(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var cfgPath, addr string
	fs.StringVar(&cfgPath, "config", "", "YAML or TOML config file")
	fs.StringVar(&addr, "addr", "", "listen address (overrides config)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(stderr, "invalid configuration: %v\n", err)
		return 1
	}
	if addr != "" {
		cfg.Addr = addr
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, log)
	go srv.Run(ctx)

	// No write timeout: event streams stay open.
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
	}()

	log.Info().Str("addr", cfg.Addr).Str("json_driver", cfg.JSONDriver).Msg("starting jstnlab")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("server error")
		return 1
	}
	return 0
}
