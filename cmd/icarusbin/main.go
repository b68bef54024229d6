package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"github.com/tuannm99/icarusbin/internal"
	"github.com/tuannm99/icarusbin/internal/editor"
	"github.com/tuannm99/icarusbin/internal/logging"
	"github.com/tuannm99/icarusbin/internal/repl"
	"github.com/tuannm99/icarusbin/internal/textenc"
)

func main() {
	cfgPath := flag.String("config", "", "YAML config file")
	encName := flag.String("encoding", "", "text encoding (overrides config)")
	command := flag.String("c", "", "run commands separated by ';' and exit")
	flag.Parse()

	cfg, err := internal.LoadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	closeLog := logging.Setup(os.Stderr, logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		SeqURL: cfg.Log.SeqURL,
	})
	defer closeLog()

	if *encName != "" {
		cfg.Editor.Encoding = *encName
	}
	enc, err := textenc.Lookup(cfg.Editor.Encoding)
	if err != nil {
		slog.Error("bad encoding", "encoding", cfg.Editor.Encoding, "error", err)
		closeLog()
		os.Exit(1)
	}

	session := editor.NewSession(enc, slog.Default())
	shell := repl.NewShell(session, os.Stdout, cfg.Editor.ShowLimit)

	if flag.NArg() > 0 {
		shell.Exec("open " + flag.Arg(0))
	}

	if *command != "" {
		for _, line := range strings.Split(*command, ";") {
			if shell.Exec(line) {
				break
			}
		}
		return
	}

	if err := interactive(shell, session, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "readline: %v\n", err)
		closeLog()
		os.Exit(1)
	}
}

func historyPath(p string) string {
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[2:])
		}
	}
	return p
}

func interactive(shell *repl.Shell, session *editor.Session, cfg *internal.IcarusConfig) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          cfg.AppName + "> ",
		HistoryFile:     historyPath(cfg.Editor.HistoryFile),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer func() { _ = rl.Close() }()

	fmt.Println("type help for help")

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err != nil {
			// EOF
			fmt.Println()
			break
		}
		if shell.Exec(line) {
			break
		}
	}

	if session.Dirty() {
		slog.Warn("unsaved changes discarded", "path", session.Path())
	}
	return nil
}
