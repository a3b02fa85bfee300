// Command assist is a terminal host for the TLE Zone AI assistant.
// It watches a solution file, requests completions once edits settle and
// applies accepted suggestions back to the file.
//
// Usage:
//
//	assist -problem <id> [-lang PYTHON] [-config path] solution.py
//
// Commands read from stdin:
//
//	t  toggle autocomplete
//	s  show the pending suggestion
//	a  accept the pending suggestion
//	k  send Ctrl+Shift (same as a)
//	r  request an AI review of the last accepted submission
//	u  open the upgrade page of the last upgrade notice
//	q  quit
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"tle_zone_assist/internal/assist"
	"tle_zone_assist/internal/domain/model"
	"tle_zone_assist/internal/platform/config"
)

func main() {
	configPath := flag.String("config", config.ClientConfigPath(), "path to assist.toml")
	problemID := flag.String("problem", "", "problem id used to look up your latest submission")
	langFlag := flag.String("lang", "", "editor language (JAVASCRIPT, PYTHON, JAVA, CPP, GO)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: assist -problem <id> [-lang LANG] [-config path] <file>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	cfg, err := config.LoadClientConfig(*configPath)
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}
	if *langFlag != "" {
		cfg.Language = *langFlag
	}
	lang, err := model.ParseLanguage(cfg.Language)
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := assist.NewHTTPClient(cfg.APIBaseURL, cfg.Token, cfg.Timeout())

	role := assist.RoleAbsent
	if user, err := client.CurrentUser(ctx); err != nil {
		log.Printf("WARN: could not load current user: %v", err)
	} else {
		role = assist.LookupRole(user)
	}
	log.Printf("INFO: signed in with role %s", role)

	content, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("ERROR: read %s: %v", path, err)
	}
	buf := assist.NewBuffer(string(content))
	buf.SetPosition(buf.End())

	notes := &terminalNotifier{}
	session := assist.NewSession(assist.Options{
		Service:        client,
		Editor:         buf,
		Notifier:       notes,
		Display:        assist.ReviewDisplayFunc(printReview),
		Role:           func() model.Role { return role },
		Language:       lang,
		DebounceWindow: cfg.DebounceWindow(),
		OpenUpgrade: func() {
			fmt.Printf("Upgrade at %s/pricing\n", strings.TrimRight(cfg.APIBaseURL, "/"))
		},
	})
	defer session.Close()

	keys := assist.NewKeyEvents()
	release := session.Mount(keys)
	defer release()

	w := newWatcher(path, buf, session, cfg.PollInterval())
	session.SetCode(string(content))
	go w.run(ctx)

	commands := make(chan string)
	go func() {
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			commands <- strings.TrimSpace(sc.Text())
		}
		close(commands)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case cmd, ok := <-commands:
			if !ok {
				return
			}
			switch cmd {
			case "q":
				return
			case "t":
				fmt.Printf("autocomplete: %v\n", session.ToggleAutocomplete())
			case "s":
				if p := session.PendingSuggestion(); p != "" {
					fmt.Printf("suggestion: %q\n", p)
				} else if session.Loading() {
					fmt.Println("(loading)")
				} else {
					fmt.Println("(no suggestion)")
				}
			case "a":
				if session.AcceptSuggestion() {
					w.flush()
				}
			case "k":
				ev := &assist.KeyEvent{Key: "Shift", Ctrl: true, Shift: true}
				keys.Dispatch(ev)
				if ev.DefaultPrevented() {
					w.flush()
				}
			case "r":
				requestReview(ctx, client, session, *problemID)
			case "u":
				notes.runAction()
			case "":
			default:
				fmt.Printf("unknown command %q\n", cmd)
			}
		}
	}
}

func requestReview(ctx context.Context, client *assist.HTTPClient, session *assist.Session, problemID string) {
	if session.ReviewLoading() {
		fmt.Println("(review in progress)")
		return
	}
	if !assist.IsEntitled(session.Role(), model.FeatureReview) {
		session.RequestReview(ctx, nil)
		return
	}
	var last *model.Submission
	if problemID != "" {
		sub, err := client.LatestSubmission(ctx, problemID)
		if err != nil {
			log.Printf("WARN: could not load latest submission: %v", err)
		}
		last = sub
	}
	fmt.Println("requesting review...")
	session.RequestReview(ctx, last)
}

func printReview(review string) {
	fmt.Println("---- AI code review ----")
	fmt.Println(review)
	fmt.Println("------------------------")
}

type terminalNotifier struct {
	mu     sync.Mutex
	action *assist.Action
}

func (n *terminalNotifier) Notify(note assist.Notice) {
	line := fmt.Sprintf("[%s] %s", note.Level, note.Message)
	if note.Description != "" {
		line += ": " + note.Description
	}
	if note.Action != nil {
		line += fmt.Sprintf(" (u: %s)", note.Action.Label)
		n.mu.Lock()
		n.action = note.Action
		n.mu.Unlock()
	}
	fmt.Println(line)
}

func (n *terminalNotifier) runAction() {
	n.mu.Lock()
	a := n.action
	n.mu.Unlock()
	if a == nil {
		fmt.Println("(nothing to open)")
		return
	}
	a.Run()
}
