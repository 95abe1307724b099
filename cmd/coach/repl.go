package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Adsharma18/AiCareerCoachClean/internal/service"
	"github.com/Adsharma18/AiCareerCoachClean/pkg/chat"
	"github.com/Adsharma18/AiCareerCoachClean/pkg/coachapi"

	"github.com/fatih/color"
)

const (
	defaultPDFPath  = "Career_Roadmap.pdf"
	exportTitle     = "My Career Roadmap & Advice"
	exportFilename  = "career-roadmap.pdf"
	welcomeGreeting = "Hi! I'm your AI career coach. Tell me where you are and where you want to go."
)

var (
	userColor   = color.New(color.FgCyan, color.Bold)
	coachColor  = color.New(color.FgGreen)
	errorColor  = color.New(color.FgRed)
	hintColor   = color.New(color.FgHiBlack)
	noticeColor = color.New(color.FgYellow)
)

// REPL renders the conversation and forwards user intents to the coordinator
type REPL struct {
	coordinator service.ISessionCoordinator
	in          io.Reader
	out         io.Writer
	printed     int

	PDFPath string
	// WriteFile is swapped in tests
	WriteFile func(name string, data []byte, perm os.FileMode) error
}

func NewREPL(coordinator service.ISessionCoordinator, in io.Reader, out io.Writer) *REPL {
	return &REPL{
		coordinator: coordinator,
		in:          in,
		out:         out,
		PDFPath:     defaultPDFPath,
		WriteFile:   os.WriteFile,
	}
}

func (r *REPL) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	unsubscribe := r.coordinator.Conversation().Subscribe(r.render)
	defer unsubscribe()

	coachColor.Fprintln(r.out, welcomeGreeting)
	hintColor.Fprintln(r.out, "Type /help for commands.")

	scanner := bufio.NewScanner(r.in)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for {
		userColor.Fprint(r.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			if quit := r.command(ctx, line); quit {
				return nil
			}
			continue
		}

		r.send(ctx, line)
	}
}

// render prints turns appended since the last snapshot
func (r *REPL) render(snapshot chat.Snapshot) {
	if len(snapshot.Turns) < r.printed {
		r.printed = len(snapshot.Turns)
	}

	for _, turn := range snapshot.Turns[r.printed:] {
		switch {
		case turn.IsUser():
			// typed by the user, already on screen
		case turn.IsError:
			errorColor.Fprintln(r.out, turn.Content)
		default:
			coachColor.Fprintf(r.out, "Coach: %s\n", turn.Content)
		}
	}
	r.printed = len(snapshot.Turns)
}

func (r *REPL) send(ctx context.Context, text string) {
	hintColor.Fprintln(r.out, "Coach is thinking...")
	r.report(r.coordinator.Send(ctx, text))
}

func (r *REPL) report(err error) {
	var validationErr *coachapi.ValidationError
	switch {
	case err == nil:
	case errors.As(err, &validationErr):
		noticeColor.Fprintln(r.out, validationErr.Message)
		return
	case errors.Is(err, service.ErrRequestInFlight):
		noticeColor.Fprintln(r.out, "Still waiting for the coach, please hold on.")
		return
	case errors.Is(err, service.ErrNothingToRetry):
		noticeColor.Fprintln(r.out, "Nothing to retry yet.")
		return
	default:
		errorColor.Fprintln(r.out, err.Error())
		return
	}

	if r.coordinator.LastError() != "" {
		hintColor.Fprintln(r.out, "Type /retry to try again.")
	} else if r.coordinator.ExportEligible() {
		hintColor.Fprintln(r.out, "Roadmap ready. Type /pdf to download it.")
	}
}

func (r *REPL) command(ctx context.Context, line string) (quit bool) {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "/quit", "/exit":
		return true
	case "/help":
		r.help()
	case "/retry":
		if _, ok := r.coordinator.Conversation().LastUserTurn(); ok {
			hintColor.Fprintln(r.out, "Retrying...")
		}
		r.report(r.coordinator.Retry(ctx))
	case "/pdf":
		r.exportPDF(ctx, arg)
	case "/goal":
		r.coordinator.SetGoal(arg)
		if arg == "" {
			noticeColor.Fprintln(r.out, "Career goal cleared.")
		} else {
			noticeColor.Fprintf(r.out, "Career goal set: %s\n", arg)
		}
	case "/reset":
		if err := r.coordinator.Reset(); err != nil {
			r.report(err)
			return false
		}
		noticeColor.Fprintln(r.out, "Started a new conversation.")
	default:
		noticeColor.Fprintf(r.out, "Unknown command %s. Type /help.\n", name)
	}
	return false
}

func (r *REPL) exportPDF(ctx context.Context, path string) {
	if path == "" {
		path = r.PDFPath
	}

	if !r.coordinator.ExportEligible() {
		noticeColor.Fprintln(r.out, "Ask for a roadmap first, then use /pdf.")
		return
	}

	data, err := r.coordinator.ExportRoadmap(ctx, coachapi.ExportOptions{
		Title:    exportTitle,
		Filename: exportFilename,
	})
	if err != nil {
		var exportErr *coachapi.ExportError
		if errors.As(err, &exportErr) {
			errorColor.Fprintf(r.out, "PDF export failed: %s\n", exportErr.Message)
			return
		}
		r.report(err)
		return
	}

	if err := r.WriteFile(path, data, 0o644); err != nil {
		errorColor.Fprintf(r.out, "Could not save PDF: %v\n", err)
		return
	}
	noticeColor.Fprintf(r.out, "Roadmap saved to %s\n", path)
}

func (r *REPL) help() {
	fmt.Fprintln(r.out, `Commands:
  /retry        resend the last message after a failure
  /pdf [path]   save the latest roadmap as a PDF
  /goal <text>  set the career goal printed on exported roadmaps
  /reset        start a new conversation
  /help         show commands
  /quit         exit`)
}
