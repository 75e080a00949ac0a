// Package cli contains the interactive study loop and the report rendering
// used by the command layer.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/at-ishikawa/cardbox/internal/flashcards"
)

// StudySessionCLI runs an interactive review loop against one deck.
type StudySessionCLI struct {
	store       *flashcards.Store
	statePath   string
	reviewLimit int

	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
	italic       *color.Color

	now func() time.Time
}

// NewStudySessionCLI creates a study CLI bound to the store and its backing
// state file.
func NewStudySessionCLI(store *flashcards.Store, statePath string, reviewLimit int) *StudySessionCLI {
	return &StudySessionCLI{
		store:        store,
		statePath:    statePath,
		reviewLimit:  reviewLimit,
		stdinReader:  bufio.NewReader(os.Stdin),
		stdoutWriter: os.Stdout,
		bold:         color.New(color.Bold),
		italic:       color.New(color.Italic),
		now:          time.Now,
	}
}

// Run reviews the deck's due cards one at a time until they run out, the
// user quits, or an interrupt arrives. State is saved after every answer so
// progress survives a kill mid-session.
func (cli *StudySessionCLI) Run(ctx context.Context, deckID string) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	cards := cli.store.CardsForReview(deckID, cli.reviewLimit)
	if len(cards) == 0 {
		fmt.Fprintln(cli.stdoutWriter, "No cards are due for review.")
		return nil
	}

	if _, err := cli.store.StartSession(deckID); err != nil {
		return fmt.Errorf("store.StartSession() > %w", err)
	}
	fmt.Fprintf(cli.stdoutWriter, "Starting a session with %d card(s). Press Ctrl-C to stop.\n\n", len(cards))

	interrupted := false
LOOP:
	for i, card := range cards {
		select {
		case <-ctx.Done():
			interrupted = true
			break LOOP
		default:
		}

		quit, err := cli.reviewOne(ctx, i+1, len(cards), card)
		if err != nil {
			return err
		}
		if quit {
			break
		}
	}

	cli.store.EndSession()
	if err := flashcards.SaveState(cli.statePath, cli.store.Snapshot()); err != nil {
		return fmt.Errorf("flashcards.SaveState() > %w", err)
	}

	if interrupted {
		fmt.Fprintln(cli.stdoutWriter, "\nReceived interrupt signal, session saved.")
	}
	cli.printSummary(deckID)
	return nil
}

// reviewOne shows a single card and records the answer. It returns true when
// the user asked to quit the session.
func (cli *StudySessionCLI) reviewOne(ctx context.Context, position, total int, card flashcards.Flashcard) (bool, error) {
	fmt.Fprintf(cli.stdoutWriter, "[%d/%d] ", position, total)
	if _, err := cli.bold.Fprintln(cli.stdoutWriter, card.Front); err != nil {
		return false, fmt.Errorf("bold.Fprintln() > %w", err)
	}

	started := cli.now()
	fmt.Fprint(cli.stdoutWriter, "Press Enter to reveal the answer (q to quit): ")
	line, err := cli.readLine(ctx)
	if err != nil {
		return false, err
	}
	if line == "q" {
		return true, nil
	}

	if _, err := cli.italic.Fprintln(cli.stdoutWriter, card.Back); err != nil {
		return false, fmt.Errorf("italic.Fprintln() > %w", err)
	}

	correct, quit, err := cli.askCorrect(ctx)
	if err != nil || quit {
		return quit, err
	}
	timeSpentMs := cli.now().Sub(started).Milliseconds()

	cli.store.ReviewCard(card.ID, correct, timeSpentMs)
	if err := flashcards.SaveState(cli.statePath, cli.store.Snapshot()); err != nil {
		return false, fmt.Errorf("flashcards.SaveState() > %w", err)
	}

	if correct {
		fmt.Fprintln(cli.stdoutWriter, "Correct!")
	} else {
		fmt.Fprintln(cli.stdoutWriter, "Marked wrong, it will come back tomorrow.")
	}
	fmt.Fprintln(cli.stdoutWriter)
	return false, nil
}

func (cli *StudySessionCLI) askCorrect(ctx context.Context) (correct, quit bool, err error) {
	for {
		fmt.Fprint(cli.stdoutWriter, "Did you get it right? [y/n/q]: ")
		line, err := cli.readLine(ctx)
		if err != nil {
			return false, false, err
		}
		switch line {
		case "y", "yes":
			return true, false, nil
		case "n", "no":
			return false, false, nil
		case "q":
			return false, true, nil
		}
	}
}

// readLine reads one trimmed, lowercased line, bailing out when the context
// is cancelled mid-read.
func (cli *StudySessionCLI) readLine(ctx context.Context) (string, error) {
	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		line, err := cli.stdinReader.ReadString('\n')
		ch <- result{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "q", nil
	case res := <-ch:
		if res.err != nil && res.line == "" {
			if res.err == io.EOF {
				return "q", nil
			}
			return "", fmt.Errorf("stdinReader.ReadString() > %w", res.err)
		}
		return strings.ToLower(strings.TrimSpace(res.line)), nil
	}
}

func (cli *StudySessionCLI) printSummary(deckID string) {
	sessions := cli.store.SessionsForDeck(deckID)
	if len(sessions) == 0 {
		return
	}
	last := sessions[0]
	if last.CardsStudied == 0 {
		fmt.Fprintln(cli.stdoutWriter, "Session ended without any reviews.")
		return
	}

	accuracy := float64(last.CorrectAnswers) / float64(last.CardsStudied) * 100
	fmt.Fprintln(cli.stdoutWriter)
	_, _ = cli.bold.Fprintln(cli.stdoutWriter, "Session summary")
	fmt.Fprintf(cli.stdoutWriter, "  Cards studied: %d\n", last.CardsStudied)
	fmt.Fprintf(cli.stdoutWriter, "  Correct:       %d (%.0f%%)\n", last.CorrectAnswers, accuracy)
	fmt.Fprintf(cli.stdoutWriter, "  Avg time:      %.1fs\n", last.AverageTimeMs/1000)
}
