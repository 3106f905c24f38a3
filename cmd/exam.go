package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/abhisek/studydeck/internal/content"
	"github.com/abhisek/studydeck/internal/session"
	"github.com/abhisek/studydeck/internal/ui/components"
	"github.com/spf13/cobra"
)

var examCmd = &cobra.Command{
	Use:   "exam",
	Short: "Run a practice or test session without the TUI",
	Long: `Play one chapter's practice or test questions on the command line.

Answers come from --answers when given (option indices starting at 0, or
letters A-H), otherwise they are read interactively from stdin.`,
	RunE: runExamCmd,
}

func init() {
	examCmd.Flags().String("subject", "", "Subject name, e.g. Physics (required)")
	examCmd.Flags().String("chapter", "", "Chapter id (required)")
	examCmd.Flags().String("mode", "practice", "Session mode: practice or test")
	examCmd.Flags().String("answers", "", "Comma separated answers, e.g. 0,2,1 or A,C,B")
	_ = examCmd.MarkFlagRequired("subject")
	_ = examCmd.MarkFlagRequired("chapter")
}

func runExamCmd(cmd *cobra.Command, args []string) error {
	subject, _ := cmd.Flags().GetString("subject")
	chapter, _ := cmd.Flags().GetString("chapter")
	modeVal, _ := cmd.Flags().GetString("mode")
	answersVal, _ := cmd.Flags().GetString("answers")

	mode, err := content.ParseMode(modeVal)
	if err != nil {
		return err
	}

	var answers answerSource
	if answersVal != "" {
		list, err := parseAnswerList(answersVal)
		if err != nil {
			return err
		}
		answers = &listAnswers{answers: list}
	} else {
		answers = &promptAnswers{out: cmd.OutOrStdout(), scanner: bufio.NewScanner(cmd.InOrStdin())}
	}

	profile, err := loadProfile(cmd)
	if err != nil {
		return err
	}
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	resolver := content.NewStoreResolver(st.ContentRepo())
	loc := profile.Locator(subject, chapter, mode)
	return runHeadlessExam(cmd.Context(), cmd.OutOrStdout(), resolver, loc, answers)
}

// answerSource yields the option chosen for each question.
type answerSource interface {
	Next(q content.QuestionItem) (int, error)
}

type listAnswers struct {
	answers []int
	next    int
}

func (l *listAnswers) Next(content.QuestionItem) (int, error) {
	if l.next >= len(l.answers) {
		return 0, fmt.Errorf("ran out of answers after %d", len(l.answers))
	}
	k := l.answers[l.next]
	l.next++
	return k, nil
}

type promptAnswers struct {
	out     io.Writer
	scanner *bufio.Scanner
}

func (p *promptAnswers) Next(q content.QuestionItem) (int, error) {
	for {
		fmt.Fprint(p.out, "\nYour answer: ")
		if !p.scanner.Scan() {
			return 0, fmt.Errorf("input closed")
		}
		k, err := parseAnswer(p.scanner.Text())
		if err == nil && q.ValidOption(k) {
			return k, nil
		}
		fmt.Fprintf(p.out, "Enter a letter A-%s.\n", components.OptionLetter(len(q.Options)-1))
	}
}

// parseAnswer accepts an option letter or a 0-based index.
func parseAnswer(s string) (int, error) {
	s = strings.TrimSpace(s)
	if len(s) == 1 {
		if i := strings.IndexByte(components.OptionLetters, strings.ToUpper(s)[0]); i >= 0 {
			return i, nil
		}
	}
	k, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid answer %q", s)
	}
	return k, nil
}

func parseAnswerList(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		k, err := parseAnswer(part)
		if err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, nil
}

// runHeadlessExam drives one session to completion and prints the result.
func runHeadlessExam(ctx context.Context, out io.Writer, resolver content.Resolver, loc content.Locator, answers answerSource) error {
	sess, err := session.Start(ctx, resolver, loc, loc.Mode)
	if err != nil {
		return err
	}

	snap := sess.Snapshot()
	if snap.Phase == session.PhaseNoContent {
		fmt.Fprintf(out, "No questions added yet for %s.\n", loc)
		return nil
	}

	fmt.Fprintf(out, "%s %s: %d questions\n", loc.Mode, loc.Subject, snap.Total)

	for snap.Phase == session.PhaseActive {
		q := snap.Question
		fmt.Fprintf(out, "\n── Q %d / %d ──\n", snap.CurrentIndex+1, snap.Total)
		fmt.Fprintln(out, q.Question)
		for i, opt := range q.Options {
			fmt.Fprintf(out, "  %s) %s\n", components.OptionLetter(i), opt)
		}

		k, err := answers.Next(*q)
		if err != nil {
			return fmt.Errorf("question %d: %w", snap.CurrentIndex+1, err)
		}
		if err := sess.SelectOption(k); err != nil {
			return fmt.Errorf("question %d: answer %d: %w", snap.CurrentIndex+1, k, err)
		}

		snap = sess.Snapshot()
		if snap.RevealCorrectness {
			if q.IsCorrect(k) {
				fmt.Fprintln(out, "✓ Correct!")
			} else {
				fmt.Fprintf(out, "✗ Not quite. The answer is %s.\n", components.OptionLetter(q.CorrectAnswer))
			}
		}
		switch {
		case snap.ShowExplanation:
			fmt.Fprintf(out, "Explanation: %s\n", q.Explanation)
		case snap.RevealCorrectness:
			fmt.Fprintln(out, "Explanation: No explanation provided.")
		}

		if err := sess.Advance(); err != nil {
			return fmt.Errorf("advance: %w", err)
		}
		snap = sess.Snapshot()
	}

	r, ok := sess.Result()
	if !ok {
		return fmt.Errorf("session ended in %s", snap.Phase)
	}
	fmt.Fprintf(out, "\n── Score: %s (%d%%) ──\n", r, r.Percent())
	fmt.Fprintf(out, "Attempt %s\n", r.AttemptID)
	return nil
}
