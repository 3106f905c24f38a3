package exam

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studydeck/internal/session"
	"github.com/abhisek/studydeck/internal/ui/components"
	"github.com/abhisek/studydeck/internal/ui/theme"
)

const maxBodyWidth = 72

func bodyWidth(width int) int {
	w := width - 8
	if w > maxBodyWidth {
		w = maxBodyWidth
	}
	if w < 20 {
		w = 20
	}
	return w
}

// renderQuestionView renders the active question.
func (s *ExamScreen) renderQuestionView(width int) string {
	snap := s.snap
	q := snap.Question
	if q == nil {
		return renderLoading(width)
	}
	w := bodyWidth(width)

	var b strings.Builder

	// Info line: counter, mode badge, score when allowed.
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("Q %d / %d", snap.CurrentIndex+1, snap.Total))
	if snap.Mode == session.ModeTest {
		infoLeft += "  " + theme.LiveBadge.Render("LIVE TEST")
	} else {
		infoLeft += "  " + theme.PracticeBadge.Render("PRACTICE")
	}
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d/%d done", snap.Done(), snap.Total))
	if snap.ShowScore {
		infoRight = lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("Score %s", lipgloss.NewStyle().Foreground(theme.Success).Render(fmt.Sprint(snap.Score)))) +
			"  " + infoRight
	}
	infoLine := infoLeft
	if pad := w - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight); pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(components.NewStepProgress(snap.CurrentIndex, snap.Total, w).View())
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(w).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Question))
	b.WriteString("\n\n")

	opts := components.OptionList{
		Options:  q.Options,
		Selected: snap.Selected,
		Cursor:   s.cursor,
		Reveal:   snap.RevealCorrectness,
		Correct:  -1,
		Width:    w,
	}
	if snap.RevealCorrectness {
		opts.Correct = q.CorrectAnswer
	}
	b.WriteString(opts.View())

	if snap.RevealCorrectness {
		b.WriteString("\n")
		if q.IsCorrect(snap.Selected) {
			b.WriteString(theme.Correct.Render("Correct!"))
		} else {
			b.WriteString(theme.Incorrect.Render(fmt.Sprintf("Not quite. The answer is %s.", components.OptionLetter(q.CorrectAnswer))))
		}
		b.WriteString("\n")
	}
	if snap.RevealCorrectness {
		explanation := q.Explanation
		if !snap.ShowExplanation {
			explanation = "No explanation provided."
		}
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(w).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1).
			Foreground(theme.TextDim).
			Render("Explanation\n" + explanation))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if snap.Answered {
		label := "Next Question →"
		if snap.IsLast() {
			label = "Finish"
		}
		b.WriteString(theme.Button.Render(label))
	} else {
		b.WriteString(theme.Hint.Render("Pick an answer: " + optionKeys(len(q.Options)) + ", or ↑↓ and Enter"))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

// renderResult renders the finished session with its review list.
func (s *ExamScreen) renderResult(width, height int) string {
	snap := s.snap
	w := bodyWidth(width)

	heading := "Practice Complete!"
	if snap.Mode == session.ModeTest {
		heading = "Test Submitted!"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(w).Render(heading))
	b.WriteString("\n\n")

	scoreStyle := theme.Correct
	if snap.Total > 0 && snap.Score*2 < snap.Total {
		scoreStyle = theme.Incorrect
	}
	b.WriteString(lipgloss.NewStyle().Width(w).Align(lipgloss.Center).Render(
		scoreStyle.Render(fmt.Sprintf("%d", snap.Score)) +
			theme.Faded.Render(fmt.Sprintf(" / %d", snap.Total))))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(w).Render(fmt.Sprintf("Score Out of %d  ·  %d%%  ·  %s",
		snap.Total, percent(snap.Score, snap.Total), formatElapsed(snap.Elapsed))))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(w).Render("Attempt " + snap.ShortID()))
	b.WriteString("\n\n")

	// Leave room for the heading, score and action lines.
	room := height - 10
	for i, item := range snap.Review {
		if room > 0 && i >= room {
			b.WriteString(theme.Hint.Render(fmt.Sprintf("  … %d more", len(snap.Review)-i)))
			b.WriteString("\n")
			break
		}
		b.WriteString(renderReviewLine(i, item, w))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("[R] Retry   [Esc] Exit"))

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

func renderReviewLine(i int, item session.ReviewItem, width int) string {
	mark := theme.Correct.Render("✓")
	if !item.Correct {
		mark = theme.Incorrect.Render("✗")
	}
	answer := fmt.Sprintf("you: %s, answer: %s",
		components.OptionLetter(item.Selected), components.OptionLetter(item.Question.CorrectAnswer))
	if item.Correct {
		answer = "answer: " + components.OptionLetter(item.Question.CorrectAnswer)
	}
	prompt := item.Question.Question
	maxPrompt := width - lipgloss.Width(answer) - 10
	if maxPrompt > 3 && len([]rune(prompt)) > maxPrompt {
		prompt = string([]rune(prompt)[:maxPrompt-1]) + "…"
	}
	return fmt.Sprintf("%s %2d. %s  %s", mark, i+1, theme.Body.Render(prompt), theme.Faded.Render(answer))
}

// optionKeys describes the keys that pick one of n options, e.g. "1-4 or A-D".
func optionKeys(n int) string {
	if n < 1 {
		return ""
	}
	last := components.OptionLetter(n - 1)
	return fmt.Sprintf("1-%d or A-%s", n, last)
}

func percent(score, total int) int {
	if total == 0 {
		return 0
	}
	return score * 100 / total
}

func formatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

// renderNoContent renders the empty chapter state.
func renderNoContent(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("No Questions Added Yet"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Check back once this chapter is published.\n\nPress any key to go back."))
	return b.String()
}

// renderQuitConfirm renders the leave-test dialog.
func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Leave the test?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Your answers will not be submitted."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render("[Y] Yes, leave"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Render("[N] No, keep going"))

	return b.String()
}

// renderLoading renders the loading state.
func renderLoading(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Loading questions...")
}

// renderError renders an error message.
func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}
