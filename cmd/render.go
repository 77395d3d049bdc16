package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/kaushalvivek/calendar-agent/internal/schedule"
)

// Color definitions for terminal output
var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

// tierPaint maps each priority tier to its terminal color.
func tierPaint(tier schedule.Tier) func(a ...interface{}) string {
	switch tier {
	case schedule.TierCritical:
		return red
	case schedule.TierImportant:
		return yellow
	case schedule.TierModerate:
		return cyan
	default:
		return gray
	}
}

func formatMinutes(minutes int) string {
	return fmt.Sprintf("%dh%02dm", minutes/60, minutes%60)
}

// renderAnalysis writes the day's analysis to w. Free blocks shorter than
// minFreeBlockMinutes are summarized rather than listed.
func renderAnalysis(w io.Writer, a *schedule.AnalysisResult, date time.Time, window schedule.WorkWindow, minFreeBlockMinutes int) {
	fmt.Fprintf(w, "%s  %s\n", bold(date.Format("Mon 2006-01-02")),
		gray(fmt.Sprintf("(%s - %s)", window.Start.Format("15:04"), window.End.Format("15:04"))))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  Meetings      %d\n", a.MeetingCount)
	fmt.Fprintf(w, "  Busy          %s\n", formatMinutes(a.BusyMinutes))
	if a.FocusMinutes > 0 {
		fmt.Fprintf(w, "  Focus         %s\n", cyan(formatMinutes(a.FocusMinutes)))
	}
	fmt.Fprintf(w, "  Free          %s\n", green(formatMinutes(a.FreeMinutes)))
	if a.BackToBackCount > 0 {
		fmt.Fprintf(w, "  Back-to-back  %s\n", yellow(fmt.Sprintf("%d", a.BackToBackCount)))
	} else {
		fmt.Fprintf(w, "  Back-to-back  0\n")
	}
	if a.DeclinedCount > 0 {
		fmt.Fprintf(w, "  Declined      %s\n", gray(fmt.Sprintf("%d (excluded)", a.DeclinedCount)))
	}

	hidden := 0
	listed := false
	for _, block := range a.FreeBlocks {
		if block.Minutes() < minFreeBlockMinutes {
			hidden++
			continue
		}
		if !listed {
			fmt.Fprintf(w, "\n%s\n", bold("Free blocks:"))
			listed = true
		}
		fmt.Fprintf(w, "  %s %s - %s  %s\n",
			green("●"),
			block.Start.Format("15:04"),
			block.End.Format("15:04"),
			gray(fmt.Sprintf("%d min", block.Minutes())))
	}
	if !listed {
		fmt.Fprintf(w, "\n%s\n", yellow(fmt.Sprintf("No free blocks of %d minutes or more.", minFreeBlockMinutes)))
	}
	if hidden > 0 {
		fmt.Fprintf(w, "  %s\n", gray(fmt.Sprintf("(%d shorter gaps hidden)", hidden)))
	}
}

// statusPaint returns the icon and color for a response status.
func statusPaint(status schedule.ResponseStatus) (string, func(a ...interface{}) string) {
	switch status {
	case schedule.StatusAccepted:
		return "✓", green
	case schedule.StatusTentative:
		return "?", yellow
	case schedule.StatusDeclined:
		return "✗", gray
	default:
		return "·", gray
	}
}

// renderEventList writes the day's events to w in chronological order.
// Declined events are hidden unless showDeclined is set.
func renderEventList(w io.Writer, events []schedule.Event, showDeclined bool) {
	shown := 0
	for _, ev := range events {
		if ev.Status == schedule.StatusDeclined && !showDeclined {
			continue
		}
		icon, paint := statusPaint(ev.Status)
		fmt.Fprintf(w, "  %s %s - %s  %s  %s\n",
			paint(icon),
			ev.Start.Format("15:04"),
			ev.End.Format("15:04"),
			ev.Title,
			gray(fmt.Sprintf("%d min", int(ev.Duration().Minutes()))))
		shown++
	}
	if shown == 0 {
		fmt.Fprintf(w, "  %s\n", gray("No events."))
	}
}

// renderRanking writes the day's priority tiers to w, skipping empty tiers.
func renderRanking(w io.Writer, r *schedule.RankingResult, date time.Time) {
	fmt.Fprintf(w, "%s  %s\n", bold(date.Format("Mon 2006-01-02")),
		gray(fmt.Sprintf("%d meetings", r.Total())))

	if r.Total() == 0 {
		fmt.Fprintf(w, "\n%s\n", gray("No meetings."))
		return
	}

	for _, tier := range schedule.Tiers() {
		events := r.ByTier(tier)
		if len(events) == 0 {
			continue
		}
		paint := tierPaint(tier)
		fmt.Fprintf(w, "\n%s\n", paint(fmt.Sprintf("%s (%d)", string(tier), len(events))))
		for _, ev := range events {
			fmt.Fprintf(w, "  %s - %s  %s",
				ev.Start.Format("15:04"),
				ev.End.Format("15:04"),
				ev.Title)
			if ev.AttendeeCount > 0 {
				fmt.Fprintf(w, "  %s", gray(fmt.Sprintf("%d attendees", ev.AttendeeCount)))
			}
			if ev.Status == schedule.StatusTentative {
				fmt.Fprintf(w, "  %s", yellow("tentative"))
			}
			fmt.Fprintln(w)
		}
	}
}
