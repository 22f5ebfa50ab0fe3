package notifier

import (
	"fmt"
	"strings"

	"BankReserves/internal/model"
)

// FormatTickReport renders the per-tick aggregates.
func FormatTickReport(rep *model.TickReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🏦 <b>BankReserves</b> | tick %d\n\n", rep.Tick)
	fmt.Fprintf(&b, "Total loans: %.2f\n", rep.TotalLoans)
	fmt.Fprintf(&b, "Total savings: %.2f\n", rep.TotalSavings)
	if rep.InterestAccrued > 0 {
		fmt.Fprintf(&b, "Interest this tick: %.2f\n", rep.InterestAccrued)
	}
	b.WriteString("\n")
	b.WriteString(FormatCensus(rep.Census))
	return b.String()
}

// FormatCensus renders the tier counts with their share of the population.
func FormatCensus(c model.Census) string {
	total := c.Total()
	share := func(n int) float64 {
		if total == 0 {
			return 0
		}
		return float64(n) / float64(total) * 100
	}
	var b strings.Builder
	b.WriteString("👥 <b>Census</b>\n")
	fmt.Fprintf(&b, "  Rich: %d (%.0f%%)\n", c.Rich, share(c.Rich))
	fmt.Fprintf(&b, "  Middle: %d (%.0f%%)\n", c.Middle, share(c.Middle))
	fmt.Fprintf(&b, "  Poor: %d (%.0f%%)\n", c.Poor, share(c.Poor))
	return b.String()
}

// FormatBank renders the bank's books.
func FormatBank(bank *model.Bank) string {
	var b strings.Builder
	b.WriteString("📒 <b>Bank</b>\n")
	fmt.Fprintf(&b, "  Deposits: %.2f\n", bank.Deposits)
	fmt.Fprintf(&b, "  Reserves: %.2f (%.0f%%)\n", bank.Reserves, bank.ReservePercent*100)
	fmt.Fprintf(&b, "  Loans out: %.2f\n", bank.BankLoans)
	fmt.Fprintf(&b, "  Available to lend: %.2f\n", max(bank.BankToLoan, 0))
	return b.String()
}

// FormatSummary renders a full status message for a run.
func FormatSummary(runID string, rep *model.TickReport) string {
	return fmt.Sprintf("%s\n%s\nrun <code>%s</code>", FormatTickReport(rep), FormatBank(&rep.Bank), runID)
}
