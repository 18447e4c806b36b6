package main

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/neurlang/punchedcards/trainer"
)

func printReport(w io.Writer, r trainer.Report) {
	pterm.Fprintln(w, pterm.Sprintf("%s %s", pterm.LightCyan("Punched card bit length:"), pterm.Yellow(r.BitLength)))
	if r.Err != nil {
		pterm.Fprintln(w, pterm.Sprintf("  %s %s", pterm.Red("Failed:"), pterm.White(r.Err.Error())))
		pterm.Fprintln(w)
		return
	}
	pterm.Fprintln(w, pterm.Sprintf("%s %s",
		pterm.Gray("Unique lookup combinations per punched card (descending):"),
		trainer.LookupsString(r.Lookups)))
	pterm.Fprintln(w, pterm.Sprintf("%s %s correct recognitions of %d",
		pterm.LightGreen("Training results:"), pterm.White(r.TrainCorrect), r.TrainTotal))
	pterm.Fprintln(w, pterm.Sprintf("%s %s correct recognitions of %d",
		pterm.LightGreen("Test results:"), pterm.White(r.TestCorrect), r.TestTotal))
	pterm.Fprintln(w, pterm.Sprintf("  %s %s %s %s %s %s",
		pterm.Gray("→ global top card"), pterm.Yellow(r.GlobalTopKey),
		pterm.Gray("diversity"), pterm.Yellow(r.GlobalTopDiversity),
		pterm.Gray("fingerprint"), pterm.LightMagenta(fmt.Sprintf("%x", r.Fingerprint[:8]))))
	pterm.Fprintln(w)
}
