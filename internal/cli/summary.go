package cli

import (
	"fmt"
	"io"

	"github.com/railstart-labs/railstart/internal/apply"
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	_ = message.Set(language.English, "%d files written",
		plural.Selectf(1, "%d", "=1", "1 file written", "other", "%d files written"))
	_ = message.Set(language.English, "%d patches applied",
		plural.Selectf(1, "%d", "=1", "1 patch applied", "other", "%d patches applied"))
	_ = message.Set(language.English, "%d commands run",
		plural.Selectf(1, "%d", "=1", "1 command run", "other", "%d commands run"))
	_ = message.Set(language.English, "%d warnings",
		plural.Selectf(1, "%d", "=1", "1 warning", "other", "%d warnings"))
}

func printSummary(w io.Writer, recipeName string, s *apply.Summary) {
	if s == nil {
		return
	}
	p := message.NewPrinter(language.English)

	fmt.Fprintf(w, "\nRecipe %s summary:\n", recipeName)
	printSection(p, w, "%d files written", s.Files)
	printSection(p, w, "%d patches applied", s.Patches)
	printSection(p, w, "%d commands run", s.Commands)
	printSection(p, w, "%d warnings", s.Warnings)
}

func printSection(p *message.Printer, w io.Writer, key string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "  %s\n", p.Sprintf(key, len(items)))
	for _, item := range items {
		fmt.Fprintf(w, "    - %s\n", item)
	}
}
