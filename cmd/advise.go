package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/subcommands"
	"google.golang.org/genai"

	accounting "github.com/bumlambs-max/Accounting-2.0"
	"github.com/bumlambs-max/Accounting-2.0/advisor"
	"github.com/bumlambs-max/Accounting-2.0/renderer"
)

// adviseCmd holds the flags for the 'advise' subcommand.
type adviseCmd struct {
	date string
	chat bool
}

func (*adviseCmd) Name() string     { return "advise" }
func (*adviseCmd) Synopsis() string { return "ask the AI advisor about the books" }
func (*adviseCmd) Usage() string {
	return `fbk advise [-d <date>] [-chat] [question ...]

  Sends the summary of the books to the AI advisor and prints its
  suggestions. With -chat, keeps the conversation open for follow-up
  questions; type 'bye' to exit.

  Needs a Gemini API key in GEMINI_API_KEY.
`
}

func (c *adviseCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", accounting.Today().String(), "Date to summarize the books on.")
	f.BoolVar(&c.chat, "chat", false, "Keep the conversation open for follow-up questions.")
}

func (c *adviseCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := accounting.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	b, err := loadBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	summary := renderer.SummaryMarkdown(b, on)

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	adv := advisor.New()
	if err := adv.Start(ctx, client); err != nil {
		fmt.Fprintln(os.Stderr, "Error starting the advisor:", err)
		return subcommands.ExitFailure
	}

	answer, err := adv.Advise(ctx, summary, strings.Join(f.Args(), " "))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Advisor failed:", err)
		return subcommands.ExitFailure
	}
	printMarkdown(answer)

	if !c.chat {
		return subcommands.ExitSuccess
	}

	// REPL loop
	fmt.Println("Type 'bye' to exit.")
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("advise> ")
		input, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return subcommands.ExitSuccess // Clean exit on Ctrl+D
			}
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		if strings.TrimSpace(input) == "bye" {
			return subcommands.ExitSuccess
		}

		answer, err := adv.Ask(ctx, input)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Advisor failed:", err)
			return subcommands.ExitFailure
		}
		printMarkdown(answer)
	}
}
