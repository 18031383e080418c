// Package agent provides an interactive AI assistant that answers questions
// about a computed fiscal report.
package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

const adviserInstruction = `You are a careful assistant for a crypto wallet fiscal report.
The report below was computed from the user's own transaction ledger under a
legal-tender realization rule: only disposals of crypto into state-issued
currency are taxable; conversions into stablecoins or other crypto assets are
tax-deferred. Answer questions about the report only from its figures, state
clearly when a figure is not in the report, and never invent amounts.

`

// Adviser is a chat session grounded on one fiscal report.
type Adviser struct {
	w     io.Writer
	r     *bufio.Reader
	model string
	chat  *genai.Chat
}

// New creates an Adviser reading user input from r and writing to w.
func New(w io.Writer, r io.Reader) *Adviser {
	return &Adviser{w: w, r: bufio.NewReader(r), model: defaultModel}
}

// Start creates the chat session, grounding it on the report markdown.
func (a *Adviser) Start(ctx context.Context, client *genai.Client, report string) error {
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: adviserInstruction + report}},
		},
	}
	chat, err := client.Chats.Create(ctx, a.model, config, nil)
	if err != nil {
		return err
	}
	a.chat = chat
	return nil
}

// Ask sends one question and returns the adviser's answer.
func (a *Adviser) Ask(ctx context.Context, question string) (string, error) {
	resp, err := a.chat.Send(ctx, &genai.Part{Text: question})
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from the adviser")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

const prompt = "assist> "

// Run starts the interactive REPL session. Optional prompts are consumed
// before reading from the user.
func (a *Adviser) Run(ctx context.Context, prompts ...string) error {
	fmt.Fprintln(a.w, "Ask about your fiscal report. Type 'bye' to exit.")

	for {
		fmt.Fprint(a.w, prompt)
		var input string

		if len(prompts) > 0 {
			input, prompts = prompts[0], prompts[1:]
			input = strings.TrimSpace(input)
			if input == "" {
				continue
			}
			fmt.Fprintln(a.w, input)
		} else {
			var err error
			input, err = a.r.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					return nil // Clean exit on Ctrl+D
				}
				return err
			}
		}

		if strings.TrimSpace(input) == "bye" {
			return nil
		}

		answer, err := a.Ask(ctx, input)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.w, answer)
	}
}
