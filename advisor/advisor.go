// Package advisor connects the farm books to a Gemini model. It opens a
// chat seeded with the rendered farm summary and returns husbandry and
// finance suggestions grounded in those figures.
package advisor

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// Advisor is a chat with a farm management expert.
type Advisor struct {
	ModelName string
	Config    *genai.GenerateContentConfig
	chat      *genai.Chat
}

// New returns an advisor ready to Start.
func New() *Advisor {
	return &Advisor{
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an experienced farm management advisor. The user runs a
			small farm and keeps their books in this app. Every conversation
			opens with a markdown summary of those books: cash position,
			cashflow and breakeven progress, livestock and inventory
			valuations, debts and mortality.

			Read the figures before answering. Give practical husbandry and
			finance suggestions grounded in the numbers: flag mortality
			spikes, installments falling due, a widening breakeven gap, or
			expense categories growing out of proportion, and propose
			concrete next steps. Answer in short markdown. When the books
			don't hold enough information to answer, say what is missing
			instead of guessing.
		`}}},
		},
	}
}

// Start creates the underlying chat session.
func (a *Advisor) Start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, a.ModelName, a.Config, nil)
	if err != nil {
		return err
	}
	a.chat = chat
	return nil
}

// Advise opens the conversation: it sends the rendered summary together
// with the user's question (or a default request for a review) and
// returns the advisor's suggestions.
func (a *Advisor) Advise(ctx context.Context, summary, question string) (string, error) {
	return a.send(ctx, Prompt(summary, question))
}

// Ask sends a follow-up question in the same conversation. The advisor
// keeps the summary and previous exchanges as context.
func (a *Advisor) Ask(ctx context.Context, question string) (string, error) {
	return a.send(ctx, question)
}

func (a *Advisor) send(ctx context.Context, text string) (string, error) {
	if a.chat == nil {
		return "", fmt.Errorf("advisor session not started")
	}
	resp, err := a.chat.Send(ctx, &genai.Part{Text: text})
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from the advisor")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

// Prompt assembles the opening message from the rendered summary and an
// optional question.
func Prompt(summary, question string) string {
	var b strings.Builder
	b.WriteString("Here are my farm books:\n\n")
	b.WriteString(summary)
	b.WriteString("\n\n")
	if q := strings.TrimSpace(question); q != "" {
		b.WriteString(q)
	} else {
		b.WriteString("Review these books and tell me what deserves my attention.")
	}
	return b.String()
}
