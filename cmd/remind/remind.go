// Package remind handles payment-reminder generation for a single party.
package remind

import (
	"context"
	"fmt"
	"strings"

	"psharma/arledger/cmd/root"
	"psharma/arledger/internal/contacts"
	"psharma/arledger/internal/ledger"
	"psharma/arledger/internal/models"
	"psharma/arledger/internal/reminder"

	"github.com/spf13/cobra"
)

var (
	partyName string
	useAI     bool
)

// Cmd represents the remind command.
var Cmd = &cobra.Command{
	Use:   "remind",
	Short: "Generate a payment reminder for a party",
	Long: `Reconcile the ledger, locate the party by name, and print reminder text
covering their outstanding bills. With --ai the text is drafted by Gemini;
otherwise a deterministic template is used.`,
	Run: remindFunc,
}

func init() {
	Cmd.Flags().StringVarP(&partyName, "party", "p", "", "Party name (required)")
	Cmd.Flags().BoolVar(&useAI, "ai", false, "Draft the reminder with Gemini")
	_ = Cmd.MarkFlagRequired("party")
}

func remindFunc(cmd *cobra.Command, args []string) {
	if root.SharedFlags.Input == "" {
		root.Log.Fatal("Input file is required (--input)")
	}

	parties, err := ledger.ParseFile(root.SharedFlags.Input, root.Logger())
	if err != nil {
		root.Log.Fatalf("Error parsing ledger file: %v", err)
	}

	if book, err := root.DataStore().LoadContacts(); err == nil {
		parties = contacts.Merge(parties, book, root.Logger())
	}

	party := findParty(parties, partyName)
	if party == nil {
		root.Log.Fatalf("No party named %q in the ledger", partyName)
	}

	cls := root.LoadClassifier()
	gen := buildGenerator()

	text, err := gen.Generate(context.Background(), party, cls)
	if err != nil {
		root.Log.Warnf("Reminder generation failed (%v), falling back to template", err)
		text, err = reminder.NewTemplateGenerator().Generate(context.Background(), party, cls)
		if err != nil {
			root.Log.Fatalf("Error generating reminder: %v", err)
		}
	}

	if party.PhoneNumber != "" {
		root.Log.Infof("Send to: %s", party.PhoneNumber)
	}
	fmt.Println(text)
}

func buildGenerator() reminder.Generator {
	if useAI && root.Cfg != nil && root.Cfg.Reminder.AIEnabled {
		gen, err := reminder.NewGeminiGenerator(context.Background(),
			root.Cfg.Reminder.APIKey, root.Cfg.Reminder.Model,
			root.Cfg.Reminder.TimeoutSeconds, root.Logger())
		if err == nil {
			return gen
		}
		root.Log.Warnf("Gemini unavailable (%v), using template", err)
	} else if useAI {
		root.Log.Warn("AI reminders are not enabled in the configuration, using template")
	}
	return reminder.NewTemplateGenerator()
}

func findParty(parties []*models.Party, name string) *models.Party {
	// exact first, then case-insensitive trimmed
	for _, p := range parties {
		if p.PartyName == name {
			return p
		}
	}
	want := strings.ToLower(strings.TrimSpace(name))
	for _, p := range parties {
		if strings.ToLower(strings.TrimSpace(p.PartyName)) == want {
			return p
		}
	}
	return nil
}
