// Package root contains the root command for the arledger CLI.
package root

import (
	"psharma/arledger/internal/classifier"
	"psharma/arledger/internal/config"
	"psharma/arledger/internal/logging"
	"psharma/arledger/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags holds the flags shared by multiple commands.
type CommonFlags struct {
	Input     string
	Output    string
	Companies []string
	MinDays   int
	FromDate  string
	ToDate    string
}

var (
	// Log is the shared logger instance for commands.
	Log = logrus.New()

	// Cfg is the loaded application configuration.
	Cfg *config.Config

	// SharedFlags are the flags accessible to all commands.
	SharedFlags = CommonFlags{}

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "arledger",
		Short: "A CLI tool to reconcile accounts-receivable ledger exports and chase outstanding bills.",
		Long: `arledger ingests a tabular ledger export (CSV/XLSX), reconciles each
party's credits against their oldest bills, classifies bills by company
prefix, and produces filtered reports and payment reminders.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to arledger!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()

			var err error
			Cfg, err = config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Failed to initialize configuration: %v", err)
			}
			Log = config.ConfigureLogging(Cfg)
			logging.SetDefaultLogger(logging.NewLogrusAdapterFromLogger(Log))
		},
	}
)

// Init registers the persistent flags on the root command.
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input ledger file (CSV or XLSX)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
	Cmd.PersistentFlags().StringSliceVarP(&SharedFlags.Companies, "company", "c", nil, "Restrict to these companies (repeatable)")
	Cmd.PersistentFlags().IntVar(&SharedFlags.MinDays, "min-days", 0, "Only bills at least this many days old")
	Cmd.PersistentFlags().StringVar(&SharedFlags.FromDate, "from", "", "Date bound (a single bound means 'up to this date')")
	Cmd.PersistentFlags().StringVar(&SharedFlags.ToDate, "to", "", "Upper date bound")
}

// Logger returns the shared logger wrapped in the logging interface.
func Logger() logging.Logger {
	return logging.NewLogrusAdapterFromLogger(Log)
}

// DataStore builds the ledger store from the configuration.
func DataStore() *store.LedgerStore {
	prefixes, contacts := "", ""
	if Cfg != nil {
		prefixes = Cfg.Data.PrefixesFile
		contacts = Cfg.Data.ContactsFile
	}
	return store.NewLedgerStore(prefixes, contacts, Logger())
}

// LoadClassifier builds a classifier from the persisted prefix table.
func LoadClassifier() *classifier.Classifier {
	cls := classifier.New(Logger())
	prefixes, err := DataStore().LoadPrefixes()
	if err != nil {
		Log.Warnf("Failed to load prefix table: %v", err)
		return cls
	}
	cls.Replace(prefixes)
	return cls
}
