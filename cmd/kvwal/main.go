// kvwal is the CLI entry point: open a store, run one-shot get/set/del
// commands, seed it with fake data, or drop into an interactive REPL.
package main

import (
	"fmt"
	"os"

	"github.com/go-faker/faker/v4"
	"github.com/spf13/cobra"

	"kvwal/cli"
	"kvwal/config"
	"kvwal/store"
)

var (
	dirFlag    string
	configFlag string
)

func main() {
	root := &cobra.Command{
		Use:   "kvwal",
		Short: "embedded write-ahead-logged key-value store",
	}
	root.PersistentFlags().StringVar(&dirFlag, "dir", "", "store directory (overrides config)")
	root.PersistentFlags().StringVar(&configFlag, "config", "", "path to kvwal.yaml (defaults to ~/.kvwal.yaml)")

	root.AddCommand(getCmd(), setCmd(), delCmd(), replCmd(), seedCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	path := configFlag
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if dirFlag != "" {
		cfg.Dir = dirFlag
	}
	return cfg, nil
}

func openStore() (*store.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("kvwal: create %s: %w", cfg.Dir, err)
	}
	return store.Open(store.Options{Dir: cfg.Dir})
}

func getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "retrieve a value by key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			entry, ok, err := s.Get([]byte(args[0]))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Printf("key %q not found\n", args[0])
				return nil
			}
			fmt.Println(string(entry.Value))
			return nil
		},
	}
}

func setCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "insert or replace a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			defer s.Close()
			return s.Set([]byte(args[0]), []byte(args[1]))
		},
	}
}

func delCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "del <key>",
		Short: "delete a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			defer s.Close()
			return s.Delete([]byte(args[0]))
		},
	}
}

func replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "start an interactive session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			s, err := openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			prompt := cfg.Prompt
			history := cfg.HistoryPath()
			if rcPath := rcFilePath(); rcPath != "" {
				if rc, err := cli.LoadRC(rcPath); err == nil {
					if rc.Prompt != "" {
						prompt = rc.Prompt
					}
					if rc.HistoryFile != "" {
						history = rc.HistoryFile
					}
				}
			}

			return cli.New(s, prompt, history).Run()
		},
	}
}

func seedCmd() *cobra.Command {
	var records int
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "populate the store with generated records",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			for i := 0; i < records; i++ {
				key := faker.Word() + faker.Word()
				value := faker.Sentence()
				if err := s.Set([]byte(key), []byte(value)); err != nil {
					return err
				}
			}
			fmt.Printf("seeded %d records\n", records)
			return nil
		},
	}
	cmd.Flags().IntVar(&records, "records", 1000, "number of records to generate")
	return cmd
}

func rcFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home + "/.kvwalrc"
}
