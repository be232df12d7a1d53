package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordsearch/internal/config"
	"github.com/robalobadob/wordsearch/internal/db"
	"github.com/robalobadob/wordsearch/internal/httpserver"
	"github.com/robalobadob/wordsearch/internal/store"
	"github.com/robalobadob/wordsearch/internal/words"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "wordsearch",
	Short: "Word search puzzle generator and game server",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		cfg.ApplyLogLevel()
		return nil
	},
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP game server",
	RunE: func(cmd *cobra.Command, args []string) error {
		dict, err := words.Load(cfg.WordsFile, cfg.WordsHardcoreFile)
		if err != nil {
			return err
		}
		basic, hardcore := dict.Stats()
		log.Info().Int("basic", basic).Int("hardcore", hardcore).Msg("word lists loaded")

		conn, err := db.OpenMigrated(cfg.DBPath)
		if err != nil {
			return err
		}
		defer conn.Close()

		srv := httpserver.New(cfg, store.NewMemoryStore(), conn, dict)
		log.Info().Str("port", cfg.Port).Msg("starting wordsearch server")
		return srv.Start(":" + cfg.Port)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, playCmd)
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("wordsearch exited")
		os.Exit(1)
	}
}
