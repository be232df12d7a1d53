package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordsearch/internal/game"
	"github.com/robalobadob/wordsearch/internal/words"
)

var (
	playSeed     uint64
	playHardcore bool
	playWords    int
	playBudget   int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a puzzle in the terminal",
	Long: `Generates a puzzle and reads guesses from stdin, one or more
"[start_row start_col end_row end_col]" groups per line.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dict, err := words.Load(cfg.WordsFile, cfg.WordsHardcoreFile)
		if err != nil {
			return err
		}
		opts := game.Options{Mode: words.ModeBasic, NumWords: playWords, Budget: playBudget}
		if playHardcore {
			opts.Mode = words.ModeHardcore
		}
		if cmd.Flags().Changed("seed") {
			opts.Seed = &playSeed
		}
		if opts.NumWords == 0 {
			opts.NumWords = cfg.NumWords
		}
		if opts.Budget == 0 {
			opts.Budget = cfg.IncorrectBudget
		}
		g, err := game.New(dict, opts)
		if err != nil {
			return err
		}
		return play(g, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	playCmd.Flags().Uint64Var(&playSeed, "seed", 0, "seed that reproduces a puzzle")
	playCmd.Flags().BoolVar(&playHardcore, "hardcore", false, "draw words from the hardcore list")
	playCmd.Flags().IntVar(&playWords, "words", 0, "words to hide (default NUM_WORDS)")
	playCmd.Flags().IntVar(&playBudget, "budget", 0, "incorrect attempts allowed (default INCORRECT_BUDGET)")
}

// play runs one episode over a line-oriented reader until it ends or in is
// exhausted.
func play(g *game.Game, in io.Reader, out io.Writer) error {
	fmt.Fprintf(out, "Puzzle seed %d\n\n%s\n", g.Seed, g.Prompt())

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		results, err := g.ApplyAction(sc.Text())
		for _, r := range results {
			fmt.Fprintln(out, r.Message)
		}
		if err != nil {
			if !game.IsInvalidMove(err) {
				return err
			}
			fmt.Fprintln(out, "Invalid move:", err)
		}
		if o := g.Outcome(); o.Status.Finished() {
			fmt.Fprintf(out, "%s\nFound %d of %d: %v\n", o.Reason, len(o.Found), len(g.Words), o.Found)
			fmt.Fprintln(out, g.Render(true))
			return nil
		}
	}
	return sc.Err()
}
