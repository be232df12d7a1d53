package game

import (
	"fmt"
	"strings"

	"github.com/robalobadob/wordsearch/internal/words"
)

// Prompt builds the instructions shown to the player: the board without
// highlights, the words to find, the action format and the remaining budget.
func (g *Game) Prompt() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	mode := "Basic"
	if g.Mode == words.ModeHardcore {
		mode = "Hardcore"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are participating in a Word Search challenge modeled as %s. ", mode)
	b.WriteString("The objective is to find and highlight hidden words on the grid below. ")
	b.WriteString("The rows and columns are numbered for your reference.\n\n")
	b.WriteString("Here is the current state of the Word Search board:\n")
	b.WriteString("----------------------------------------\n")
	b.WriteString("Words you have already found are marked in square brackets [ ]. Each row and column is numbered for clarity.\n")
	b.WriteString("Current Word Search Board:\n")
	b.WriteString(g.render(false))

	b.WriteString("\n\nYour task is to find the following words on the board:\n")
	b.WriteString("----------------------------------------\n")
	for i, w := range g.Words {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. %s", i+1, w)
	}

	b.WriteString("\n\nTo locate a word, specify the row and column of its start and end letters. Note that words are either across or down.\n")
	b.WriteString("You may type your response and thoughts in any manner. But for your submissions, use the format '[start_row start_col end_row end_col]'.\n")
	b.WriteString("For instance, if you want to find the word 'HELLO' starting at row 1, column 1 and ending at row 1, column 5, enter '[1 1 1 5]'.\n")
	b.WriteString("\nGuidelines:\n")
	b.WriteString("- Each guess must be unique; you cannot repeat the same guess.\n")
	fmt.Fprintf(&b, "- You have a total of %d incorrect attempts remaining.\n", g.Remaining)
	b.WriteString("- The history of your attempts will be recorded below.\n\n")
	b.WriteString("Make your guesses carefully and strategically. Good luck!\n")
	return b.String()
}
