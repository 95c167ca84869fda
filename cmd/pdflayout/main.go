// Command pdflayout reconstructs the reading order of PDF documents and
// writes them as Markdown, HTML, JSON or plain text.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
