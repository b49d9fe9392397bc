// Command genthread emits a synthetic forum-thread HTML file and a
// matching official results blob, for exercising the parser on realistic
// input without scraping a live forum.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/google/uuid"
)

// Default configuration constants.
const (
	defaultPosts  = 20
	defaultRounds = 3
	defaultSeed   = 42
)

var players = []string{
	"Magnus Carlsen", "Fabiano Caruana", "Ding Liren", "Ian Nepomniachtchi",
	"Alireza Firouzja", "Hikaru Nakamura",
}

var roundHeaders = []string{"Round %d", "Turno %d"}

var romans = []string{"", "I", "II", "III", "IV", "V", "VI", "VII", "VIII"}

var outcomes = []string{"1 - 0", "0 - 1", "½ - ½", "1-0", "0-1", "1/2", "x"}

func main() {
	var (
		numPosts   = flag.Int("posts", defaultPosts, "Number of forum posts to generate")
		numRounds  = flag.Int("rounds", defaultRounds, "Number of tournament rounds")
		seed       = flag.Int64("seed", defaultSeed, "Random seed for reproducible output")
		threadOut  = flag.String("thread", "thread.html", "Output file for the thread HTML")
		feedOut    = flag.String("tournament", "tournament.txt", "Output file for the official results")
		numAuthors = flag.Int("authors", 8, "Number of distinct forecast authors")
	)
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	feed := buildFeed(rng, *numRounds)
	if err := os.WriteFile(*feedOut, []byte(feed), 0o600); err != nil {
		fmt.Fprintln(os.Stderr, "write tournament:", err)
		os.Exit(1)
	}

	thread := buildThread(rng, *numPosts, *numRounds, *numAuthors)
	if err := os.WriteFile(*threadOut, []byte(thread), 0o600); err != nil {
		fmt.Fprintln(os.Stderr, "write thread:", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "wrote %s and %s\n", *threadOut, *feedOut)
}

// buildFeed pairs players round-robin style and decides results.
func buildFeed(rng *rand.Rand, rounds int) string {
	var b strings.Builder
	for r := 1; r <= rounds; r++ {
		fmt.Fprintf(&b, "Turno %d\n", r)
		order := rng.Perm(len(players))
		for i := 0; i+1 < len(order); i += 2 {
			result := outcomes[rng.Intn(3)] // only decided notations in the feed
			fmt.Fprintf(&b, "%s - %s  %s\n", players[order[i]], players[order[i+1]], result)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// buildThread wraps generated posts in the comment markup the loader
// expects. A few posts are deliberately messy: roman-numeral rounds,
// nickname-free surnames, chatty filler lines.
func buildThread(rng *rand.Rand, posts, rounds, authors int) string {
	var b strings.Builder
	b.WriteString("<html><body><ol class=\"commentlist\">\n")
	for i := 0; i < posts; i++ {
		author := fmt.Sprintf("tifoso%02d", rng.Intn(authors))
		round := 1 + rng.Intn(rounds)

		var body strings.Builder
		switch rng.Intn(3) {
		case 0:
			fmt.Fprintf(&body, roundHeaders[rng.Intn(2)]+"<br/>\n", round)
		case 1:
			fmt.Fprintf(&body, "turno %s<br/>\n", romans[round])
		default:
			fmt.Fprintf(&body, "ecco i miei pronostici per il %d turno<br/>\n", round)
		}

		order := rng.Perm(len(players))
		for j := 0; j+1 < len(order); j += 2 {
			white := surname(players[order[j]])
			black := surname(players[order[j+1]])
			fmt.Fprintf(&body, "%s - %s %s<br/>\n", white, black, outcomes[rng.Intn(len(outcomes))])
		}
		if rng.Intn(4) == 0 {
			body.WriteString("forza ragazzi!<br/>\n")
		}

		fmt.Fprintf(&b,
			"<li id=\"comment-%s\" class=\"comment byuser comment-author-%s\"><div class=\"info_com\">%s</div></li>\n",
			uuid.NewString(), author, body.String())
	}
	b.WriteString("</ol></body></html>\n")
	return b.String()
}

func surname(full string) string {
	fields := strings.Fields(full)
	return fields[len(fields)-1]
}
