// Package feed loads forum posts and the official tournament blob into
// the flat post records the pipeline consumes.
//
// The thread is a saved HTML page: posts are <li class="comment byuser
// comment-author-<name> ..."> elements, the author rides in the
// comment-author class token and the body text lives in a descendant
// <div class="info_com">.
package feed

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/net/html"

	"github.com/chesspool/schedina/internal/domain/model"
	"github.com/chesspool/schedina/pkg/logger"
)

const authorClassPrefix = "comment-author-"

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithAliases remaps team names to canonical authors at load time.
func WithAliases(aliases map[string]string) Option {
	return func(l *Loader) {
		l.aliases = aliases
	}
}

// WithBlacklist drops posts whose (remapped) author matches the predicate.
func WithBlacklist(blacklisted func(author string) bool) Option {
	return func(l *Loader) {
		l.blacklisted = blacklisted
	}
}

// WithLogger sets a custom logger for the loader.
func WithLogger(log logger.Logger) Option {
	return func(l *Loader) {
		if log != nil {
			l.log = log
		}
	}
}

// Loader reads thread and tournament files from disk.
type Loader struct {
	aliases     map[string]string
	blacklisted func(author string) bool
	log         logger.Logger
}

// New creates a Loader.
func New(opts ...Option) *Loader {
	l := &Loader{log: logger.Get()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadThread parses the saved forum page into posts, in document order.
// Aliases and the blacklist are applied here so the core never sees
// excluded or misattributed authors.
func (l *Loader) LoadThread(ctx context.Context, path string) ([]model.Post, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open thread: %w", err)
	}
	defer f.Close()

	doc, err := html.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse thread html: %w", err)
	}

	var posts []model.Post
	walk(doc, func(n *html.Node) {
		if n.Type != html.ElementNode || n.Data != "li" {
			return
		}
		classes := classList(n)
		if !contains(classes, "comment") || !contains(classes, "byuser") {
			return
		}

		var authorClasses []string
		for _, c := range classes {
			if strings.HasPrefix(c, authorClassPrefix) {
				authorClasses = append(authorClasses, strings.TrimPrefix(c, authorClassPrefix))
			}
		}
		if len(authorClasses) != 1 {
			return
		}
		author := l.remap(authorClasses[0])

		body := findDivByClass(n, "info_com")
		if body == nil {
			return
		}

		if l.blacklisted != nil && l.blacklisted(author) {
			l.log.Info(ctx, "blacklisted author skipped", logger.String("author", author))
			return
		}

		posts = append(posts, model.Post{
			ID:     uuid.NewString(),
			Author: author,
			Text:   renderText(body),
		})
	})
	return posts, nil
}

// Tournament wraps the official results text blob as a synthetic post by
// the sentinel author, so it rides the same extraction path as any post.
func (l *Loader) Tournament(ctx context.Context, path string) (model.Post, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Post{}, fmt.Errorf("read tournament: %w", err)
	}
	return model.Post{
		ID:     uuid.NewString(),
		Author: model.OfficialAuthor,
		Text:   string(data),
	}, nil
}

// Correction is a manually authored fix-up text, same shape as a post.
type Correction struct {
	Author string
	Text   string
}

// Corrections turns manually authored fix-up texts into posts appended
// after the scraped thread, so later-wins deduplication lets them
// override what the forum said.
func (l *Loader) Corrections(ctx context.Context, corrections []Correction) []model.Post {
	posts := make([]model.Post, 0, len(corrections))
	for _, c := range corrections {
		posts = append(posts, model.Post{
			ID:     uuid.NewString(),
			Author: l.remap(c.Author),
			Text:   c.Text,
		})
	}
	return posts
}

func (l *Loader) remap(author string) string {
	if canonical, ok := l.aliases[author]; ok {
		return canonical
	}
	return author
}

// walk runs fn over every node in depth-first document order.
func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func classList(n *html.Node) []string {
	for _, attr := range n.Attr {
		if attr.Key == "class" {
			return strings.Fields(attr.Val)
		}
	}
	return nil
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}

func findDivByClass(n *html.Node, class string) *html.Node {
	var found *html.Node
	walk(n, func(c *html.Node) {
		if found != nil {
			return
		}
		if c.Type == html.ElementNode && c.Data == "div" && contains(classList(c), class) {
			found = c
		}
	})
	return found
}

// renderText flattens a node subtree to plain text. Line breaks and
// block-element boundaries become newlines so the line-based parser sees
// the same lines a reader does.
func renderText(n *html.Node) string {
	var b strings.Builder
	var emit func(*html.Node)
	emit = func(c *html.Node) {
		switch c.Type {
		case html.TextNode:
			b.WriteString(c.Data)
		case html.ElementNode:
			if c.Data == "br" {
				b.WriteString("\n")
			}
		}
		for child := c.FirstChild; child != nil; child = child.NextSibling {
			emit(child)
		}
		if c.Type == html.ElementNode && (c.Data == "p" || c.Data == "div" || c.Data == "li") {
			b.WriteString("\n")
		}
	}
	emit(n)
	return b.String()
}
