package feed

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"

	"github.com/gridkit/infinigrid/pkg/errors"
)

// Card is one feed entry. Width and Height are layout units; the renderer
// decides how units map to pixels or terminal cells.
type Card struct {
	ID     uuid.UUID `json:"id"`
	Title  string    `json:"title"`
	Body   string    `json:"body"`
	Width  float64   `json:"width"`
	Height float64   `json:"height"`
}

// Page is one batch of cards sharing a group key. Next and Prev name the
// adjacent pages; Prev is empty on the first page.
type Page struct {
	GroupKey string `json:"group_key"`
	Cards    []Card `json:"cards"`
	Next     string `json:"next"`
	Prev     string `json:"prev,omitempty"`
}

var (
	titleWords = []string{
		"amber", "basalt", "cedar", "delta", "ember", "fjord", "garnet",
		"harbor", "indigo", "juniper", "krill", "lumen", "mesa", "nimbus",
		"onyx", "pampas", "quartz", "reef", "sable", "tundra",
	}
	bodyWords = []string{
		"the", "tide", "turns", "slow", "under", "a", "pale", "sky",
		"stones", "hold", "their", "heat", "long", "after", "noon",
		"wind", "maps", "the", "dunes", "again",
	}
)

// cardNamespace makes card IDs deterministic per (seed, page, rank) while
// still being valid UUIDs.
var cardNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

// Generator is a deterministic card source. Two generators with the same
// seed produce identical pages, which is what lets the grid restore evicted
// content on scroll-up without the feed storing anything.
type Generator struct {
	seed    int64
	perPage int
}

// NewGenerator creates a Generator. perPage values < 1 fall back to 6.
func NewGenerator(seed int64, perPage int) *Generator {
	if perPage < 1 {
		perPage = 6
	}
	return &Generator{seed: seed, perPage: perPage}
}

// PerPage returns the batch size.
func (g *Generator) PerPage() int {
	return g.perPage
}

// Page produces the page at index. Negative indexes are clamped to 0.
func (g *Generator) Page(index int) Page {
	if index < 0 {
		index = 0
	}
	p := Page{
		GroupKey: groupKey(index),
		Cards:    make([]Card, g.perPage),
		Next:     groupKey(index + 1),
	}
	if index > 0 {
		p.Prev = groupKey(index - 1)
	}
	for i := range p.Cards {
		p.Cards[i] = g.card(index, i)
	}
	return p
}

// PageFor returns the page named by key itself, used when rebuilding cards
// from a snapshot that recorded group keys.
func (g *Generator) PageFor(key string) (Page, error) {
	n, err := parseGroupKey(key)
	if err != nil {
		return Page{}, err
	}
	return g.Page(n), nil
}

// After returns the page following key. An empty key means the start of the
// feed, so After("") returns page 0.
func (g *Generator) After(key string) (Page, error) {
	if key == "" {
		return g.Page(0), nil
	}
	n, err := parseGroupKey(key)
	if err != nil {
		return Page{}, err
	}
	return g.Page(n + 1), nil
}

// Before returns the page preceding key. Paging before the first page fails
// with NOT_FOUND; callers treat it as the top of the feed.
func (g *Generator) Before(key string) (Page, error) {
	n, err := parseGroupKey(key)
	if err != nil {
		return Page{}, err
	}
	if n == 0 {
		return Page{}, errors.New(errors.ErrCodeNotFound, "no page before %s", key)
	}
	return g.Page(n - 1), nil
}

// card derives one card from the seed, page index, and rank. A dedicated
// rand source per card keeps the output independent of generation order.
func (g *Generator) card(page, rank int) Card {
	r := rand.New(rand.NewSource(g.seed + int64(page)*1_000_003 + int64(rank)))

	title := fmt.Sprintf("%s %s",
		titleWords[r.Intn(len(titleWords))],
		titleWords[r.Intn(len(titleWords))])

	words := make([]string, 6+r.Intn(10))
	for i := range words {
		words[i] = bodyWords[r.Intn(len(bodyWords))]
	}

	return Card{
		ID:     uuid.NewSHA1(cardNamespace, []byte(fmt.Sprintf("%d/%d/%d", g.seed, page, rank))),
		Title:  title,
		Body:   strings.Join(words, " "),
		Width:  100,
		Height: 60 + float64(r.Intn(8))*20,
	}
}

func groupKey(index int) string {
	return fmt.Sprintf("page-%d", index)
}

func parseGroupKey(key string) (int, error) {
	if err := errors.ValidateGroupKey(key); err != nil {
		return 0, err
	}
	var n int
	if _, err := fmt.Sscanf(key, "page-%d", &n); err != nil || n < 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "malformed group key %q", key)
	}
	return n, nil
}
