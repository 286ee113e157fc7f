package verse

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var spacePattern = regexp.MustCompile(`\s+`)

// PlainText reduces translation markup to display text. Tags are dropped, footnote
// markers (<sup>) are removed together with their content, entities are decoded and
// whitespace is collapsed.
func PlainText(fragment string) (string, error) {
	nodes, err := html.ParseFragment(strings.NewReader(fragment), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, n := range nodes {
		collectText(n, &sb)
	}

	text := spacePattern.ReplaceAllString(sb.String(), " ")
	text = strings.TrimSpace(text)
	// Removing a marker can leave a space before punctuation: "mercy ."
	for _, p := range []string{".", ",", ";", ":", "!", "?"} {
		text = strings.ReplaceAll(text, " "+p, p)
	}
	return text, nil
}

func collectText(n *html.Node, sb *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
		return
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Sup, atom.Script, atom.Style:
			return
		case atom.Br, atom.P, atom.Div:
			sb.WriteByte(' ')
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, sb)
	}
}
