package render

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// postProcess enforces the output contract on rendered HTML: the root
// element carries the document language, the head holds the metadata
// tags and a non-empty title, and every img has an alt attribute. When
// embed is set, local images are inlined as data URIs.
func postProcess(htmlContent string, doc Document, embed bool) (string, error) {
	root, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPostProcess, err)
	}

	var head *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Html:
				if doc.Page.Language != "" {
					setAttr(n, "lang", doc.Page.Language)
				}
			case atom.Head:
				head = n
			case atom.Img:
				fixImage(n, doc, embed)
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)

	if head != nil {
		ensureMeta(head, "author", doc.Page.Author)
		ensureMeta(head, "description", doc.Page.Subject)
		ensureMeta(head, "keywords", doc.Page.Keywords)
		ensureTitle(head, doc.Page.Title)
	}

	var buf strings.Builder
	if err := html.Render(&buf, root); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPostProcess, err)
	}
	return buf.String(), nil
}

// fixImage fills in a missing or empty alt attribute and, when embed is
// requested, inlines the image file as a data URI. Images the converter
// already embedded are left alone.
func fixImage(n *html.Node, doc Document, embed bool) {
	src, _ := attrValue(n, "src")
	if src == "" || strings.HasPrefix(src, "data:") {
		return
	}

	key := strings.TrimPrefix(src, "./")
	if alt, ok := attrValue(n, "alt"); !ok || alt == "" {
		text := doc.altFor(key, "")
		if text == "" {
			text = doc.altFor(path.Base(key), "")
		}
		setAttr(n, "alt", text)
	}

	if embed && doc.SourceDir != "" {
		resolved := resolveImageSrc(doc.SourceDir, key)
		if uri, ok := dataURI(filepath.Join(doc.SourceDir, filepath.FromSlash(resolved))); ok {
			setAttr(n, "src", uri)
		}
	}
}

// ensureMeta sets the named meta tag in head, creating it when absent.
func ensureMeta(head *html.Node, name, content string) {
	if content == "" {
		return
	}
	for n := head.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == html.ElementNode && n.DataAtom == atom.Meta {
			if v, ok := attrValue(n, "name"); ok && v == name {
				setAttr(n, "content", content)
				return
			}
		}
	}
	head.AppendChild(&html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Meta,
		Data:     "meta",
		Attr: []html.Attribute{
			{Key: "name", Val: name},
			{Key: "content", Val: content},
		},
	})
}

// ensureTitle fills an empty or missing title element.
func ensureTitle(head *html.Node, title string) {
	if title == "" {
		return
	}
	for n := head.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == html.ElementNode && n.DataAtom == atom.Title {
			if strings.TrimSpace(textContent(n)) == "" {
				for n.FirstChild != nil {
					n.RemoveChild(n.FirstChild)
				}
				n.AppendChild(&html.Node{Type: html.TextNode, Data: title})
			}
			return
		}
	}
	node := &html.Node{Type: html.ElementNode, DataAtom: atom.Title, Data: "title"}
	node.AppendChild(&html.Node{Type: html.TextNode, Data: title})
	head.AppendChild(node)
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}

func attrValue(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
