package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPostProcess_ImageAlts(t *testing.T) {
	t.Parallel()

	alts := map[string]string{"figs/a.png": "A reviewed description"}

	tests := []struct {
		name string
		html string
		doc  Document
		want string
	}{
		{
			name: "missing alt filled from reviewed descriptions",
			html: `<html><body><img src="figs/a.png"></body></html>`,
			doc:  Document{Alts: alts},
			want: `alt="A reviewed description"`,
		},
		{
			name: "empty alt treated as missing",
			html: `<html><body><img src="figs/a.png" alt=""></body></html>`,
			doc:  Document{Alts: alts},
			want: `alt="A reviewed description"`,
		},
		{
			name: "existing alt preserved",
			html: `<html><body><img src="figs/a.png" alt="From the caption"></body></html>`,
			doc:  Document{Alts: alts},
			want: `alt="From the caption"`,
		},
		{
			name: "leading dot-slash normalized",
			html: `<html><body><img src="./figs/a.png"></body></html>`,
			doc:  Document{Alts: alts},
			want: `alt="A reviewed description"`,
		},
		{
			name: "base name fallback",
			html: `<html><body><img src="build/out/a.png"></body></html>`,
			doc:  Document{Alts: map[string]string{"a.png": "Base name match"}},
			want: `alt="Base name match"`,
		},
		{
			name: "guesser fills remaining gaps",
			html: `<html><body><img src="figs/b.png"></body></html>`,
			doc: Document{Guess: func(path, options string) string {
				return "guessed " + path
			}},
			want: `alt="guessed figs/b.png"`,
		},
		{
			name: "no source yields empty alt",
			html: `<html><body><img src="figs/c.png"></body></html>`,
			doc:  Document{},
			want: `alt=""`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := postProcess(tt.html, tt.doc, false)
			if err != nil {
				t.Fatalf("postProcess() error = %v", err)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("postProcess() = %q, should contain %q", got, tt.want)
			}
		})
	}
}

func TestPostProcess_DataURISourceUntouched(t *testing.T) {
	t.Parallel()

	html := `<html><body><img src="data:image/png;base64,aaaa"></body></html>`
	got, err := postProcess(html, Document{Alts: map[string]string{"a.png": "x"}}, true)
	if err != nil {
		t.Fatalf("postProcess() error = %v", err)
	}
	if !strings.Contains(got, `src="data:image/png;base64,aaaa"`) {
		t.Errorf("postProcess() altered an embedded image: %q", got)
	}
}

func TestPostProcess_Head(t *testing.T) {
	t.Parallel()

	page := Page{
		Title:    "Signals",
		Author:   "Ada",
		Subject:  "Linear systems",
		Keywords: "signals",
		Language: "fr",
	}

	t.Run("creates missing metadata", func(t *testing.T) {
		t.Parallel()

		html := `<html><head></head><body></body></html>`
		got, err := postProcess(html, Document{Page: page}, false)
		if err != nil {
			t.Fatalf("postProcess() error = %v", err)
		}
		wantContains(t, got, []string{
			`lang="fr"`,
			`<meta name="author" content="Ada"/>`,
			`<meta name="description" content="Linear systems"/>`,
			`<meta name="keywords" content="signals"/>`,
			"<title>Signals</title>",
		})
	})

	t.Run("updates existing tags in place", func(t *testing.T) {
		t.Parallel()

		html := `<html lang="en"><head><meta name="author" content="Old"/><title></title></head><body></body></html>`
		got, err := postProcess(html, Document{Page: page}, false)
		if err != nil {
			t.Fatalf("postProcess() error = %v", err)
		}
		wantContains(t, got, []string{
			`lang="fr"`,
			`<meta name="author" content="Ada"/>`,
			"<title>Signals</title>",
		})
		if strings.Contains(got, "Old") {
			t.Errorf("stale author survived: %q", got)
		}
		if got := strings.Count(got, `name="author"`); got != 1 {
			t.Errorf("got %d author metas, want 1", got)
		}
	})

	t.Run("existing title preserved", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Original</title></head><body></body></html>`
		got, err := postProcess(html, Document{Page: page}, false)
		if err != nil {
			t.Fatalf("postProcess() error = %v", err)
		}
		if !strings.Contains(got, "<title>Original</title>") {
			t.Errorf("title replaced: %q", got)
		}
	})

	t.Run("language untouched when unset", func(t *testing.T) {
		t.Parallel()

		html := `<html lang="en"><head></head><body></body></html>`
		got, err := postProcess(html, Document{}, false)
		if err != nil {
			t.Fatalf("postProcess() error = %v", err)
		}
		if !strings.Contains(got, `lang="en"`) {
			t.Errorf("lang attribute lost: %q", got)
		}
	})
}

func TestPostProcess_Embed(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "tiny.png"), []byte("png bytes"), 0644); err != nil {
		t.Fatal(err)
	}
	html := `<html><body><img src="tiny.png" alt="x"></body></html>`

	t.Run("embeds when requested", func(t *testing.T) {
		t.Parallel()

		got, err := postProcess(html, Document{SourceDir: dir}, true)
		if err != nil {
			t.Fatalf("postProcess() error = %v", err)
		}
		if !strings.Contains(got, `src="data:image/png;base64,`) {
			t.Errorf("image not embedded: %q", got)
		}
	})

	t.Run("keeps the path otherwise", func(t *testing.T) {
		t.Parallel()

		got, err := postProcess(html, Document{SourceDir: dir}, false)
		if err != nil {
			t.Fatalf("postProcess() error = %v", err)
		}
		if !strings.Contains(got, `src="tiny.png"`) {
			t.Errorf("image path rewritten without embed: %q", got)
		}
	})
}
