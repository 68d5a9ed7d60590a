package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStatic_Read(t *testing.T) {
	tests := []struct {
		name    string
		src     *Static
		wantErr error
	}{
		{"markup and text", NewStatic("<p>x</p>", "x"), nil},
		{"text only", NewStatic("", "x"), nil},
		{"empty", NewStatic("", ""), ErrUnavailable},
		{"whitespace markup", NewStatic("  \n", ""), ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.src.Read(context.Background())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Read() error = %v, want %v", err, tt.wantErr)
			}
			if err == nil && got != tt.src.Content {
				t.Errorf("Read() = %+v, want %+v", got, tt.src.Content)
			}
		})
	}
}

func TestStatic_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewStatic("<p>x</p>", "x").Read(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestContent(t *testing.T) {
	if !(Content{}).Empty() {
		t.Error("zero content should be empty")
	}
	if !(Content{Text: " \n\t"}).Empty() {
		t.Error("whitespace-only text should be empty")
	}
	if !(Content{HTML: "\n", Text: " "}).Empty() {
		t.Error("blank markup and blank text should be empty")
	}
	if (Content{Text: " x "}).Empty() {
		t.Error("text with content should not be empty")
	}
	if (Content{HTML: " \n"}).HasHTML() {
		t.Error("blank markup should not count as html")
	}
	if !(Content{HTML: "<p>x</p>"}).HasHTML() {
		t.Error("expected html")
	}
}

func TestReader_Read(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantHTML bool
		wantText string
		wantErr  error
	}{
		{"markup", "<p>Hello <b>world</b></p>", true, "Hello world", nil},
		{"plain text", "just text", false, "just text", nil},
		{"comparison is not markup", "a < b", false, "a < b", nil},
		{"empty", "", false, "", ErrUnavailable},
		{"blank", " \n\t", false, "", ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewReader(strings.NewReader(tt.input)).Read(context.Background())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Read() error = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got.HasHTML() != tt.wantHTML {
				t.Errorf("HasHTML() = %v, want %v", got.HasHTML(), tt.wantHTML)
			}
			if got.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", got.Text, tt.wantText)
			}
		})
	}
}

func TestFile_Read(t *testing.T) {
	dir := t.TempDir()

	htmlPath := filepath.Join(dir, "paste.html")
	if err := os.WriteFile(htmlPath, []byte("<p>x</p><style>p{}</style>"), 0o600); err != nil {
		t.Fatal(err)
	}
	txtPath := filepath.Join(dir, "note.txt")
	if err := os.WriteFile(txtPath, []byte("plain"), 0o600); err != nil {
		t.Fatal(err)
	}
	emptyPath := filepath.Join(dir, "empty.htm")
	if err := os.WriteFile(emptyPath, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	t.Run("html file", func(t *testing.T) {
		got, err := NewFile(htmlPath).Read(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.HTML != "<p>x</p><style>p{}</style>" || got.Text != "x" {
			t.Errorf("unexpected content: %+v", got)
		}
	})

	t.Run("text file", func(t *testing.T) {
		got, err := NewFile(txtPath).Read(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.HasHTML() || got.Text != "plain" {
			t.Errorf("unexpected content: %+v", got)
		}
	})

	t.Run("empty file", func(t *testing.T) {
		if _, err := NewFile(emptyPath).Read(context.Background()); !errors.Is(err, ErrUnavailable) {
			t.Errorf("expected ErrUnavailable, got %v", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewFile(filepath.Join(dir, "missing.html")).Read(context.Background())
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected os.ErrNotExist, got %v", err)
		}
	})
}

func TestTextOf(t *testing.T) {
	got := TextOf(`<html><head><title>T</title></head><body><p>a <em>b</em></p><script>x()</script></body></html>`)
	if got != "a b" {
		t.Errorf("TextOf() = %q, want %q", got, "a b")
	}
}

func TestNames(t *testing.T) {
	tests := []struct {
		src  Source
		want string
	}{
		{NewStatic("", ""), "static"},
		{NewReader(strings.NewReader("")), "reader"},
		{NewFile("x"), "file"},
		{NewClipboard(ClipboardConfig{}), "clipboard"},
	}
	for _, tt := range tests {
		if got := tt.src.Name(); got != tt.want {
			t.Errorf("Name() = %q, want %q", got, tt.want)
		}
	}
}
