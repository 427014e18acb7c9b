package services

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNormalizeExtractedText(t *testing.T) {
	in := "  Title  \r\n\r\n\r\n  Body line one \n\n\n\nBody line two\r"
	want := "Title\n\nBody line one\n\nBody line two"

	if got := normalizeExtractedText(in); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestFileExtractService_TXT(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("  Asthma is a chronic condition.\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewFileExtractService()
	got, err := s.ExtractTextFromPath(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Asthma is a chronic condition." {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestFileExtractService_Unsupported(t *testing.T) {
	s := NewFileExtractService()

	if s.Supported("book.docx") {
		t.Fatalf("docx should not be supported")
	}
	if !s.Supported("Data/Medical_Book.PDF") {
		t.Fatalf("pdf should be supported regardless of case")
	}
	if _, err := s.ExtractTextFromPath("image.png"); err == nil {
		t.Fatalf("expected error for unsupported extension")
	}
}
