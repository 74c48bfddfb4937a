package util

import "testing"

func TestSanitizeFileName(t *testing.T) {
	got, err := SanitizeFileName("my resume.pdf")
	if err != nil {
		t.Fatalf("SanitizeFileName: %v", err)
	}
	if got != "my resume.pdf" {
		t.Fatalf("expected name unchanged, got %q", got)
	}

	got, err = SanitizeFileName("dir/sub\\file.pdf")
	if err != nil {
		t.Fatalf("SanitizeFileName: %v", err)
	}
	if got != "dir_sub_file.pdf" {
		t.Fatalf("expected separators replaced, got %q", got)
	}

	if _, err := SanitizeFileName("../../etc/passwd"); err == nil {
		t.Fatalf("expected traversal rejected")
	}
	if _, err := SanitizeFileName("   "); err == nil {
		t.Fatalf("expected blank name rejected")
	}
}
