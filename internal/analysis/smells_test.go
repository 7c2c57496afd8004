package analysis

import "testing"

func TestDetectMagicNumbersSkipsStringsAndComments(t *testing.T) {
	content := "x := 42 // the answer is 7\n\"contains 99 inside a string\"\ny := 1\n"
	findings := DetectMagicNumbers(content, "//")
	if len(findings) != 1 {
		t.Fatalf("expected exactly 1 magic number finding (42), got %+v", findings)
	}
}

func TestDetectDuplicateCodeFlagsRepeatedLines(t *testing.T) {
	content := "if err != nil { return err }\nfmt.Println(\"hi\")\nif err != nil { return err }\n"
	findings := DetectDuplicateCode(content, 2)
	if len(findings) != 1 {
		t.Fatalf("expected 1 duplicate finding, got %+v", findings)
	}
	if findings[0].Metrics["occurrences"] != 2 {
		t.Errorf("expected 2 occurrences, got %+v", findings[0].Metrics)
	}
}

func TestGodClassFindings(t *testing.T) {
	findings := GodClassFindings(map[string]int{"Small": 5, "Big": 25})
	if len(findings) != 1 {
		t.Fatalf("expected 1 god-class finding, got %+v", findings)
	}
	if findings[0].Message == "" {
		t.Error("expected a non-empty message")
	}
}
