package analysis

import "testing"

func TestRuleCheckReturnsFindings(t *testing.T) {
	script := `
function check(file_path, content)
  local findings = {}
  if string.find(content, "TODO") then
    table.insert(findings, {line = 1, severity = "Medium", message = "found a TODO"})
  end
  return findings
end
`
	rule, err := LoadRule("no-todo", script, nil)
	if err != nil {
		t.Fatalf("unexpected error loading rule: %v", err)
	}
	defer rule.Close()

	findings, err := rule.Check("a.go", "// TODO: fix this\n")
	if err != nil {
		t.Fatalf("unexpected error checking rule: %v", err)
	}
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %+v", findings)
	}
	if findings[0].Severity != SeverityMedium {
		t.Errorf("expected Medium severity, got %v", findings[0].Severity)
	}
}

func TestLoadRuleExposesConfig(t *testing.T) {
	script := `
function check(file_path, content)
  return {{line = 1, severity = "Low", message = "threshold is " .. config.threshold}}
end
`
	rule, err := LoadRule("uses-config", script, map[string]any{"threshold": 42})
	if err != nil {
		t.Fatalf("unexpected error loading rule: %v", err)
	}
	defer rule.Close()

	findings, err := rule.Check("a.go", "")
	if err != nil {
		t.Fatalf("unexpected error checking rule: %v", err)
	}
	if len(findings) != 1 || findings[0].Message != "threshold is 42" {
		t.Fatalf("expected config-driven message, got %+v", findings)
	}
}

func TestRuleCheckNoMatch(t *testing.T) {
	script := `
function check(file_path, content)
  return {}
end
`
	rule, err := LoadRule("noop", script, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer rule.Close()

	findings, err := rule.Check("a.go", "package a\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(findings) != 0 {
		t.Fatalf("expected no findings, got %+v", findings)
	}
}
