package planner

import "testing"

func TestConvertCase(t *testing.T) {
	cases := []struct {
		name string
		to   NamingConvention
		want string
	}{
		{"my_file_name", ConventionCamelCase, "myFileName"},
		{"my_file_name", ConventionPascalCase, "MyFileName"},
		{"myFileName", ConventionSnakeCase, "my_file_name"},
		{"myFileName", ConventionKebabCase, "my-file-name"},
		{"MyFileName", ConventionSnakeCase, "my_file_name"},
	}
	for _, c := range cases {
		got := convertCase(c.name, c.to)
		if got != c.want {
			t.Errorf("convertCase(%q, %q) = %q, want %q", c.name, c.to, got, c.want)
		}
	}
}

func TestConvertCaseIsIdempotentForUnchangedName(t *testing.T) {
	if got := convertCase("already_snake", ConventionSnakeCase); got != "already_snake" {
		t.Errorf("expected unchanged name, got %q", got)
	}
}
