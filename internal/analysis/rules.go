package analysis

import (
	"fmt"

	pluginlua "github.com/dshills/refactorengine/internal/plugin/lua"
	"github.com/dshills/refactorengine/internal/plan"
	golua "github.com/yuin/gopher-lua"
)

// Rule is a user-supplied analysis check written in Lua, executed inside
// the same sandboxed runtime the plugin system uses for language plugins.
// A rule script must define a global `check(file_path, content)` function
// returning a table of `{line, severity, message}` entries.
type Rule struct {
	Name  string
	state *pluginlua.State
}

// LoadRule sandboxes a fresh Lua state and loads source into it. config, if
// non-nil, is exposed to the script as a global `config` table before it
// runs, handed across the Go-Lua bridge the same way a plugin host passes a
// plugin its manifest config.
func LoadRule(name, source string, config map[string]any, opts ...pluginlua.StateOption) (*Rule, error) {
	st, err := pluginlua.NewState(opts...)
	if err != nil {
		return nil, err
	}
	if config != nil {
		bridge := pluginlua.NewBridge(st.LuaState())
		st.SetGlobal("config", bridge.ToLuaValue(config))
	}
	if err := st.DoString(source); err != nil {
		st.Close()
		return nil, fmt.Errorf("rule %q: %w", name, err)
	}
	return &Rule{Name: name, state: st}, nil
}

// Close releases the rule's Lua state.
func (r *Rule) Close() error { return r.state.Close() }

// Check runs the rule's check function against one file's content.
func (r *Rule) Check(filePath, content string) ([]Finding, error) {
	results, err := r.state.Call("check", golua.LString(filePath), golua.LString(content))
	if err != nil {
		return nil, fmt.Errorf("rule %q: %w", r.Name, err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	table, ok := results[0].(*golua.LTable)
	if !ok {
		return nil, fmt.Errorf("rule %q: check must return a table of findings", r.Name)
	}

	bridge := pluginlua.NewBridge(r.state.LuaState())
	var findings []Finding
	table.ForEach(func(_, v golua.LValue) {
		entry, ok := v.(*golua.LTable)
		if !ok {
			return
		}
		message, _ := bridge.GetTableString(entry, "message")
		line, _ := bridge.GetTableInt(entry, "line")
		severity, ok := bridge.GetTableString(entry, "severity")
		if !ok || severity == "" {
			severity = string(SeverityLow)
		}
		findings = append(findings, Finding{
			Kind:     Kind("rule." + r.Name),
			Severity: Severity(severity),
			Location: plan.SourceLocation{StartLine: line, EndLine: line},
			Message:  message,
		})
	})
	return findings, nil
}
