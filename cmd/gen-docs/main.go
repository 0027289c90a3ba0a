package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/stigoleg/jiggler/internal/config"
)

// This small tool generates shell completions and a man page from the
// jiggler flag definitions.

const appName = "jiggler"

type flagDef = config.FlagDoc

func main() {
	flags, err := config.DescribeFlags()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := writeCompletions(".", flags); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := writeMan(".", flags); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func writeCompletions(root string, flags []flagDef) error {
	base := filepath.Join(root, "docs", "completions")
	if err := os.MkdirAll(base, 0o755); err != nil {
		return err
	}

	// Bash
	var bash strings.Builder
	bash.WriteString("_" + appName + "() {\n")
	bash.WriteString("  local cur prev opts\n")
	bash.WriteString("  COMPREPLY=()\n")
	bash.WriteString("  cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	var opts []string
	for _, f := range flags {
		if f.Short != "" {
			opts = append(opts, f.Short)
		}
		if f.Long != "" {
			opts = append(opts, f.Long)
		}
	}
	bash.WriteString("  opts=\"" + strings.Join(opts, " ") + "\"\n")
	bash.WriteString("  if [[ ${cur} == -* ]] ; then\n")
	bash.WriteString("    COMPREPLY=( $(compgen -W \"${opts}\" -- ${cur}) )\n")
	bash.WriteString("    return 0\n")
	bash.WriteString("  fi\n")
	bash.WriteString("}\n")
	bash.WriteString("complete -F _" + appName + " " + appName + "\n")
	if err := os.WriteFile(filepath.Join(base, appName+".bash"), []byte(bash.String()), 0o644); err != nil {
		return err
	}

	// Zsh
	var zsh strings.Builder
	zsh.WriteString("#compdef " + appName + "\n")
	zsh.WriteString("_arguments ")
	var parts []string
	for _, f := range flags {
		form := fmt.Sprintf("'%s[%s]%s'", zFlagName(f), f.Help, zArgSuffix(f.Arg))
		parts = append(parts, form)
	}
	zsh.WriteString(strings.Join(parts, " ") + "\n")
	if err := os.WriteFile(filepath.Join(base, "_"+appName), []byte(zsh.String()), 0o644); err != nil {
		return err
	}

	// Fish
	var fish strings.Builder
	fish.WriteString("complete -c " + appName + " -f\n")
	for _, f := range flags {
		fish.WriteString(fishFlagLine(f))
	}
	if err := os.WriteFile(filepath.Join(base, appName+".fish"), []byte(fish.String()), 0o644); err != nil {
		return err
	}

	return nil
}

func zFlagName(f flagDef) string {
	if f.Arg != "" {
		// zsh requires = for options with arguments
		if f.Long != "" {
			return f.Long + "="
		}
		return f.Short + "="
	}
	if f.Long != "" {
		return f.Long
	}
	return f.Short
}

func zArgSuffix(arg string) string {
	if arg == "" {
		return ""
	}
	return ":value:" + strings.Trim(arg, "<>")
}

func fishFlagLine(f flagDef) string {
	var b strings.Builder
	b.WriteString("complete -c ")
	b.WriteString(appName)
	if f.Short != "" {
		b.WriteString(" -s ")
		b.WriteString(strings.TrimPrefix(f.Short, "-"))
	}
	if f.Long != "" {
		b.WriteString(" -l ")
		b.WriteString(strings.TrimPrefix(f.Long, "--"))
	}
	if f.Arg != "" {
		b.WriteString(" -r")
	} else {
		b.WriteString(" -f")
	}
	b.WriteString(" -d \"")
	b.WriteString(escapeDoubleQuotes(f.Help))
	b.WriteString("\"\n")
	return b.String()
}

func escapeDoubleQuotes(s string) string {
	return strings.ReplaceAll(s, "\"", "\\\"")
}

func synopsis(flags []flagDef) string {
	var parts []string
	for _, f := range flags {
		var names []string
		if f.Short != "" {
			names = append(names, roffEscape(f.Short))
		}
		names = append(names, roffEscape(f.Long))
		part := strings.Join(names, "|")
		if f.Arg != "" {
			part += " " + f.Arg
		}
		parts = append(parts, "["+part+"]")
	}
	return strings.Join(parts, " ")
}

func roffEscape(s string) string {
	return strings.ReplaceAll(s, "-", "\\-")
}

func writeMan(root string, flags []flagDef) error {
	dir := filepath.Join(root, "man")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	var b strings.Builder
	b.WriteString(".TH \"" + strings.ToUpper(appName) + "\" \"1\" \"\" \"jiggler\" \"User Commands\"\n")
	b.WriteString(".SH NAME\n" + appName + " - " + config.Description + "\n")
	b.WriteString(".SH SYNOPSIS\n.B " + appName + "\n")
	b.WriteString(synopsis(flags) + "\n")
	b.WriteString(".SH DESCRIPTION\n" + config.Description + "\n")
	b.WriteString(".SH OPTIONS\n")
	for _, f := range flags {
		names := f.Short
		if f.Long != "" {
			if names != "" {
				names += ", "
			}
			names += f.Long
		}
		if f.Arg != "" {
			names += " " + f.Arg
		}
		b.WriteString(".TP\n\\fB" + names + "\\fR\n" + f.Help + "\n")
	}
	b.WriteString(".SH EXAMPLES\n")
	b.WriteString(".TP\n\\fB" + appName + "\\fR\nStart the interactive TUI.\n")
	b.WriteString(".TP\n\\fB" + appName + " -d 2h30m\\fR\nJiggle for 2 hours 30 minutes, then stop.\n")
	b.WriteString(".TP\n\\fB" + appName + " -c 22:00\\fR\nJiggle until 10:00 PM.\n")
	b.WriteString(".TP\n\\fB" + appName + " --mode tray\\fR\nRun from the system tray.\n")
	b.WriteString(".TP\n\\fB" + appName + " --mode headless --metrics-addr 127.0.0.1:9123\\fR\nRun without a UI and serve Prometheus metrics.\n")
	b.WriteString(".SH FILES\n.TP\n\\fI$XDG_CONFIG_HOME/jiggler/config.yaml\\fR\nSettings, reloaded when edited.\n")
	b.WriteString(".SH SEE ALSO\nProject homepage: https://github.com/stigoleg/jiggler\n")
	return os.WriteFile(filepath.Join(dir, appName+".1"), []byte(b.String()), 0o644)
}
