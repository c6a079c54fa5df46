package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/reviewdb/lr/internal/config"
	"github.com/reviewdb/lr/internal/template"
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Inspect data-extraction templates",
}

// newTemplateLoader builds a Loader from the configured templates directory.
func newTemplateLoader() *template.Loader {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %s", err)
	}
	if cfg.TemplatesDir == "" {
		exitWithError(ExitConfigError, "templates_dir not configured")
	}
	return template.NewLoader(cfg.TemplatesDir)
}

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available templates",
	Run: func(cmd *cobra.Command, args []string) {
		loader := newTemplateLoader()
		names, err := loader.List()
		if err != nil {
			exitWithError(ExitError, "listing templates: %s", err)
		}

		if humanOutput {
			for _, n := range names {
				outputHuman("%s\n", n)
			}
			return
		}
		outputJSON(map[string]any{"templates": names})
	},
}

var templateShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a template's fields",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		loader := newTemplateLoader()
		t, err := loader.Load(args[0])
		if err != nil {
			if errors.Is(err, template.ErrNotFound) {
				exitWithError(ExitNotFound, "template %s not found", args[0])
			}
			exitWithError(ExitDataError, "loading template: %s", err)
		}

		if humanOutput {
			outputHuman("%s: %s\n", t.Name, t.Description)
			for _, f := range t.Fields {
				req := ""
				if f.Required {
					req = " (required)"
				}
				outputHuman("  %-20s %s%s\n", f.Name, f.Type, req)
			}
			return
		}
		outputJSON(t)
	},
}

func init() {
	templateCmd.AddCommand(templateListCmd)
	templateCmd.AddCommand(templateShowCmd)
	rootCmd.AddCommand(templateCmd)
}
