package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/scenedoc/pkg/pipeline"
)

// exportFlags holds the flags of the export command.
type exportFlags struct {
	output  string
	formats string
	indent  int
	compact bool
	publish bool
	jobs    int
}

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "export <scene>...",
		Short: "Serialize scene descriptions into vtk.js documents",
		Long: `Serialize one or more scene descriptions into vtk.js-style JSON documents.

Each scene is written next to the current directory as <name>.vtkjs.json
unless -o names a directory or, for a single scene, a file. Use -o - to write
a single artifact to stdout. Several scenes are exported concurrently.`,
		Example: `  scenedoc export pyramid.yaml
  scenedoc export -f json,svg -o out/ scenes/*.yaml
  scenedoc export --publish pyramid.toml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file or directory (- for stdout)")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", pipeline.FormatJSON, "comma-separated artifacts: json, dot, svg")
	cmd.Flags().IntVar(&flags.indent, "indent", pipeline.DefaultIndent, "JSON indentation width")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "write compact JSON")
	cmd.Flags().BoolVar(&flags.publish, "publish", false, "also store the document in the local document store")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", runtime.NumCPU(), "scenes exported in parallel")

	return cmd
}

func (c *CLI) runExport(ctx context.Context, stdout, stderr io.Writer, scenes []string, flags exportFlags) error {
	formats := parseFormats(flags.formats)
	if err := pipeline.ValidateFormats(formats); err != nil {
		return err
	}

	toStdout := flags.output == "-"
	if toStdout && (len(scenes) > 1 || len(formats) > 1) {
		return fmt.Errorf("-o - needs exactly one scene and one format")
	}
	if len(scenes) > 1 && flags.output != "" && !toStdout && !isDir(flags.output) {
		return fmt.Errorf("-o must be an existing directory when exporting %d scenes", len(scenes))
	}

	if !toStdout {
		if err := checkOutputPaths(scenes, flags.output, formats); err != nil {
			return err
		}
	}

	// Status lines go to stderr when stdout carries the document.
	status := stdout
	if toStdout {
		status = stderr
	}

	runner, err := c.newRunner(!flags.publish)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	results := make([]*pipeline.Result, len(scenes))
	written := make([][]string, len(scenes))

	g, gctx := errgroup.WithContext(ctx)
	if flags.jobs > 0 {
		g.SetLimit(flags.jobs)
	}
	for i, scene := range scenes {
		g.Go(func() error {
			res, err := runner.Execute(gctx, pipeline.Options{
				Scene:   scene,
				Formats: formats,
				Indent:  flags.indent,
				Compact: flags.compact,
				Publish: flags.publish,
			})
			if err != nil {
				return fmt.Errorf("%s: %w", scene, err)
			}
			results[i] = res

			if toStdout {
				_, err := stdout.Write(append(res.Artifacts[formats[0]], '\n'))
				return err
			}
			for _, format := range formats {
				path := outputPath(scene, flags.output, format)
				if err := writeFile(path, res.Artifacts[format]); err != nil {
					return err
				}
				written[i] = append(written[i], path)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Exported %s", plural(len(scenes), "scene")))

	if len(scenes) == 1 {
		res := results[0]
		printSuccess(status, "Exported %s", scenes[0])
		printStats(status, res.Stats.Records, res.Stats.Bytes, res.StoreHit)
		for _, path := range written[0] {
			printFile(status, path)
		}
		if res.Key != "" {
			printDetail(status, "key: %s", res.Key)
		}
		return nil
	}

	rows := make([][]string, len(scenes))
	for i, res := range results {
		key := "-"
		if res.Key != "" {
			key = shortKey(res.Key)
		}
		rows[i] = []string{scenes[i], fmt.Sprint(res.Stats.Records), formatBytes(res.Stats.Bytes), key, strings.Join(written[i], ", ")}
	}
	fmt.Fprintln(status, StyleTitle.Render(fmt.Sprintf("Exported %s", plural(len(scenes), "scene"))))
	fmt.Fprintln(status, renderTable([]string{"Scene", "Records", "Size", "Key", "Output"}, rows))
	return nil
}

// artifactExt maps an artifact format to its file extension.
var artifactExt = map[string]string{
	pipeline.FormatJSON: ".vtkjs.json",
	pipeline.FormatDOT:  ".dot",
	pipeline.FormatSVG:  ".svg",
}

// outputPath picks where the artifact of scene in format is written.
// output is empty (current directory), a directory, or a file path whose
// extension is replaced per format.
func outputPath(scene, output, format string) string {
	stem := filepath.Base(scene)
	stem = strings.TrimSuffix(stem, filepath.Ext(stem))
	ext := artifactExt[format]

	switch {
	case output == "":
		return stem + ext
	case isDir(output) || strings.HasSuffix(output, string(filepath.Separator)):
		return filepath.Join(output, stem+ext)
	}
	base := strings.TrimSuffix(output, ".vtkjs.json")
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return base + ext
}

// checkOutputPaths rejects exports where two scenes would write the same
// file, such as a/cube.yaml and b/cube.yaml into one directory.
func checkOutputPaths(scenes []string, output string, formats []string) error {
	seen := make(map[string]string, len(scenes)*len(formats))
	for _, scene := range scenes {
		for _, format := range formats {
			path := filepath.Clean(outputPath(scene, output, format))
			if prev, ok := seen[path]; ok {
				return fmt.Errorf("%s and %s both write %s; export them to separate directories", prev, scene, path)
			}
			seen[path] = scene
		}
	}
	return nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}
