package cmd

import (
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"binastgen/internal/config"
	"binastgen/internal/errors"
	"binastgen/internal/generator"
	"binastgen/internal/logger"
	"binastgen/internal/parser"
)

type generateOptions struct {
	schema string
	root   string
	config string
	output string
}

func (o *generateOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.schema, "schema", "s", "", "Schema file (.yaml, .yml or .json)")
	cmd.Flags().StringVarP(&o.root, "root", "r", "", "Root interface (overrides schema and config)")
	cmd.Flags().StringVarP(&o.config, "config", "c", "", "Config file (.yaml, .json or .toml)")
	_ = cmd.MarkFlagRequired("schema")
}

func newGenerateCmd() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate macro tables and enum classes",
		Long: `Generate macro tables and enum classes from a schema.

Without --output both artifacts are written to stdout, tables first.
With --output they are written to the configured file names in that
directory, replacing existing files atomically.`,
		Example: `  binastgen generate -s es6.yaml
  binastgen generate -s es6.yaml -r Script -c config.yaml -o include/`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := opts.generate()
			if err != nil {
				return err
			}
			if opts.output == "" {
				_, err := cmd.OutOrStdout().Write(run.out.Combined())
				return err
			}
			for _, f := range run.files(opts.output) {
				if err := writeFileAtomic(f.path, f.content, 0644); err != nil {
					return err
				}
				run.log.Info("wrote artifact", zap.String("path", f.path), zap.Int("bytes", len(f.content)))
			}
			return nil
		},
	}

	opts.addFlags(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output directory (default: stdout)")
	return cmd
}

// generation is the in-memory result of one generate run.
type generation struct {
	cfg *config.Config
	out *generator.Output
	log *zap.Logger
}

type artifactFile struct {
	path    string
	content []byte
}

func (g *generation) files(dir string) []artifactFile {
	return []artifactFile{
		{filepath.Join(dir, g.cfg.Options.TypesFile), g.out.Types},
		{filepath.Join(dir, g.cfg.Options.EnumsFile), g.out.Enums},
	}
}

// generate loads the schema and config and renders both artifacts. The root
// comes from the schema document, then the config file, then --root, each
// overriding the previous.
func (o *generateOptions) generate() (*generation, error) {
	log := logger.Named("generate").With(zap.String("run_id", uuid.NewString()))

	schema, err := parser.New().ParseFile(o.schema)
	if err != nil {
		return nil, err
	}
	log.Debug("loaded schema",
		zap.String("path", schema.Path),
		zap.Int("interfaces", len(schema.Resolver.Interfaces())),
		zap.Int("enums", len(schema.Resolver.Enums())))

	cfg := config.New()
	if schema.Root != "" {
		cfg.Options.Root = schema.Root
	}
	if o.config != "" {
		if err := cfg.LoadFile(o.config); err != nil {
			return nil, err
		}
	}
	if o.root != "" {
		cfg.Options.Root = o.root
	}

	gen := generator.New(cfg, log)
	if err := gen.LoadConfiguredTemplates(); err != nil {
		return nil, err
	}

	out, err := gen.Generate(schema.Resolver, cfg.Options.Root)
	if err != nil {
		if errors.IsUnresolved(err) {
			err = errors.WithHintf(err, "check the schema %s", o.schema)
		}
		return nil, err
	}
	return &generation{cfg: cfg, out: out, log: log}, nil
}
