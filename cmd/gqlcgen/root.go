// Command gqlcgen generates a typed Go client from GraphQL operation
// documents: one method per operation, executing through the runtime
// base client.
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	gqlparser "github.com/vektah/gqlparser/v2"
	gqlast "github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
	"go.uber.org/zap"

	"github.com/gqlcgen/gqlcgen/ast"
	"github.com/gqlcgen/gqlcgen/gen"
)

const runtimeImportPath = "github.com/gqlcgen/gqlcgen/runtime"

var rootCmd = newRootCmd(afero.NewOsFs())

// newRootCmd builds the root command against the given filesystem so tests
// can run the full pipeline on an in-memory fs.
func newRootCmd(fs afero.Fs) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gqlcgen",
		Short: "A typed GraphQL client generator",
		Long: `gqlcgen generates a typed Go client from GraphQL operation documents.

Every query and mutation in the given documents becomes a method on the
generated client. Methods execute through the runtime base client, which
handles argument serialization, file uploads per the GraphQL multipart
request specification, and error classification.`,
		Example: "gqlcgen -s schema.graphql -o ./api -p api queries.graphql",
		Args:    cobra.MinimumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" {
				return nil
			}

			// Validate file names
			for _, fileName := range args {
				ext := strings.TrimPrefix(filepath.Ext(fileName), ".")
				if ext != "gql" && ext != "graphql" {
					return fmt.Errorf("invalid file extension: %s", fileName)
				}
			}
			return nil
		},
		RunE: root(fs),
	}

	flags := cmd.Flags()
	flags.StringP("schema", "s", "", "GraphQL schema file the operations are validated against.")
	flags.StringP("out", "o", ".", "Directory to write the generated client to.")
	flags.StringP("package", "p", "api", "Package name of the generated client.")
	flags.String("client-name", "Client", "Name of the generated client type.")
	flags.String("base-client", "BaseClient", "Name of the embedded base client type.")
	flags.String("base-client-import", runtimeImportPath, "Import path of the base client.")
	flags.String("enums-import", "", "Import path of the generated enums package (empty: same package).")
	flags.String("inputs-import", "", "Import path of the generated input types package (empty: same package).")
	flags.String("types-import", "", "Import path of the generated result types package (empty: same package).")
	flags.BoolP("verbose", "v", false, "Output logging")

	cobra.CheckErr(cmd.MarkFlagRequired("schema"))
	return cmd
}

// config is the flag-derived generation configuration.
type config struct {
	schema       string
	out          string
	pkg          string
	clientName   string
	baseClient   string
	baseImport   string
	enumsImport  string
	inputsImport string
	typesImport  string
	verbose      bool
}

func loadConfig(flags *pflag.FlagSet) (cfg config, err error) {
	if cfg.schema, err = flags.GetString("schema"); err != nil {
		return
	}
	if cfg.out, err = flags.GetString("out"); err != nil {
		return
	}
	if cfg.pkg, err = flags.GetString("package"); err != nil {
		return
	}
	if cfg.clientName, err = flags.GetString("client-name"); err != nil {
		return
	}
	if cfg.baseClient, err = flags.GetString("base-client"); err != nil {
		return
	}
	if cfg.baseImport, err = flags.GetString("base-client-import"); err != nil {
		return
	}
	if cfg.enumsImport, err = flags.GetString("enums-import"); err != nil {
		return
	}
	if cfg.inputsImport, err = flags.GetString("inputs-import"); err != nil {
		return
	}
	if cfg.typesImport, err = flags.GetString("types-import"); err != nil {
		return
	}
	cfg.verbose, err = flags.GetBool("verbose")
	return
}

// genCtx writes generated files below a directory of an afero filesystem.
type genCtx struct {
	fs  afero.Fs
	dir string
}

func (ctx *genCtx) Open(name string) (io.WriteCloser, error) {
	return ctx.fs.OpenFile(filepath.Join(ctx.dir, name), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
}

func root(fs afero.Fs) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd.Flags())
		if err != nil {
			return err
		}

		logger := zap.NewNop()
		if cfg.verbose {
			logger, err = zap.NewDevelopment()
			if err != nil {
				return err
			}
		}
		zap.ReplaceGlobals(logger)
		log := logger.Named("gqlcgen")

		schema, err := loadSchema(fs, cfg.schema)
		if err != nil {
			return err
		}
		log.Info("loaded schema", zap.String("file", cfg.schema))

		g := gen.NewClientGenerator(gen.Config{
			Package:          cfg.pkg,
			Name:             cfg.clientName,
			BaseClient:       cfg.baseClient,
			BaseClientImport: ast.NewImport([]string{cfg.baseClient}, cfg.baseImport),
			UnsetImport:      ast.NewImport([]string{"Opt", "Serialize"}, cfg.baseImport),
			EnumsImport:      cfg.enumsImport,
			InputsImport:     cfg.inputsImport,
		}, schema)

		for _, fileName := range args {
			if err := addOperations(fs, g, schema, fileName, cfg.typesImport); err != nil {
				return err
			}
			log.Info("processed document", zap.String("file", fileName))
		}

		module, err := g.Generate()
		if err != nil {
			return gen.GeneratorError{GenName: "client", Msg: err.Error()}
		}

		ctx := gen.WithContext(context.Background(), &genCtx{fs: fs, dir: cfg.out})
		return writeModule(ctx, module, "client.go")
	}
}

func loadSchema(fs afero.Fs, fileName string) (*gqlast.Schema, error) {
	src, err := afero.ReadFile(fs, fileName)
	if err != nil {
		return nil, err
	}
	return gqlparser.LoadSchema(&gqlast.Source{Name: fileName, Input: string(src)})
}

// addOperations parses and validates one operation document and adds one
// client method per operation, in document order.
func addOperations(fs afero.Fs, g *gen.ClientGenerator, schema *gqlast.Schema, fileName, typesImport string) error {
	src, err := afero.ReadFile(fs, fileName)
	if err != nil {
		return err
	}

	doc, errs := gqlparser.LoadQuery(schema, string(src))
	if len(errs) > 0 {
		return errs
	}

	for _, op := range doc.Operations {
		if op.Name == "" {
			return gen.GeneratorError{
				DocName: fileName,
				GenName: "client",
				Msg:     "anonymous operations are not supported",
			}
		}

		name := exportedName(op.Name)
		if err := g.AddMethod(op, name, name, typesImport, formatOperation(doc, op)); err != nil {
			return gen.GeneratorError{DocName: fileName, GenName: "client", Msg: err.Error()}
		}
	}
	return nil
}

// formatOperation renders a single operation, with the document's fragments,
// back to GraphQL source.
func formatOperation(doc *gqlast.QueryDocument, op *gqlast.OperationDefinition) string {
	var buf bytes.Buffer
	formatter.NewFormatter(&buf).FormatQueryDocument(&gqlast.QueryDocument{
		Operations: gqlast.OperationList{op},
		Fragments:  doc.Fragments,
	})
	return buf.String()
}

func writeModule(ctx context.Context, module *ast.Module, fileName string) error {
	w, err := gen.Context(ctx).Open(fileName)
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	_, err = w.Write(ast.Print(module))
	return err
}

func exportedName(name string) string {
	r := []rune(name)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
