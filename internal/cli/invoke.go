package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sandol-bot/sandol/internal/skill"
	"github.com/sandol-bot/sandol/internal/skills"
	"github.com/sandol-bot/sandol/internal/store"
)

func newInvokeCmd() *cobra.Command {
	var (
		payloadFile string
		validation  bool
		dbPath      string
		compact     bool
	)

	cmd := &cobra.Command{
		Use:   "invoke <skill>",
		Short: "Run one skill against a request body and print the response",
		Long: "Runs a skill without starting the HTTP server. The request body is read from --payload, " +
			"or from stdin when --payload is \"-\" or omitted.",
		Example: "  sandol invoke meal/view --payload request.json\n" +
			"  sandol invoke --validation menu < validation.json",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if dbPath != "" {
				cfg.Store.Path = dbPath
			}

			body, err := readPayload(cmd.InOrStdin(), payloadFile)
			if err != nil {
				return err
			}

			db, err := store.Open(paths.DBPath(cfg), log)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer db.Close()

			srv, err := skill.New(cfg, log)
			if err != nil {
				return err
			}
			skills.New(db, cfg.Skills, log).Register(srv)

			ctx := context.Background()
			var out []byte
			if validation {
				out, err = srv.InvokeValidation(ctx, args[0], bytes.NewReader(body))
			} else {
				out, err = srv.Invoke(ctx, args[0], bytes.NewReader(body))
			}
			if errors.Is(err, skill.ErrUnknownSkill) {
				return fmt.Errorf("%w (available: %v)", err, srv.Skills())
			}
			if out != nil {
				if werr := writeJSON(cmd.OutOrStdout(), out, !compact); werr != nil {
					return werr
				}
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&payloadFile, "payload", "p", "-", "request body file, or - for stdin")
	cmd.Flags().BoolVar(&validation, "validation", false, "run a validation skill")
	cmd.Flags().StringVar(&dbPath, "db", "", "override database path")
	cmd.Flags().BoolVar(&compact, "compact", false, "print the response on one line")

	return cmd
}

func readPayload(stdin io.Reader, file string) ([]byte, error) {
	if file == "" || file == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(file)
}

func writeJSON(w io.Writer, doc []byte, indent bool) error {
	if indent {
		var buf bytes.Buffer
		if err := json.Indent(&buf, doc, "", "  "); err != nil {
			return err
		}
		doc = buf.Bytes()
	}
	_, err := fmt.Fprintln(w, string(doc))
	return err
}
