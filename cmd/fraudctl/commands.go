package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"FraudGuard/internal/client"
	"FraudGuard/internal/di"
	"FraudGuard/internal/domain/models"
	"FraudGuard/pkg/config"
	xhttp "FraudGuard/pkg/http"

	"github.com/spf13/cobra"
)

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadWithEnv(path)
	if err != nil {
		return nil, err
	}
	if u, _ := cmd.Flags().GetString("api-url"); u != "" {
		cfg.Client.APIURL = u
	}
	return cfg, nil
}

func newClient(cmd *cobra.Command) (*client.Client, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return di.ProvideFraudClient(cfg), nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the inference API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			app, err := di.InitializeApp(cfg)
			if err != nil {
				return fmt.Errorf("app initialization failed: %w", err)
			}
			return app.Run()
		},
	}
}

func formCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "form",
		Short: "Run the transaction form front end",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if p, _ := cmd.Flags().GetInt("port"); p > 0 {
				cfg.Form.Port = p
			}
			app, err := di.InitializeFormApp(cfg)
			if err != nil {
				return fmt.Errorf("form initialization failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "form on http://localhost:%d, API at %s\n", cfg.Form.Port, cfg.Client.APIURL)
			return app.Run()
		},
	}
	cmd.Flags().IntP("port", "p", 0, "form port (overrides config)")
	return cmd
}

func predictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Score a transaction read from a JSON file (- for stdin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			tx, err := readTransaction(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			c, err := newClient(cmd)
			if err != nil {
				return err
			}
			res, err := c.Predict(cmd.Context(), tx)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringP("file", "f", "-", "transaction JSON file")
	return cmd
}

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Show the inference API health",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(cmd)
			if err != nil {
				return err
			}
			h, err := c.Health(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), h)
		},
	}
}

func metricsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Show the model evaluation metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(cmd)
			if err != nil {
				return err
			}
			m, err := c.Metrics(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), m)
		},
	}
}

// readTransaction decodes and validates a record the same way the API does.
func readTransaction(stdin io.Reader, file string) (models.TransactionFeatures, error) {
	var tx models.TransactionFeatures
	r := stdin
	if file != "" && file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return tx, fmt.Errorf("open transaction: %w", err)
		}
		defer f.Close()
		r = f
	}
	if err := json.NewDecoder(r).Decode(&tx); err != nil {
		return tx, fmt.Errorf("decode transaction: %w", err)
	}
	if verr := xhttp.ValidateStruct(&tx); verr != nil {
		msgs := make([]string, 0, len(verr))
		for _, e := range verr {
			msgs = append(msgs, e.Message)
		}
		return tx, fmt.Errorf("invalid transaction: %s", strings.Join(msgs, "; "))
	}
	return tx, nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
