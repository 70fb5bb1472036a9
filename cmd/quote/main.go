// Command quote resolves a token once from the command line.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"tokenquote/internal/config"
	"tokenquote/internal/engine"
	"tokenquote/internal/httpx"
	"tokenquote/internal/logging"
	"tokenquote/internal/provider"
)

type flags struct {
	ConfigPath string
	JSON       bool
	Wait       time.Duration
	LogLevel   string
}

type runtimeState struct {
	flags  flags
	stdout io.Writer
	stderr io.Writer
	// newHTTPClient is swapped in tests.
	newHTTPClient func(timeout time.Duration) provider.HTTPClient

	engine *engine.Engine
	log    logrus.FieldLogger
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, nil))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, hc func(time.Duration) provider.HTTPClient) int {
	s := &runtimeState{stdout: stdout, stderr: stderr, newHTTPClient: hc}
	if s.newHTTPClient == nil {
		s.newHTTPClient = func(d time.Duration) provider.HTTPClient { return httpx.New(d) }
	}
	root := s.newRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	return 0
}

func (s *runtimeState) newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "quote",
		Short:         "Resolve token prices from cached directories and live DEX search",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(s.flags.ConfigPath)
			if err != nil {
				return err
			}
			if s.flags.LogLevel != "" {
				cfg.Log.Level = s.flags.LogLevel
			}
			log, err := logging.NewWithOutput(s.stderr, cfg.Log.Level, cfg.Log.Format)
			if err != nil {
				return err
			}
			hc := s.newHTTPClient(time.Duration(cfg.Server.RequestTimeoutSec) * time.Second)
			s.engine = engine.New(cfg, hc, log)
			s.log = log
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&s.flags.ConfigPath, "config", "", "Path to config.json")
	cmd.PersistentFlags().BoolVar(&s.flags.JSON, "json", false, "Output JSON")
	cmd.PersistentFlags().DurationVar(&s.flags.Wait, "wait", 30*time.Second, "Maximum wait for the initial directory refresh")
	cmd.PersistentFlags().StringVar(&s.flags.LogLevel, "log-level", "warn", "Log level")

	cmd.AddCommand(s.newResolveCommand())
	cmd.AddCommand(s.newProvidersCommand())
	return cmd
}

// warmUp runs the first refresh of every directory and stops the loops.
func (s *runtimeState) warmUp(ctx context.Context) {
	h := s.engine.StartBackgroundRefresh(ctx)
	defer h.Stop()
	wctx, cancel := context.WithTimeout(ctx, s.flags.Wait)
	defer cancel()
	if err := h.WaitInitial(wctx); err != nil {
		s.log.WithError(err).Warn("initial refresh incomplete; resolving with what is cached")
	}
}

func (s *runtimeState) newResolveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <symbol|name|address>",
		Short: "Resolve one token to a quote",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			raw := strings.Join(args, " ")
			s.warmUp(ctx)
			q, err := s.engine.Resolve(ctx, raw)
			if err != nil {
				return err
			}
			if s.flags.JSON {
				return writeJSON(cmd.OutOrStdout(), q)
			}
			d := q.Display()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintf(w, "%s (%s)\n", d.Name, d.Symbol)
			_, _ = fmt.Fprintf(w, "price\t$%s\n", d.Price)
			if d.Change24h != "" {
				_, _ = fmt.Fprintf(w, "24h\t%s%%\n", d.Change24h)
			}
			if d.Network != "" {
				_, _ = fmt.Fprintf(w, "network\t%s\n", d.Network)
			}
			if d.ChartSymbol != "" {
				_, _ = fmt.Fprintf(w, "chart\t%s\n", d.ChartSymbol)
			}
			if d.LogoURL != "" {
				_, _ = fmt.Fprintf(w, "logo\t%s\n", d.LogoURL)
			}
			_, _ = fmt.Fprintf(w, "source\t%s\n", q.Source)
			return w.Flush()
		},
	}
}

func (s *runtimeState) newProvidersCommand() *cobra.Command {
	var refresh bool
	cmd := &cobra.Command{
		Use:   "providers",
		Short: "List configured providers in consultation order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if refresh {
				s.warmUp(cmd.Context())
			}
			list := s.engine.Providers()
			if s.flags.JSON {
				return writeJSON(cmd.OutOrStdout(), list)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "NAME\tROLE\tPRIORITY\tENTRIES\tFETCHED")
			for _, p := range list {
				fetched := "-"
				if !p.FetchedAt.IsZero() {
					fetched = p.FetchedAt.Format(time.RFC3339)
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", p.Name, p.Role, p.Priority, p.Entries, fetched)
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Fetch directory snapshots before listing")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
