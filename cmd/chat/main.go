package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/josinaldojr/docs-chat-rag/internal/app"
	"github.com/josinaldojr/docs-chat-rag/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	pipe    *app.App
)

var rootCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat com IA - responde perguntas somente com base nos documentos indexados",
	Long: `Responde perguntas usando apenas os trechos recuperados do banco vetorial.
Quando a resposta não está nos documentos, devolve a frase fixa de recusa.

Exemplos:
  chat                                   # loop interativo
  chat ask "Qual foi a receita de 2023?" # uma pergunta só`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" {
			return nil
		}
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		slog.SetDefault(cfg.Logger())

		pipe, err = app.New(cmd.Context(), cfg)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if pipe != nil {
			return pipe.Close()
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLoop(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), pipe.Service)
	},
}

var askCmd = &cobra.Command{
	Use:   "ask <pergunta>",
	Short: "Responde uma única pergunta e sai",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		answer, err := pipe.Service.Answer(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), answer)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "arquivo YAML de configuração (opcional)")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(askCmd)
}

func main() {
	// Ctrl-C cancela o contexto; o loop se despede e sai com 0
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "\n❌ %v\n", err)
		os.Exit(1)
	}
}
