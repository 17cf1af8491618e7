package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/josinaldojr/docs-chat-rag/internal/rag"
)

// perguntas maiores que isso são recusadas sem chamar o pipeline
const maxQuestionBytes = 64 * 1024

type answerer interface {
	Answer(ctx context.Context, question string) (string, error)
}

var exitWords = map[string]bool{"sair": true, "quit": true, "exit": true, "q": true}

type inputLine struct {
	text string
	err  error
}

// readLines entrega as linhas de in num canal, que é fechado no EOF.
// Roda numa goroutine para o loop poder reagir ao cancelamento mesmo
// bloqueado esperando o usuário.
func readLines(ctx context.Context, in io.Reader) <-chan inputLine {
	lines := make(chan inputLine)
	go func() {
		defer close(lines)
		r := bufio.NewReader(in)
		for {
			text, err := r.ReadString('\n')
			if text != "" {
				select {
				case lines <- inputLine{text: text}:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					select {
					case lines <- inputLine{err: err}:
					case <-ctx.Done():
					}
				}
				return
			}
		}
	}()
	return lines
}

// runLoop lê uma pergunta por linha até EOF, palavra de saída ou
// cancelamento do ctx (Ctrl-C). Erros recuperáveis são mostrados e o loop
// continua; erros fatais (configuração, credencial) encerram a sessão.
func runLoop(ctx context.Context, in io.Reader, out io.Writer, svc answerer) error {
	fmt.Fprintln(out, "🤖 Chat com IA - Sistema de Busca em Documentos 🤖")
	fmt.Fprintln(out, strings.Repeat("=", 50))
	fmt.Fprintln(out, "Digite suas perguntas sobre o documento.")
	fmt.Fprintln(out, "Para sair, digite 'sair', 'quit' ou 'exit'")
	fmt.Fprintln(out, strings.Repeat("=", 50))

	readCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines := readLines(readCtx, in)

	for {
		fmt.Fprint(out, "\n❓ Sua pergunta: ")

		var (
			line inputLine
			ok   bool
		)
		select {
		case <-ctx.Done():
			fmt.Fprintln(out, "\n\n⚠️ Chat interrompido pelo usuário. Até logo!")
			return nil
		case line, ok = <-lines:
		}
		if !ok {
			fmt.Fprintln(out)
			return nil
		}
		if line.err != nil {
			return line.err
		}

		input := strings.TrimSpace(line.text)
		if exitWords[strings.ToLower(input)] {
			fmt.Fprintln(out, "\n👋 Obrigado por usar o chat! Até logo!")
			return nil
		}
		if len(input) > maxQuestionBytes {
			fmt.Fprintf(out, "⚠️  Pergunta muito longa (máximo %d bytes). Por favor, digite uma pergunta válida.\n", maxQuestionBytes)
			continue
		}
		if input == "" {
			fmt.Fprintln(out, "⚠️  Por favor, digite uma pergunta válida.")
			continue
		}

		fmt.Fprintln(out, "\n🔍 Buscando informações...")
		answer, err := svc.Answer(ctx, input)
		if err != nil {
			if ctx.Err() != nil {
				fmt.Fprintln(out, "\n\n⚠️ Chat interrompido pelo usuário. Até logo!")
				return nil
			}
			if rag.IsFatal(err) {
				return err
			}
			fmt.Fprintf(out, "\n❌ Erro ao processar sua pergunta: %v\n", err)
			if errors.Is(err, rag.ErrConnection) || errors.Is(err, rag.ErrGeneration) {
				fmt.Fprintln(out, "Tente novamente em instantes.")
			}
			continue
		}

		fmt.Fprintln(out, "\n"+strings.Repeat("-", 100))
		fmt.Fprintf(out, "📝 PERGUNTA: %s\n", input)
		fmt.Fprintf(out, "🤖 RESPOSTA: %s\n", answer)
		fmt.Fprintln(out, strings.Repeat("-", 100))
	}
}
