package rag

import "errors"

// Taxonomia de erros do pipeline. Todo componente embrulha a causa com um
// destes sentinelas (fmt.Errorf("%w: ...: %w", ErrX, cause)), então quem chama
// usa errors.Is para decidir se pode tentar de novo.
var (
	// ErrConfiguration: configuração de inicialização ausente ou inválida. Fatal.
	ErrConfiguration = errors.New("configuration error")

	// ErrInvalidInput: pergunta vazia, k fora do intervalo. O caller pode pedir de novo.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConnection: banco vetorial ou endpoint de embeddings inacessível.
	ErrConnection = errors.New("connection error")

	// ErrAuthentication: credencial rejeitada por algum serviço externo. Fatal para a sessão.
	ErrAuthentication = errors.New("authentication error")

	// ErrGeneration: falha na chamada ao modelo de linguagem.
	ErrGeneration = errors.New("generation error")
)

// IsFatal indica se o erro deve encerrar o processo/sessão em vez de
// voltar para o loop de perguntas.
func IsFatal(err error) bool {
	return errors.Is(err, ErrConfiguration) || errors.Is(err, ErrAuthentication)
}
